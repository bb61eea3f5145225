// Package ui - Terminal user interface
// Rich CLI output with tables, metric cards, diffs and colors.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pricing-calc/core/formulas"
)

// Colors for terminal output
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes a line
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Green, "✓ "), msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Yellow, "⚠ "), msg)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Red, "✗ "), msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Blue, "ℹ "), msg)
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Dim, "  "+msg))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns the given columns
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	// Build format string
	format := ""
	for i, w := range t.widths {
		if i > 0 {
			format += " │ "
		}
		if t.right[i] {
			format += fmt.Sprintf("%%%ds", w)
		} else {
			format += fmt.Sprintf("%%-%ds", w)
		}
	}
	format += "\n"

	// Header
	headerArgs := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		headerArgs[i] = h
	}
	t.w.Print("%s", t.w.color(Bold, fmt.Sprintf(format, headerArgs...)))

	// Separator
	sep := ""
	for i, w := range t.widths {
		if i > 0 {
			sep += "─┼─"
		}
		sep += strings.Repeat("─", w)
	}
	t.w.Println("%s", sep)

	// Rows
	for _, row := range t.rows {
		args := make([]interface{}, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		t.w.Print(format, args...)
	}
}

// MetricsSummary renders the headline metric card
type MetricsSummary struct {
	w           *Writer
	Title       string
	ARPU        string
	LTV         string
	GrossMargin string
	CACPayback  string
	ROIMultiple string

	// ROI is the raw multiple, used to pick a health color
	ROI float64
}

// NewMetricsSummary creates a metrics summary
func (w *Writer) NewMetricsSummary() *MetricsSummary {
	return &MetricsSummary{w: w, Title: "Pricing Metrics"}
}

// Render prints the metrics summary
func (s *MetricsSummary) Render() {
	s.w.Header(s.Title)

	s.w.Println("%s", s.w.color(Bold, "╭─────────────────────────────────────╮"))
	s.line(Green, "ARPU", s.ARPU)
	s.line(Green, "LTV", s.LTV)
	s.line(Dim, "Gross Margin", s.GrossMargin)
	s.line(Dim, "CAC Payback", s.CACPayback)
	s.w.Println("%s", s.w.color(Bold, "╰─────────────────────────────────────╯"))

	s.w.Println("")

	// ROI health indicator
	roiColor := Green
	roiIcon := "●"
	if s.ROI < 3 {
		roiColor = Yellow
		roiIcon = "◐"
	}
	if s.ROI < 1 {
		roiColor = Red
		roiIcon = "○"
	}
	s.w.Println("%s", s.w.color(roiColor, fmt.Sprintf("%s LTV:CAC %s", roiIcon, s.ROIMultiple)))
}

func (s *MetricsSummary) line(c, label, value string) {
	s.w.Println("%s%s%s",
		s.w.color(Bold, "│"),
		s.w.color(c, fmt.Sprintf("  %-14s%-21s", label+":", value)),
		s.w.color(Bold, "│"),
	)
}

// MetricsDiff shows how metrics moved between two computations
type MetricsDiff struct {
	w       *Writer
	Title   string
	Changed []DiffItem
}

// DiffItem is a single diff item
type DiffItem struct {
	Label    string
	OldValue string
	NewValue string
	Change   string

	// IsImprovement colors the change green; otherwise red
	IsImprovement bool
}

// NewMetricsDiff creates a diff view
func (w *Writer) NewMetricsDiff(title string) *MetricsDiff {
	return &MetricsDiff{w: w, Title: title}
}

// Render prints the diff
func (d *MetricsDiff) Render() {
	d.w.SubHeader(d.Title)

	if len(d.Changed) == 0 {
		d.w.Println("%s", d.w.color(Dim, "  no metric changes"))
		return
	}

	for _, item := range d.Changed {
		arrow := d.w.color(Yellow, "→")
		change := d.w.color(Red, item.Change)
		if item.IsImprovement {
			change = d.w.color(Green, item.Change)
		}
		d.w.Println("  %s: %s %s %s (%s)", item.Label, item.OldValue, arrow, item.NewValue, change)
	}
}

// CountUp animates a value from zero to target on a single line.
// Frames are separated by delay; the final frame always shows target exactly,
// even when ctx is cancelled mid-animation. It returns ctx.Err() in that case.
func (w *Writer) CountUp(ctx context.Context, label string, target float64, frames int, delay time.Duration, format func(float64) string) error {
	if frames < 1 {
		frames = 1
	}

	var err error
	for i := 1; i < frames && err == nil; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		v := formulas.TweenValue(0, target, float64(i)/float64(frames))
		fmt.Fprintf(w.out, "\r%s %s", w.color(Dim, label), format(v))
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				err = ctx.Err()
			case <-timer.C:
			}
		}
	}
	fmt.Fprintf(w.out, "\r%s %s\n", w.color(Bold, label), format(target))
	return err
}
