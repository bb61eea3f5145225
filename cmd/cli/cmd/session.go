// Package cmd - session command
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricing-calc/core/output"
	"pricing-calc/core/scenario"
	"pricing-calc/core/session"
	"pricing-calc/core/store"
	"pricing-calc/core/ui"
	"pricing-calc/internal/config"
	"pricing-calc/internal/logging"
)

var (
	sessionScenario string
	sessionFormat   string
	finalReport     bool
)

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session [script]",
	Short: "Apply a script of input changes and watch metrics move",
	Long: `Run a session script against a fresh pricing state. After every change the
metrics that moved are printed. Reads from stdin when no script is given.

Script commands:
  set <field> <value>                 conversion, churn, cac, users, elasticity
  tiers <json-array>                  replace all tiers
  tier add [name=.. price=.. share=..]
  tier update <id> name=.. price=.. share=..
  tier remove <id>
  load <scenario-file>
  reset
  show

Examples:
  pricing-calc session whatif.txt
  echo "set elasticity 30" | pricing-calc session`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().StringVarP(&sessionScenario, "scenario", "s", "", "scenario file to start from")
	sessionCmd.Flags().StringVarP(&sessionFormat, "format", "f", "", "format used by show and the final report")
	sessionCmd.Flags().BoolVar(&finalReport, "report", true, "print a full report when the script ends")
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	out := cmd.OutOrStdout()

	sessionID := uuid.NewString()
	logger := logging.ForSession(sessionID)

	var in io.Reader = cmd.InOrStdin()
	source := "stdin"
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	st := store.New(store.WithLogger(logger))
	defer st.Close()

	title := ""
	sc, err := loadScenario(sessionScenario, cfg)
	if err != nil {
		return err
	}
	if sc != nil {
		st.Set(sc.State)
		title = sc.Name
	}

	format := sessionFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.DefaultRegistry(cfg.Output.NoColor).Get(output.Format(format))
	if err != nil {
		return err
	}
	render := func() error {
		report := output.NewReport(title, st.State(), st.Computation())
		report.ShowProjection = cfg.Output.ShowProjection
		return formatter.Render(out, report)
	}

	w := ui.NewWriter(out, cfg.Output.NoColor)
	view := ui.NewLiveView(w)
	view.Attach(st)
	defer view.Detach()

	logger.Info("session started", zap.String("source", source))

	env := &session.Env{
		Store: st,
		Show:  render,
		Loaded: func(sc *scenario.Scenario) {
			if sc.Name != "" {
				title = sc.Name
			}
			w.Info("Loaded scenario %s", sc.Source)
		},
	}
	res, err := session.Run(cmd.Context(), in, env, logger)
	if err != nil {
		logger.Warn("session aborted", zap.Int("line", res.Lines), zap.Error(err))
		return err
	}

	w.Println("")
	w.Success("%d commands applied from %s (%d lines)", res.Applied, source, res.Lines)
	logger.Info("session finished", zap.Int("applied", res.Applied))

	if finalReport {
		return render()
	}
	return nil
}
