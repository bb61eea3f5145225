// Package session - Scripted store mutations
// Each line of a session script maps to one store operation.
package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"pricing-calc/core/scenario"
	"pricing-calc/core/store"
	"pricing-calc/core/types"
	"pricing-calc/internal/errors"
)

// Env is what commands operate on
type Env struct {
	Store *store.Store

	// Show renders the current report; nil disables the show command
	Show func() error

	// Loaded is called after a scenario file has been applied
	Loaded func(sc *scenario.Scenario)
}

// Command is one parsed script line
type Command interface {
	// Name returns the command keyword
	Name() string

	// Apply runs the command against env
	Apply(env *Env) error
}

// SetField sets a numeric input field
type SetField struct {
	Field types.Field
	Value float64
}

func (c SetField) Name() string { return "set" }

func (c SetField) Apply(env *Env) error {
	env.Store.SetField(c.Field, c.Value)
	return nil
}

// SetTiers replaces the tier list
type SetTiers struct {
	Tiers []types.PricingTier
}

func (c SetTiers) Name() string { return "tiers" }

func (c SetTiers) Apply(env *Env) error {
	env.Store.SetTiers(c.Tiers)
	return nil
}

// AddTier appends a tier, optionally editing it right away
type AddTier struct {
	Changes types.TierChanges
}

func (c AddTier) Name() string { return "tier add" }

func (c AddTier) Apply(env *Env) error {
	tier := env.Store.AddTier()
	if !c.Changes.IsEmpty() {
		env.Store.UpdateTier(tier.ID, c.Changes)
	}
	return nil
}

// RemoveTier removes a tier by ID
type RemoveTier struct {
	ID string
}

func (c RemoveTier) Name() string { return "tier remove" }

func (c RemoveTier) Apply(env *Env) error {
	env.Store.RemoveTier(c.ID)
	return nil
}

// UpdateTier edits a tier by ID
type UpdateTier struct {
	ID      string
	Changes types.TierChanges
}

func (c UpdateTier) Name() string { return "tier update" }

func (c UpdateTier) Apply(env *Env) error {
	env.Store.UpdateTier(c.ID, c.Changes)
	return nil
}

// Reset restores the initial state
type Reset struct{}

func (c Reset) Name() string { return "reset" }

func (c Reset) Apply(env *Env) error {
	env.Store.Reset()
	return nil
}

// Load applies a scenario file in one bulk set
type Load struct {
	Path string
}

func (c Load) Name() string { return "load" }

func (c Load) Apply(env *Env) error {
	sc, err := scenario.Load(c.Path)
	if err != nil {
		return err
	}
	env.Store.Set(sc.State)
	if env.Loaded != nil {
		env.Loaded(sc)
	}
	return nil
}

// Show renders the current report
type Show struct{}

func (c Show) Name() string { return "show" }

func (c Show) Apply(env *Env) error {
	if env.Show == nil {
		return nil
	}
	return env.Show()
}

// Parse turns one script line into a command. Blank lines and comments
// yield a nil command and no error.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	keyword, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(keyword) {
	case "set":
		return parseSet(rest)
	case "tiers":
		return parseTiers(rest)
	case "tier":
		return parseTier(rest)
	case "reset":
		if rest != "" {
			return nil, errors.Input("reset takes no arguments")
		}
		return Reset{}, nil
	case "load":
		args, err := tokenize(rest)
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, errors.Input("usage: load <path>")
		}
		return Load{Path: args[0]}, nil
	case "show":
		return Show{}, nil
	}
	return nil, errors.Inputf("unknown command %q", keyword)
}

func parseSet(rest string) (Command, error) {
	args, err := tokenize(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, errors.Input("usage: set <field> <value>")
	}
	field, ok := types.ParseField(args[0])
	if !ok {
		return nil, errors.Inputf("unknown field %q", args[0])
	}
	value, err := parseNumber(args[1])
	if err != nil {
		return nil, err
	}
	return SetField{Field: field, Value: value}, nil
}

func parseTiers(rest string) (Command, error) {
	var tiers []types.PricingTier
	if err := json.Unmarshal([]byte(rest), &tiers); err != nil {
		return nil, errors.Parsing("tiers expects a JSON array", err)
	}
	return SetTiers{Tiers: tiers}, nil
}

func parseTier(rest string) (Command, error) {
	args, err := tokenize(rest)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, errors.Input("usage: tier add|remove|update ...")
	}

	switch strings.ToLower(args[0]) {
	case "add":
		changes, err := parseChanges(args[1:])
		if err != nil {
			return nil, err
		}
		return AddTier{Changes: changes}, nil
	case "remove", "rm":
		if len(args) != 2 {
			return nil, errors.Input("usage: tier remove <id>")
		}
		return RemoveTier{ID: args[1]}, nil
	case "update":
		if len(args) < 3 {
			return nil, errors.Input("usage: tier update <id> key=value...")
		}
		changes, err := parseChanges(args[2:])
		if err != nil {
			return nil, err
		}
		return UpdateTier{ID: args[1], Changes: changes}, nil
	}
	return nil, errors.Inputf("unknown tier action %q", args[0])
}

func parseChanges(args []string) (types.TierChanges, error) {
	var changes types.TierChanges
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return changes, errors.Inputf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "name":
			changes.Name = types.Ptr(value)
		case "price":
			v, err := parseNumber(value)
			if err != nil {
				return changes, err
			}
			changes.Price = types.Ptr(v)
		case "share":
			v, err := parseNumber(value)
			if err != nil {
				return changes, err
			}
			changes.Share = types.Ptr(v)
		default:
			return changes, errors.Inputf("unknown tier key %q", key)
		}
	}
	return changes, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, errors.Wrap(errors.TypeInput, fmt.Sprintf("invalid number %q", s), err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Inputf("%q is not a finite number", s)
	}
	if strings.HasSuffix(s, "%") {
		v /= 100
	}
	return v, nil
}

// tokenize splits on whitespace, keeping double-quoted strings together
func tokenize(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	hasToken := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\' && inQuote && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case ch == '"':
			inQuote = !inQuote
			hasToken = true
		case (ch == ' ' || ch == '\t') && !inQuote:
			if hasToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				hasToken = false
			}
		default:
			cur.WriteByte(ch)
			hasToken = true
		}
	}
	if inQuote {
		return nil, errors.Input("unterminated quote")
	}
	if hasToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
