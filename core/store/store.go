package store

import (
	"fmt"

	"go.uber.org/zap"

	"pricing-calc/core/formulas"
	"pricing-calc/core/types"
)

const (
	// DefaultTierPrice is the list price of a tier created by AddTier
	DefaultTierPrice = 49
)

// Store owns the pricing input state and its derived computation.
// Construct one per session and pass it by reference. A Store is driven
// from a single goroutine; it performs no locking.
type Store struct {
	state    *Observable[types.PricingState]
	computed *Derived[types.PricingState, types.PricingComputation]
	initial  types.PricingState
	ids      tierIDs
	logger   *zap.Logger
}

type options struct {
	logger  *zap.Logger
	initial *types.PricingState
}

// Option configures a Store
type Option func(*options)

// WithLogger logs every mutation at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithInitialState replaces the built-in default state. Reset returns to it.
func WithInitialState(state types.PricingState) Option {
	return func(o *options) {
		s := state.Clone()
		o.initial = &s
	}
}

// New creates a store holding the normalized default state
func New(opts ...Option) *Store {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{logger: o.logger}

	initial := types.DefaultState()
	if o.initial != nil {
		initial = *o.initial
	}
	s.initial = s.prepare(initial)

	s.state = NewObservable(s.initial.Clone())
	s.computed = NewDerived(s.state, Compute)

	s.logger.Debug("pricing store created",
		zap.Int("tiers", len(s.initial.Tiers)),
	)
	return s
}

// State returns a copy of the current input state
func (s *Store) State() types.PricingState {
	return s.state.Get().Clone()
}

// Computation returns the latest derived computation
func (s *Store) Computation() types.PricingComputation {
	return s.computed.Get()
}

// Computed exposes the derived observable
func (s *Store) Computed() *Derived[types.PricingState, types.PricingComputation] {
	return s.computed
}

// Subscribe delivers the current state now and every later state in order.
// Each call receives its own copy.
func (s *Store) Subscribe(fn func(types.PricingState)) (unsubscribe func()) {
	return s.state.Subscribe(func(state types.PricingState) {
		fn(state.Clone())
	})
}

// SubscribeComputed delivers the current computation now and on every change
func (s *Store) SubscribeComputed(fn func(types.PricingComputation)) (unsubscribe func()) {
	return s.computed.Subscribe(fn)
}

// Close detaches the derived computation from the input state
func (s *Store) Close() {
	s.computed.Close()
}

// Set replaces the whole state. Shares are normalized and tiers without a
// usable ID get a fresh one.
func (s *Store) Set(state types.PricingState) {
	s.publish("set", s.prepare(state),
		zap.Int("tiers", len(state.Tiers)),
	)
}

// Reset restores the initial state, including its tier IDs
func (s *Store) Reset() {
	s.publish("reset", s.initial.Clone())
}

// SetField replaces one numeric field. An unknown field changes nothing
// but the state is still normalized and republished.
func (s *Store) SetField(field types.Field, value float64) {
	next, ok := s.state.Get().WithField(field, value)
	if !ok {
		s.logger.Debug("unknown pricing field ignored", zap.String("field", field.String()))
	}
	s.publish("set_field", normalize(next),
		zap.String("field", field.String()),
		zap.Float64("value", value),
	)
}

// SetTiers replaces the tier list
func (s *Store) SetTiers(tiers []types.PricingTier) {
	next := s.state.Get().Clone()
	next.Tiers = make([]types.PricingTier, len(tiers))
	copy(next.Tiers, tiers)
	s.publish("set_tiers", s.prepare(next),
		zap.Int("tiers", len(tiers)),
	)
}

// UpdateTier merges changes into the tier with the given ID.
// Unknown IDs are ignored.
func (s *Store) UpdateTier(id string, changes types.TierChanges) {
	next := s.state.Get().Clone()
	found := false
	for i, tier := range next.Tiers {
		if tier.ID == id {
			next.Tiers[i] = changes.Apply(tier)
			found = true
		}
	}
	s.publish("update_tier", normalize(next),
		zap.String("id", id),
		zap.Bool("found", found),
	)
}

// AddTier appends a tier with default name, price and share and returns it
func (s *Store) AddTier() types.PricingTier {
	next := s.state.Get().Clone()
	n := len(next.Tiers)
	tier := types.PricingTier{
		ID:    s.ids.fresh(next.Tiers),
		Name:  fmt.Sprintf("Tier %d", n+1),
		Price: DefaultTierPrice,
		Share: 1 / float64(n+1),
	}
	next.Tiers = append(next.Tiers, tier)
	next = normalize(next)

	s.publish("add_tier", next, zap.String("id", tier.ID))
	return next.Tiers[n]
}

// RemoveTier deletes the tier with the given ID. The last remaining tier
// is never removed.
func (s *Store) RemoveTier(id string) {
	current := s.state.Get()
	if len(current.Tiers) <= 1 {
		s.publish("remove_tier", current.Clone(),
			zap.String("id", id),
			zap.Bool("skipped", true),
		)
		return
	}

	next := current.Clone()
	next.Tiers = next.Tiers[:0]
	for _, tier := range current.Tiers {
		if tier.ID != id {
			next.Tiers = append(next.Tiers, tier)
		}
	}
	s.publish("remove_tier", normalize(next), zap.String("id", id))
}

func (s *Store) publish(op string, next types.PricingState, fields ...zap.Field) {
	s.logger.Debug("pricing state updated", append([]zap.Field{zap.String("op", op)}, fields...)...)
	s.state.Set(next)
}

// prepare copies state, assigns missing IDs and normalizes shares
func (s *Store) prepare(state types.PricingState) types.PricingState {
	next := state.Clone()
	next.Tiers = s.ids.assign(next.Tiers)
	return normalize(next)
}

func normalize(state types.PricingState) types.PricingState {
	state.Tiers = formulas.NormalizeTierShares(state.Tiers)
	return state
}
