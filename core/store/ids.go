package store

import (
	"fmt"
	"slices"

	"pricing-calc/core/types"
)

// tierIDs hands out tier-1, tier-2, ... and never reuses a value
type tierIDs struct {
	counter int
}

func (g *tierIDs) next() string {
	g.counter++
	return fmt.Sprintf("tier-%d", g.counter)
}

// fresh returns an ID not used by any of tiers
func (g *tierIDs) fresh(tiers []types.PricingTier) string {
	for {
		id := g.next()
		if !slices.ContainsFunc(tiers, func(t types.PricingTier) bool { return t.ID == id }) {
			return id
		}
	}
}

// assign gives a fresh ID to every tier whose ID is empty or already used
// by an earlier tier. Generated IDs skip any ID the caller supplied.
func (g *tierIDs) assign(tiers []types.PricingTier) []types.PricingTier {
	taken := make(map[string]bool, len(tiers))
	for _, tier := range tiers {
		if tier.ID != "" {
			taken[tier.ID] = true
		}
	}

	seen := make(map[string]bool, len(tiers))
	for i := range tiers {
		if tiers[i].ID == "" || seen[tiers[i].ID] {
			id := g.next()
			for taken[id] {
				id = g.next()
			}
			tiers[i].ID = id
			taken[id] = true
		}
		seen[tiers[i].ID] = true
	}
	return tiers
}
