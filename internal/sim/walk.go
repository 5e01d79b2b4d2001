package sim

import (
	"fmt"

	"github.com/BStarcheus/open-spiel-coup/engine"
)

// WalkStats counts the nodes reached by Walk.
type WalkStats struct {
	Chance   int
	Decision int
	Terminal int
	// Distinct is the number of distinct states by StateHash.
	Distinct int
}

// Total returns the number of nodes visited.
func (s WalkStats) Total() int { return s.Chance + s.Decision + s.Terminal }

func (s WalkStats) String() string {
	return fmt.Sprintf("nodes %d (chance %d, decision %d, terminal %d), distinct %d",
		s.Total(), s.Chance, s.Decision, s.Terminal, s.Distinct)
}

// Walk expands every branch from g down to depth plies, chance draws
// included. Nodes at the depth limit are counted but not expanded. The state
// is mutated in place and rolled back with Save/Restore between siblings.
func Walk(g engine.GameState, depth int) (WalkStats, error) {
	var stats WalkStats
	seen := make(map[uint64]struct{})
	err := walk(&g, depth, &stats, seen)
	stats.Distinct = len(seen)
	return stats, err
}

func walk(g *engine.GameState, depth int, stats *WalkStats, seen map[uint64]struct{}) error {
	seen[g.StateHash()] = struct{}{}
	switch {
	case g.IsTerminal():
		stats.Terminal++
		return nil
	case g.IsChanceNode():
		stats.Chance++
	default:
		stats.Decision++
	}
	if depth == 0 {
		return nil
	}
	if err := g.CheckInvariants(); err != nil {
		return err
	}

	snap := g.Save()
	for _, a := range g.LegalActions() {
		if err := g.ApplyAction(a); err != nil {
			return fmt.Errorf("applying %s: %w", a, err)
		}
		if err := walk(g, depth-1, stats, seen); err != nil {
			return err
		}
		g.Restore(snap)
	}
	return nil
}
