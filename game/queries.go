package game

// AttackableTerritoryIDs lists every territory the player could legally
// declare an attack against right now: not their own, adjacent to a holding,
// and not blocked by an active event.
func (gs *GameState) AttackableTerritoryIDs(playerID string) []string {
	p := gs.player(playerID)
	if p == nil || gs.BlockAttacks {
		return nil
	}

	reachable := make(map[string]bool)
	for _, id := range p.Territories {
		for _, n := range catalogAdjacency[id] {
			reachable[n] = true
		}
	}

	var out []string
	for _, t := range gs.Territories {
		if !reachable[t.ID] || t.Owner == playerID {
			continue
		}
		if t.Owner == "" && gs.BlockNeutral {
			continue
		}
		out = append(out, t.ID)
	}
	return out
}
