package game

// TerritoryBonus is the per-turn economic adjustment derived from a
// player's holdings.
type TerritoryBonus struct {
	BonusDraw           int      `json:"bonusDraw"`
	BonusActions        int      `json:"bonusActions"`
	DominatedRegions    []Region `json:"dominatedRegions"`
	FragmentationGroups int      `json:"fragmentationGroups"`
}

// CalculateTerritoryBonus computes the draw/action adjustment for a player:
// base scaling by territory count, region domination with diminishing
// returns, an overexpansion action penalty, and a fragmentation penalty from
// the connectivity of the holdings. Each final value is clamped so the net
// never drops below -1.
func (gs *GameState) CalculateTerritoryBonus(playerID string) TerritoryBonus {
	p := gs.player(playerID)
	if p == nil {
		return TerritoryBonus{}
	}

	count := len(p.Territories)
	draw := count / territoryDrawThreshold
	if draw > drawBonusCap {
		draw = drawBonusCap
	}
	actions := count / territoryActionThreshold
	if actions > actionBonusCap {
		actions = actionBonusCap
	}

	dominated := gs.DominatedRegions(playerID)
	for i, r := range dominated {
		b := regionDominationBonus[r]
		if i == 0 {
			draw += b.Draw
			actions += b.Action
		} else {
			// Every region after the first pays out at half value.
			draw += b.Draw / 2
			actions += b.Action / 2
		}
	}

	if count >= overexpansionThreshold {
		actions--
	}

	groups := gs.ConnectedGroupCount(playerID)
	if groups >= 2 {
		key := groups
		if key > 3 {
			key = 3
		}
		pen := fragmentationPenalty[key]
		draw += pen.Draw
		actions += pen.Action
	}

	if draw < -1 {
		draw = -1
	}
	if actions < -1 {
		actions = -1
	}

	return TerritoryBonus{
		BonusDraw:           draw,
		BonusActions:        actions,
		DominatedRegions:    dominated,
		FragmentationGroups: groups,
	}
}

// DominatedRegions lists, in catalog order, the regions whose every
// territory the player owns.
func (gs *GameState) DominatedRegions(playerID string) []Region {
	owned := make(map[string]bool)
	for _, t := range gs.Territories {
		if t.Owner == playerID {
			owned[t.ID] = true
		}
	}

	var dominated []Region
	for _, r := range regionOrder {
		full := true
		for _, id := range regionTerritories[r] {
			if !owned[id] {
				full = false
				break
			}
		}
		if full {
			dominated = append(dominated, r)
		}
	}
	return dominated
}

// ConnectedGroupCount counts the connected components among the player's
// territories, breadth-first over the bidirectional adjacency map.
func (gs *GameState) ConnectedGroupCount(playerID string) int {
	p := gs.player(playerID)
	if p == nil || len(p.Territories) == 0 {
		return 0
	}

	owned := make(map[string]bool, len(p.Territories))
	for _, id := range p.Territories {
		owned[id] = true
	}

	visited := make(map[string]bool, len(owned))
	groups := 0
	for _, seed := range p.Territories {
		if visited[seed] {
			continue
		}
		groups++
		queue := []string{seed}
		visited[seed] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range catalogAdjacency[cur] {
				if owned[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return groups
}
