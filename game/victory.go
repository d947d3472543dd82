package game

import "fmt"

// CheckVictory scans all surviving players once, accumulating territory
// count and summed value in a single pass over the territory list, and
// returns the id of a player meeting either threshold. The current turn's
// player wins ties, then table order.
func (gs *GameState) CheckVictory() string {
	counts := make(map[string]int, len(gs.Players))
	values := make(map[string]int, len(gs.Players))
	for _, t := range gs.Territories {
		if t.Owner == "" {
			continue
		}
		counts[t.Owner]++
		values[t.Owner] += t.Value
	}

	meets := func(p *Player) bool {
		if p.IsEliminated {
			return false
		}
		return counts[p.ID] >= gs.Options.VictoryTerritories || values[p.ID] >= gs.Options.VictoryValue
	}

	if cur := gs.currentPlayer(); cur != nil && meets(cur) {
		return cur.ID
	}
	for _, p := range gs.Players {
		if meets(p) {
			return p.ID
		}
	}
	return ""
}

// checkAndApplyVictory applies confirmation hysteresis: a sole survivor
// wins immediately; a threshold win must be held for the configured number
// of consecutive turns before it becomes final. Mutates the receiver;
// callers pass a copy.
func (gs *GameState) checkAndApplyVictory() {
	if gs.Phase != Playing {
		return
	}

	var survivor *Player
	alive := 0
	for _, p := range gs.Players {
		if !p.IsEliminated {
			alive++
			survivor = p
		}
	}
	if alive == 1 {
		gs.finishGame(survivor.ID, "last ruler standing")
		return
	}

	leader := gs.CheckVictory()
	if leader == "" {
		if gs.Candidate != nil {
			gs.addLog(gs.Candidate.PlayerID, "victory claim lost")
			gs.Candidate = nil
		}
		return
	}

	if gs.Candidate == nil || gs.Candidate.PlayerID != leader {
		gs.Candidate = &VictoryCandidate{PlayerID: leader, SinceTurn: gs.Turn}
		gs.addLog(leader, fmt.Sprintf("%s claims victory: hold until turn %d",
			gs.player(leader).Name, gs.Turn+gs.Options.ConfirmationTurns))
		return
	}

	if gs.Turn-gs.Candidate.SinceTurn >= gs.Options.ConfirmationTurns {
		gs.finishGame(leader, "victory claim confirmed")
	}
}

func (gs *GameState) finishGame(winnerID, reason string) {
	gs.Phase = Finished
	gs.Winner = winnerID
	gs.Candidate = nil
	gs.addLog(winnerID, fmt.Sprintf("%s wins: %s", gs.player(winnerID).Name, reason))
}
