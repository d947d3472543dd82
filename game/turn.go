package game

import (
	"fmt"

	"sanguo/utils"
)

// DrawCards performs the mandatory turn-start draw for the current player.
// The count is base draw plus the freshly computed territory bonus, never
// below one card. The caller advances to the action phase afterwards.
func (gs *GameState) DrawCards(playerID string) *GameState {
	if gs.Phase != Playing || gs.player(playerID) == nil {
		return gs
	}

	ns := gs.Copy()
	if ns.TurnPhase != DrawPhase {
		ns.addLog(playerID, "cards can only be drawn in the draw phase")
		return ns
	}
	cur := ns.currentPlayer()
	if cur == nil || cur.ID != playerID {
		ns.addLog(playerID, "only the current player may draw")
		return ns
	}

	bonus := ns.CalculateTerritoryBonus(playerID)
	count := CardsPerDraw + bonus.BonusDraw
	if count < 1 {
		count = 1
	}

	drawn := ns.drawInto(cur, count, true)
	ns.addLog(playerID, fmt.Sprintf("drew %d cards", drawn))
	return ns
}

// AdvancePhase steps draw -> action -> discard. It never wraps; turn
// rollover goes through EndTurn.
func (gs *GameState) AdvancePhase() *GameState {
	if gs.Phase != Playing {
		return gs
	}
	ns := gs.Copy()
	switch ns.TurnPhase {
	case DrawPhase:
		ns.TurnPhase = ActionPhase
	case ActionPhase:
		ns.TurnPhase = DiscardPhase
	}
	return ns
}

// EndTurn ends the current player's turn. If the hand is over the hard cap
// the turn instead drops into the discard phase and a one-action penalty is
// recorded against the player's next turn.
func (gs *GameState) EndTurn(playerID string) *GameState {
	if gs.Phase != Playing || gs.player(playerID) == nil {
		return gs
	}

	ns := gs.Copy()
	cur := ns.currentPlayer()
	if cur == nil || cur.ID != playerID {
		ns.addLog(playerID, "only the current player may end the turn")
		return ns
	}
	if ns.TurnPhase == DrawPhase {
		ns.addLog(playerID, "cards must be drawn before ending the turn")
		return ns
	}

	if len(cur.Hand) > MaxHandSize {
		ns.TurnPhase = DiscardPhase
		cur.NextTurnPenalty = 1
		ns.addLog(playerID, fmt.Sprintf("hand over the limit (%d/%d): discard down to the cap", len(cur.Hand), MaxHandSize))
		return ns
	}

	ns.advanceTurn()
	return ns
}

// DiscardCard moves one card from the player's hand to the discard pile.
// During the forced discard phase, reaching the cap auto-advances the turn.
func (gs *GameState) DiscardCard(playerID, instanceID string) *GameState {
	p := gs.player(playerID)
	if gs.Phase != Playing || p == nil {
		return gs
	}
	if handIndex(p, instanceID) == -1 {
		return gs
	}

	ns := gs.Copy()
	np := ns.player(playerID)
	idx := handIndex(np, instanceID)
	card := np.Hand[idx]
	np.Hand = append(np.Hand[:idx], np.Hand[idx+1:]...)
	ns.DiscardPile = append(ns.DiscardPile, card)
	ns.addLog(playerID, fmt.Sprintf("discarded %s", card.Name))

	if ns.TurnPhase == DiscardPhase && ns.currentPlayer() == np && len(np.Hand) <= MaxHandSize {
		ns.advanceTurn()
	}
	return ns
}

// advanceTurn hands play to the next surviving player, rolls the turn
// counter when the table wraps, purges stale effects and refreshes the new
// player's action points. Mutates the receiver; callers pass a copy.
func (gs *GameState) advanceTurn() {
	cur := gs.currentPlayer()
	n := len(gs.Players)

	next := gs.CurrentPlayer
	for {
		next = (next + 1) % n
		if !gs.Players[next].IsEliminated || next == gs.CurrentPlayer {
			break
		}
	}

	// Everyone else is gone and so is the current player: nothing to play.
	if next == gs.CurrentPlayer && cur.IsEliminated {
		gs.Phase = Finished
		return
	}

	firstAlive := -1
	for i, p := range gs.Players {
		if !p.IsEliminated {
			firstAlive = i
			break
		}
	}
	if next == firstAlive && next <= gs.CurrentPlayer {
		gs.Turn++
	}

	cur.IsActive = false
	gs.CurrentPlayer = next
	np := gs.Players[next]
	np.IsActive = true
	gs.TurnPhase = DrawPhase

	gs.purgeEffectsFor(np.ID)

	bonus := gs.CalculateTerritoryBonus(np.ID)
	actions := ActionsPerTurn + bonus.BonusActions - np.NextTurnPenalty
	if actions < 1 {
		actions = 1
	}
	np.Actions = actions
	if np.NextTurnPenalty > 0 {
		gs.addLog(np.ID, fmt.Sprintf("action penalty -%d from last turn's overdrawn hand", np.NextTurnPenalty))
		np.NextTurnPenalty = 0
	}

	if bonus.BonusDraw != 0 || bonus.BonusActions != 0 {
		gs.addLog(np.ID, fmt.Sprintf("territory adjustment: cards %+d, actions %+d (%d groups)",
			bonus.BonusDraw, bonus.BonusActions, bonus.FragmentationGroups))
	}
	gs.addLog(np.ID, "turn started")

	gs.checkAndApplyVictory()
}

// drawInto draws count cards into a hand, reshuffling the discard pile with
// fresh instance ids when the deck runs dry. With ensureVariety set, a batch
// of nothing but generals swaps its last card for the first non-general left
// in deck order; the displaced general goes to the deck bottom. Returns the
// number of cards actually drawn.
func (gs *GameState) drawInto(p *Player, count int, ensureVariety bool) int {
	drawn := gs.popDeck(count)

	if len(drawn) < count && len(gs.DiscardPile) > 0 {
		defs := make([]Card, len(gs.DiscardPile))
		for i, c := range gs.DiscardPile {
			defs[i] = c.Card
		}
		gs.DiscardPile = []CardInstance{}
		gs.Deck = gs.instantiate(defs)
		gs.shuffle(gs.Deck)
		gs.addLog("system", "discard pile reshuffled into the deck")

		drawn = append(drawn, gs.popDeck(count-len(drawn))...)
	}

	if ensureVariety && len(drawn) > 0 {
		hasNonGeneral := false
		for _, c := range drawn {
			if c.Type != GeneralCard {
				hasNonGeneral = true
				break
			}
		}
		if !hasNonGeneral {
			for i, c := range gs.Deck {
				if c.Type != GeneralCard {
					replacement := gs.Deck[i]
					gs.Deck = append(gs.Deck[:i], gs.Deck[i+1:]...)
					displaced := drawn[len(drawn)-1]
					drawn[len(drawn)-1] = replacement
					gs.Deck = append(gs.Deck, displaced)
					break
				}
			}
		}
	}

	p.Hand = append(p.Hand, drawn...)
	return len(drawn)
}

func handIndex(p *Player, instanceID string) int {
	for i, c := range p.Hand {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

func removeTerritory(p *Player, territoryID string) {
	if i := utils.FindIndex(p.Territories, territoryID); i != -1 {
		p.Territories = append(p.Territories[:i], p.Territories[i+1:]...)
	}
}
