package game

import "fmt"

// Magnitudes for the secondary effects of resource cards.
const (
	attackBoostValue      = 2
	attackBoostSmallValue = 1
	territoryDefenseValue = 2
)

// Effect handlers are dispatched through these tables instead of switch
// blocks so a new card effect is one table entry plus one function. A
// handler returns a rejection message, or "" after applying its mutation.
type resourceHandler func(ns *GameState, p *Player, c CardInstance, targetID string) string

type eventHandler func(ns *GameState, p *Player, c CardInstance) string

var resourceHandlers = map[ResourceBonus]resourceHandler{
	NoBonus: func(ns *GameState, p *Player, c CardInstance, _ string) string {
		return ""
	},
	Draw1: func(ns *GameState, p *Player, c CardInstance, _ string) string {
		ns.drawInto(p, 1, false)
		return ""
	},
	AttackBoost: func(ns *GameState, p *Player, c CardInstance, _ string) string {
		ns.addTurnEffect(EffectAttackBoost, p.ID, "", attackBoostValue, false, 1)
		return ""
	},
	AttackBoostSmall: func(ns *GameState, p *Player, c CardInstance, _ string) string {
		ns.addTurnEffect(EffectAttackBoost, p.ID, "", attackBoostSmallValue, false, 1)
		return ""
	},
	TerritoryDefense: func(ns *GameState, p *Player, c CardInstance, targetID string) string {
		t := ns.territory(targetID)
		if t == nil || t.Owner != p.ID {
			return fmt.Sprintf("%s must target one of your territories", c.Name)
		}
		ns.addTurnEffect(EffectTerritoryDefense, p.ID, targetID, territoryDefenseValue, false, 1)
		return ""
	},
}

var eventHandlers = map[EventEffect]eventHandler{
	Draw3: func(ns *GameState, p *Player, c CardInstance) string {
		ns.drawInto(p, 3, false)
		return ""
	},
	AttackDebuff: func(ns *GameState, p *Player, c CardInstance) string {
		ns.addTurnEffect(EffectAttackDebuff, p.ID, "", c.Value, true, c.Duration)
		ns.registerEvent(p.ID, c)
		return ""
	},
	AttackBuff: func(ns *GameState, p *Player, c CardInstance) string {
		ns.addTurnEffect(EffectAttackBoost, p.ID, "", c.Value, false, c.Duration)
		return ""
	},
	DiscardAll1: func(ns *GameState, p *Player, c CardInstance) string {
		for _, other := range ns.Players {
			if other.IsEliminated {
				continue
			}
			// The played instance is spent, not lost; the caster gives up
			// their first other card.
			idx := 0
			if idx < len(other.Hand) && other.Hand[idx].InstanceID == c.InstanceID {
				idx = 1
			}
			if idx >= len(other.Hand) {
				continue
			}
			lost := other.Hand[idx]
			other.Hand = append(other.Hand[:idx], other.Hand[idx+1:]...)
			ns.DiscardPile = append(ns.DiscardPile, lost)
			ns.addLog(other.ID, fmt.Sprintf("lost %s to the plague", lost.Name))
		}
		return ""
	},
	BlockNeutral: func(ns *GameState, p *Player, c CardInstance) string {
		ns.registerEvent(p.ID, c)
		return ""
	},
	BlockAttack: func(ns *GameState, p *Player, c CardInstance) string {
		ns.registerEvent(p.ID, c)
		return ""
	},
}

// PlayCard plays a resource or event card from the hand. Generals go through
// DeployGeneral; strategy and tactician cards only enter play through combat.
func (gs *GameState) PlayCard(playerID, instanceID, targetTerritoryID string) *GameState {
	p := gs.player(playerID)
	if gs.Phase != Playing || p == nil || handIndex(p, instanceID) == -1 {
		return gs
	}

	ns := gs.Copy()
	reject := func(msg string) *GameState {
		ns.addLog(playerID, msg)
		return ns
	}

	cur := ns.currentPlayer()
	if cur == nil || cur.ID != playerID {
		return reject("only the current player may play cards")
	}
	if ns.TurnPhase != ActionPhase {
		return reject("cards can only be played in the action phase")
	}
	if ns.Combat != nil && ns.Combat.Phase != Resolved {
		return reject("resolve the current combat first")
	}

	idx := handIndex(cur, instanceID)
	card := cur.Hand[idx]
	// Free cards stay playable at zero actions.
	cost := card.Cost
	if cost > 0 && cur.Actions < cost {
		return reject(fmt.Sprintf("%s costs %d action points, %d left", card.Name, cost, cur.Actions))
	}

	var applied string
	var keepInPlay bool
	switch card.Type {
	case ResourceCard:
		h, ok := resourceHandlers[card.Bonus]
		if !ok {
			return gs
		}
		if msg := h(ns, cur, card, targetTerritoryID); msg != "" {
			return reject(msg)
		}
		cur.Resources += card.Value
		applied = fmt.Sprintf("played %s (+%d resources)", card.Name, card.Value)
	case EventCard:
		h, ok := eventHandlers[card.EventKind]
		if !ok {
			return gs
		}
		if msg := h(ns, cur, card); msg != "" {
			return reject(msg)
		}
		keepInPlay = card.Duration > 0 && (card.EventKind == BlockNeutral || card.EventKind == BlockAttack || card.EventKind == AttackDebuff)
		applied = fmt.Sprintf("played %s", card.Name)
	case GeneralCard:
		return reject(fmt.Sprintf("%s must be deployed to a territory", card.Name))
	default:
		return reject(fmt.Sprintf("%s can only be played during an attack or defense", card.Name))
	}

	idx = handIndex(cur, instanceID)
	cur.Hand = append(cur.Hand[:idx], cur.Hand[idx+1:]...)
	if !keepInPlay {
		ns.DiscardPile = append(ns.DiscardPile, card)
	}
	cur.Actions -= cost
	ns.addLog(playerID, applied)
	return ns
}

// DeployGeneral garrisons a general from the hand onto an owned territory,
// spending the card's action-point cost.
func (gs *GameState) DeployGeneral(playerID, instanceID, territoryID string) *GameState {
	p := gs.player(playerID)
	t := gs.territory(territoryID)
	if gs.Phase != Playing || p == nil || t == nil || handIndex(p, instanceID) == -1 {
		return gs
	}

	ns := gs.Copy()
	reject := func(msg string) *GameState {
		ns.addLog(playerID, msg)
		return ns
	}

	cur := ns.currentPlayer()
	if cur == nil || cur.ID != playerID {
		return reject("only the current player may deploy generals")
	}
	if ns.TurnPhase != ActionPhase {
		return reject("generals can only be deployed in the action phase")
	}
	if ns.Combat != nil && ns.Combat.Phase != Resolved {
		return reject("resolve the current combat first")
	}

	target := ns.territory(territoryID)
	if target.Owner != playerID {
		return reject(fmt.Sprintf("%s is not yours to garrison", target.Name))
	}

	idx := handIndex(cur, instanceID)
	card := cur.Hand[idx]
	if card.Type != GeneralCard {
		return reject(fmt.Sprintf("%s is not a general", card.Name))
	}
	cost := card.Cost
	if cost > 0 && cur.Actions < cost {
		return reject(fmt.Sprintf("%s costs %d action points, %d left", card.Name, cost, cur.Actions))
	}

	cur.Hand = append(cur.Hand[:idx], cur.Hand[idx+1:]...)
	target.Garrison = append(target.Garrison, card)
	cur.Actions -= cost
	ns.addLog(playerID, fmt.Sprintf("garrisoned %s at %s", card.Name, target.Name))
	return ns
}

func (gs *GameState) addTurnEffect(kind EffectKind, playerID, territoryID string, magnitude int, global bool, duration int) {
	gs.TurnEffects = append(gs.TurnEffects, TurnEffect{
		Kind:        kind,
		PlayerID:    playerID,
		TerritoryID: territoryID,
		Magnitude:   magnitude,
		Global:      global,
		CreatedTurn: gs.Turn,
		Duration:    duration,
	})
}

// registerEvent puts a duration event in force and refreshes the block
// flags derived from the active set.
func (gs *GameState) registerEvent(playerID string, card CardInstance) {
	gs.ActiveEvents = append(gs.ActiveEvents, ActiveEvent{
		Card:        card,
		PlayerID:    playerID,
		CreatedTurn: gs.Turn,
	})
	gs.refreshBlockFlags()
}
