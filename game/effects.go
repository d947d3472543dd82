package game

// Turn effects are transient combat modifiers created by resource and event
// cards. Each kind is a tagged variant; combat resolution folds them in
// through the accumulators below rather than matching on strings.

type EffectKind string

const (
	EffectAttackBoost      EffectKind = "attack_boost"
	EffectAttackDebuff     EffectKind = "attack_debuff"
	EffectTerritoryDefense EffectKind = "territory_defense"
)

type TurnEffect struct {
	Kind        EffectKind `json:"kind"`
	PlayerID    string     `json:"playerId"`
	TerritoryID string     `json:"territoryId,omitempty"`
	Magnitude   int        `json:"magnitude"`
	Global      bool       `json:"global"`
	CreatedTurn int        `json:"createdTurn"`
	Duration    int        `json:"duration"`
}

// Expiry rule: player-owned effects lapse at the start of the owning
// player's next turn. Global effects and events lapse strictly by elapsed
// turn count - one created on turn T with duration D is gone once the turn
// counter reaches T+D, no matter whose turn starts.

func (e TurnEffect) expiredGlobal(turn int) bool {
	return e.Global && turn >= e.CreatedTurn+e.Duration
}

// purgeEffectsFor drops the given player's own effects plus any global
// effect or event past its elapsed-turn window. Called at every turn start.
func (gs *GameState) purgeEffectsFor(playerID string) {
	kept := gs.TurnEffects[:0]
	for _, e := range gs.TurnEffects {
		if !e.Global && e.PlayerID == playerID {
			continue
		}
		if e.expiredGlobal(gs.Turn) {
			continue
		}
		kept = append(kept, e)
	}
	gs.TurnEffects = kept

	events := gs.ActiveEvents[:0]
	for _, ev := range gs.ActiveEvents {
		if gs.Turn >= ev.CreatedTurn+ev.Card.Duration {
			// Expired event instances are discarded, never lost.
			gs.DiscardPile = append(gs.DiscardPile, ev.Card)
			continue
		}
		events = append(events, ev)
	}
	gs.ActiveEvents = events
	gs.refreshBlockFlags()
}

// refreshBlockFlags recomputes the global block flags from whatever events
// remain in force.
func (gs *GameState) refreshBlockFlags() {
	gs.BlockNeutral = false
	gs.BlockAttacks = false
	for _, ev := range gs.ActiveEvents {
		switch ev.Card.EventKind {
		case BlockNeutral:
			gs.BlockNeutral = true
		case BlockAttack:
			gs.BlockAttacks = true
		}
	}
}

// attackModifier sums the net turn-effect adjustment for an attacker: own
// boosts minus any active global debuff.
func (gs *GameState) attackModifier(attackerID string) int {
	mod := 0
	for _, e := range gs.TurnEffects {
		switch e.Kind {
		case EffectAttackBoost:
			if e.PlayerID == attackerID {
				mod += e.Magnitude
			}
		case EffectAttackDebuff:
			if e.Global || e.PlayerID != attackerID {
				mod -= e.Magnitude
			}
		}
	}
	return mod
}

// territoryDefenseBonus sums active defense effects targeting a territory.
func (gs *GameState) territoryDefenseBonus(territoryID string) int {
	bonus := 0
	for _, e := range gs.TurnEffects {
		if e.Kind == EffectTerritoryDefense && e.TerritoryID == territoryID {
			bonus += e.Magnitude
		}
	}
	return bonus
}
