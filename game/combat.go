package game

import "fmt"

// StartAttack declares an attack on an adjacent territory with a set of
// committed cards. On acceptance the selected instances leave the attacker's
// hand atomically and one action point is spent. Attacks on owned
// territories enter the defending phase; neutral targets resolve with no
// human defender and go straight to resolving.
func (gs *GameState) StartAttack(playerID, targetID string, cardInstanceIDs []string, tacticianTargetID string) *GameState {
	p := gs.player(playerID)
	target := gs.territory(targetID)
	if gs.Phase != Playing || p == nil || target == nil {
		return gs
	}

	ns := gs.Copy()
	reject := func(msg string) *GameState {
		ns.addLog(playerID, msg)
		return ns
	}

	cur := ns.currentPlayer()
	if cur == nil || cur.ID != playerID {
		return reject("only the current player may attack")
	}
	if ns.TurnPhase != ActionPhase {
		return reject("attacks are only possible in the action phase")
	}
	if ns.Combat != nil {
		return reject("clear the previous combat before attacking again")
	}
	if ns.BlockAttacks {
		return reject("an armistice is in force: no attacks this turn")
	}
	if cur.Actions < 1 {
		return reject("no action points left")
	}
	if target.Owner == playerID {
		return reject(fmt.Sprintf("%s is already yours", target.Name))
	}
	if target.Owner == "" && ns.BlockNeutral {
		return reject("unrest blocks the capture of unowned territories")
	}

	adjacent := false
	for _, id := range catalogAdjacency[targetID] {
		if t := ns.territory(id); t != nil && t.Owner == playerID {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return reject(fmt.Sprintf("%s is not adjacent to any of your territories", target.Name))
	}

	var attackCards []CardInstance
	var tactician *CardInstance
	for _, iid := range cardInstanceIDs {
		idx := handIndex(cur, iid)
		if idx == -1 {
			return reject("a selected card is not in your hand")
		}
		c := cur.Hand[idx]
		switch c.Type {
		case GeneralCard:
			attackCards = append(attackCards, c)
		case StrategyCard:
			if !offensiveStrategy(c.Effect) {
				return reject(fmt.Sprintf("%s cannot be used offensively", c.Name))
			}
			attackCards = append(attackCards, c)
		case TacticianCard:
			if tactician != nil {
				return reject("only one tactician may join an attack")
			}
			tc := c
			tactician = &tc
		default:
			return reject(fmt.Sprintf("%s cannot join an attack", c.Name))
		}
	}
	if len(attackCards) == 0 {
		return reject("an attack needs at least one general or strategy card")
	}
	if tactician != nil {
		found := false
		for _, c := range attackCards {
			if c.InstanceID == tacticianTargetID {
				found = true
				break
			}
		}
		if !found {
			return reject("the tactician must target one of the committed attack cards")
		}
	}

	for _, iid := range cardInstanceIDs {
		idx := handIndex(cur, iid)
		cur.Hand = append(cur.Hand[:idx], cur.Hand[idx+1:]...)
	}
	cur.Actions--

	combat := &Combat{
		AttackerID:        playerID,
		DefenderID:        target.Owner,
		TargetTerritoryID: targetID,
		AttackCards:       attackCards,
		DefenseCards:      []CardInstance{},
		TacticianCard:     tactician,
		TacticianTargetID: tacticianTargetID,
		Phase:             Defending,
	}
	ns.Combat = combat

	if target.Owner == "" {
		combat.Phase = Resolving
		ns.addLog(playerID, fmt.Sprintf("attacks neutral %s", target.Name))
		ns.resolveCombat()
		return ns
	}

	defender := ns.player(target.Owner)
	ns.addLog(playerID, fmt.Sprintf("attacks %s held by %s", target.Name, defender.Name))
	return ns
}

// Defend commits the defender's cards and resolves immediately. Only
// generals and strategy cards may be selected; an empty set is a valid
// stand-down (see SkipDefense).
func (gs *GameState) Defend(cardInstanceIDs []string) *GameState {
	if gs.Phase != Playing || gs.Combat == nil {
		return gs
	}

	ns := gs.Copy()
	if ns.Combat.Phase != Defending {
		ns.addLog(ns.Combat.DefenderID, "there is no attack to defend against")
		return ns
	}
	defender := ns.player(ns.Combat.DefenderID)
	if defender == nil {
		return gs
	}

	for _, iid := range cardInstanceIDs {
		idx := handIndex(defender, iid)
		if idx == -1 {
			ns.addLog(defender.ID, "a selected card is not in your hand")
			return ns
		}
		c := defender.Hand[idx]
		if c.Type != GeneralCard && c.Type != StrategyCard {
			ns.addLog(defender.ID, fmt.Sprintf("%s cannot be used defensively", c.Name))
			return ns
		}
	}

	for _, iid := range cardInstanceIDs {
		idx := handIndex(defender, iid)
		ns.Combat.DefenseCards = append(ns.Combat.DefenseCards, defender.Hand[idx])
		defender.Hand = append(defender.Hand[:idx], defender.Hand[idx+1:]...)
	}

	ns.Combat.Phase = Resolving
	ns.addLog(defender.ID, fmt.Sprintf("defends with %d cards", len(ns.Combat.DefenseCards)))
	ns.resolveCombat()
	return ns
}

// SkipDefense resolves the pending combat with an empty defense set.
func (gs *GameState) SkipDefense() *GameState {
	return gs.Defend(nil)
}

// ClearCombat dismisses a resolved combat. Resolution and clearing are
// separate so the result can be shown before it goes away.
func (gs *GameState) ClearCombat() *GameState {
	if gs.Combat == nil || gs.Combat.Phase != Resolved {
		return gs
	}
	ns := gs.Copy()
	ns.Combat = nil
	return ns
}

// resolveCombat computes both powers and applies the outcome. Idempotent: a
// combat already resolved is left alone. Mutates the receiver; callers pass
// a copy.
func (gs *GameState) resolveCombat() {
	combat := gs.Combat
	if combat == nil || combat.Phase == Resolved {
		return
	}
	target := gs.territory(combat.TargetTerritoryID)
	if target == nil {
		return
	}

	attackPower := 0
	burn := 0
	for _, c := range combat.AttackCards {
		switch c.Type {
		case GeneralCard:
			attackPower += c.Attack
		case StrategyCard:
			if c.Effect == Burn {
				burn += c.Value
			} else {
				attackPower += c.Value
			}
		}
	}
	if t := combat.TacticianCard; t != nil {
		for _, c := range combat.AttackCards {
			if c.InstanceID == combat.TacticianTargetID {
				attackPower += t.Tactics
				break
			}
		}
	}
	attackPower += gs.attackModifier(combat.AttackerID)

	defensePower := target.DefenseBonus + gs.territoryDefenseBonus(target.ID)
	for _, c := range target.Garrison {
		if c.Type == GeneralCard {
			defensePower += c.Defense
		}
	}
	for _, c := range combat.DefenseCards {
		switch c.Type {
		case GeneralCard:
			defensePower += c.Defense
		case StrategyCard:
			if c.Effect == Reinforce {
				defensePower += c.Value
			}
		}
	}
	defensePower -= burn
	if defensePower < 0 {
		defensePower = 0
	}

	winner := "defender"
	if attackPower > defensePower {
		winner = "attacker"
	}
	diff := attackPower - defensePower
	if diff < 0 {
		diff = -diff
	}
	combat.Result = &CombatResult{
		AttackPower:  attackPower,
		DefensePower: defensePower,
		Winner:       winner,
		Difference:   diff,
	}

	if winner == "attacker" {
		gs.captureTerritory(combat.AttackerID, target)
		gs.addLog(combat.AttackerID, fmt.Sprintf("captured %s (%d vs %d)", target.Name, attackPower, defensePower))
	} else {
		gs.addLog(combat.AttackerID, fmt.Sprintf("attack on %s repelled (%d vs %d)", target.Name, attackPower, defensePower))
	}

	// Every participating instance reaches the discard pile exactly once.
	gs.DiscardPile = append(gs.DiscardPile, combat.AttackCards...)
	gs.DiscardPile = append(gs.DiscardPile, combat.DefenseCards...)
	if combat.TacticianCard != nil {
		gs.DiscardPile = append(gs.DiscardPile, *combat.TacticianCard)
	}

	combat.Phase = Resolved
	gs.checkAndApplyVictory()
}

// captureTerritory transfers ownership to the attacker in one transaction:
// previous owner loses the id (and is eliminated at zero territories), the
// garrison is discarded, the attacker gains the id.
func (gs *GameState) captureTerritory(attackerID string, target *Territory) {
	if prev := gs.player(target.Owner); prev != nil {
		removeTerritory(prev, target.ID)
		if len(prev.Territories) == 0 {
			prev.IsEliminated = true
			gs.addLog(prev.ID, fmt.Sprintf("%s has been eliminated", prev.Name))
		}
	}

	gs.DiscardPile = append(gs.DiscardPile, target.Garrison...)
	target.Garrison = []CardInstance{}
	target.Owner = attackerID

	attacker := gs.player(attackerID)
	attacker.Territories = append(attacker.Territories, target.ID)
}
