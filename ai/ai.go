// Package ai drives a computer-controlled seat through the same command
// surface human clients use. Decisions are heuristic with a difficulty dial;
// nothing here touches game state except through engine commands.
package ai

import (
	"math/rand"

	"golang.org/x/exp/slices"

	"sanguo/game"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

var aiNames = []string{
	"조조 (AI)",
	"유비 (AI)",
	"손권 (AI)",
	"여포 (AI)",
	"관우 (AI)",
	"장비 (AI)",
	"제갈량 (AI)",
	"사마의 (AI)",
}

// Name returns a display name for the nth computer seat.
func Name(index int) string {
	return aiNames[index%len(aiNames)]
}

// Player holds the difficulty dial and a private random source so a seeded
// game replays the same decisions.
type Player struct {
	difficulty Difficulty
	rng        *rand.Rand
}

func NewPlayer(difficulty Difficulty, seed int64) *Player {
	return &Player{
		difficulty: difficulty,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// tuning per difficulty
func (a *Player) attackChance() float64 {
	switch a.difficulty {
	case Easy:
		return 0.3
	case Hard:
		return 0.7
	}
	return 0.5
}

func (a *Player) deployChance() float64 {
	switch a.difficulty {
	case Easy:
		return 0.2
	case Hard:
		return 0.6
	}
	return 0.4
}

func (a *Player) defenseChance() float64 {
	switch a.difficulty {
	case Easy:
		return 0.3
	case Hard:
		return 0.8
	}
	return 0.5
}

func (a *Player) maxAttackCards() int {
	switch a.difficulty {
	case Easy:
		return 1
	case Hard:
		return 3
	}
	return 2
}

// ExecuteFullTurn plays out the current seat's whole turn: draw, a run of
// actions while points remain, turn end, and any forced discards. Combats
// the turn starts are resolved inline, including the opponent's defense when
// that opponent is also computer-controlled.
func (a *Player) ExecuteFullTurn(gs *game.GameState) *game.GameState {
	cur := gs.Players[gs.CurrentPlayer]
	if !cur.IsAI || gs.Phase != game.Playing {
		return gs
	}
	playerID := cur.ID

	if gs.TurnPhase == game.DrawPhase {
		gs = gs.DrawCards(playerID)
		gs = gs.AdvancePhase()
	}

	for gs.TurnPhase == game.ActionPhase && gs.Players[gs.CurrentPlayer].Actions > 0 {
		next := a.decideAction(gs, playerID)
		if next == nil {
			break
		}
		gs = next(gs)
		if gs.Combat != nil {
			gs = a.HandleCombat(gs)
			gs = gs.ClearCombat()
		}
		if gs.Phase != game.Playing {
			return gs
		}
	}

	if gs.TurnPhase == game.ActionPhase {
		gs = gs.EndTurn(playerID)
	}

	for gs.TurnPhase == game.DiscardPhase && gs.Players[gs.CurrentPlayer].ID == playerID {
		hand := gs.Players[gs.CurrentPlayer].Hand
		if len(hand) <= game.SoftHandSize {
			break
		}
		discard := a.selectDiscard(hand)
		gs = gs.DiscardCard(playerID, discard.InstanceID)
	}

	return gs
}

// decideAction picks the next engine command, or nil to stop acting.
func (a *Player) decideAction(gs *game.GameState, playerID string) func(*game.GameState) *game.GameState {
	p := gs.Players[gs.CurrentPlayer]

	var generals, tacticians []game.CardInstance
	for _, c := range p.Hand {
		switch c.Type {
		case game.GeneralCard:
			generals = append(generals, c)
		case game.TacticianCard:
			tacticians = append(tacticians, c)
		}
	}

	attackable := gs.AttackableTerritoryIDs(playerID)
	if len(attackable) > 0 && len(generals) > 0 && a.rng.Float64() < a.attackChance() {
		target := a.selectAttackTarget(gs, attackable)
		cards := a.selectAttackCards(p.Hand, generals)
		if target != "" && len(cards) > 0 {
			ids := make([]string, 0, len(cards)+1)
			for _, c := range cards {
				ids = append(ids, c.InstanceID)
			}
			tacticianTarget := ""
			if len(tacticians) > 0 {
				ids = append(ids, tacticians[0].InstanceID)
				tacticianTarget = cards[0].InstanceID
			}
			return func(s *game.GameState) *game.GameState {
				return s.StartAttack(playerID, target, ids, tacticianTarget)
			}
		}
	}

	if len(generals) > 0 && len(p.Territories) > 0 && a.rng.Float64() < a.deployChance() {
		if target := a.selectDeployTarget(gs, playerID); target != "" {
			gen := generals[0]
			return func(s *game.GameState) *game.GameState {
				return s.DeployGeneral(playerID, gen.InstanceID, target)
			}
		}
	}

	return nil
}

// selectAttackTarget scores candidates by value, thin defenses and small
// garrisons. Easy picks at random; hard also favors well-connected cities.
func (a *Player) selectAttackTarget(gs *game.GameState, attackable []string) string {
	if len(attackable) == 0 {
		return ""
	}
	if a.difficulty == Easy {
		return attackable[a.rng.Intn(len(attackable))]
	}

	ids := make(map[string]bool, len(attackable))
	for _, id := range attackable {
		ids[id] = true
	}

	best, bestScore := "", -1 << 30
	for _, t := range gs.Territories {
		if !ids[t.ID] {
			continue
		}
		score := t.Value * 2
		score -= t.DefenseBonus
		score -= len(t.Garrison) * 3
		if t.Owner == "" {
			score += 5
		}
		if a.difficulty == Hard {
			score += len(t.AdjacentTo)
		}
		if score > bestScore {
			best, bestScore = t.ID, score
		}
	}
	return best
}

// selectAttackCards takes the strongest generals up to the difficulty's
// budget; hard mode throws in one offensive strategy card.
func (a *Player) selectAttackCards(hand, generals []game.CardInstance) []game.CardInstance {
	sorted := append([]game.CardInstance{}, generals...)
	slices.SortFunc(sorted, func(x, y game.CardInstance) int {
		return y.Attack - x.Attack
	})

	n := a.maxAttackCards()
	if n > len(sorted) {
		n = len(sorted)
	}
	selected := append([]game.CardInstance{}, sorted[:n]...)

	if a.difficulty == Hard {
		for _, c := range hand {
			if c.Type == game.StrategyCard && (c.Effect == game.Siege || c.Effect == game.Ambush) {
				selected = append(selected, c)
				break
			}
		}
	}
	return selected
}

// selectDeployTarget prefers the thinnest garrison on the frontline, falling
// back to the thinnest garrison anywhere.
func (a *Player) selectDeployTarget(gs *game.GameState, playerID string) string {
	var owned, frontline []*game.Territory
	for _, t := range gs.Territories {
		if t.Owner != playerID {
			continue
		}
		owned = append(owned, t)
		for _, adjID := range t.AdjacentTo {
			if adj := territoryByID(gs, adjID); adj != nil && adj.Owner != playerID {
				frontline = append(frontline, t)
				break
			}
		}
	}

	pool := frontline
	if len(pool) == 0 {
		pool = owned
	}
	if len(pool) == 0 {
		return ""
	}
	slices.SortFunc(pool, func(x, y *game.Territory) int {
		return len(x.Garrison) - len(y.Garrison)
	})
	return pool[0].ID
}

// selectDiscard drops the least valuable card type first.
func (a *Player) selectDiscard(hand []game.CardInstance) game.CardInstance {
	rank := map[game.CardType]int{
		game.EventCard:     1,
		game.ResourceCard:  2,
		game.StrategyCard:  3,
		game.TacticianCard: 4,
		game.GeneralCard:   5,
	}
	best := hand[0]
	for _, c := range hand[1:] {
		if rank[c.Type] < rank[best.Type] {
			best = c
		}
	}
	return best
}

// HandleCombat answers a pending combat on behalf of a computer-controlled
// defender. Human defenders are left to act through their own client.
func (a *Player) HandleCombat(gs *game.GameState) *game.GameState {
	combat := gs.Combat
	if combat == nil || combat.Phase != game.Defending {
		return gs
	}
	var defender *game.Player
	for _, p := range gs.Players {
		if p.ID == combat.DefenderID {
			defender = p
			break
		}
	}
	if defender == nil || !defender.IsAI {
		return gs
	}

	cards := a.selectDefenseCards(combat, defender)
	if len(cards) == 0 {
		return gs.SkipDefense()
	}
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.InstanceID
	}
	return gs.Defend(ids)
}

// selectDefenseCards stacks defenders until the visible attack power is
// matched, topping up with one REINFORCE card above easy difficulty.
func (a *Player) selectDefenseCards(combat *game.Combat, defender *game.Player) []game.CardInstance {
	if a.rng.Float64() > a.defenseChance() {
		return nil
	}

	attackPower := 0
	for _, c := range combat.AttackCards {
		if c.Type == game.GeneralCard {
			attackPower += c.Attack
		}
	}

	var generals []game.CardInstance
	for _, c := range defender.Hand {
		if c.Type == game.GeneralCard {
			generals = append(generals, c)
		}
	}
	slices.SortFunc(generals, func(x, y game.CardInstance) int {
		return y.Defense - x.Defense
	})

	var selected []game.CardInstance
	defensePower := 0
	for _, g := range generals {
		if defensePower >= attackPower {
			break
		}
		selected = append(selected, g)
		defensePower += g.Defense
	}

	if a.difficulty != Easy && defensePower < attackPower {
		for _, c := range defender.Hand {
			if c.Type == game.StrategyCard && c.Effect == game.Reinforce {
				selected = append(selected, c)
				break
			}
		}
	}
	return selected
}

func territoryByID(gs *game.GameState, id string) *game.Territory {
	for _, t := range gs.Territories {
		if t.ID == id {
			return t
		}
	}
	return nil
}
