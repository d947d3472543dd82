package game

import (
	"fmt"
	"math/rand"
	"time"
)

type GamePhase string

const (
	Playing  GamePhase = "playing"
	Finished GamePhase = "finished"
)

type TurnPhase string

const (
	DrawPhase    TurnPhase = "draw"
	ActionPhase  TurnPhase = "action"
	DiscardPhase TurnPhase = "discard"
)

type Player struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Color           string         `json:"color"`
	Hand            []CardInstance `json:"hand"`
	HandSize        int            `json:"handSize"`
	Territories     []string       `json:"territories"`
	Actions         int            `json:"actions"`
	IsActive        bool           `json:"isActive"`
	IsEliminated    bool           `json:"isEliminated"`
	Resources       int            `json:"resources"`
	IsAI            bool           `json:"isAI,omitempty"`
	NextTurnPenalty int            `json:"nextTurnActionPenalty,omitempty"`
}

type CombatPhase string

const (
	Defending CombatPhase = "defending"
	Resolving CombatPhase = "resolving"
	Resolved  CombatPhase = "resolved"
)

type CombatResult struct {
	AttackPower  int    `json:"attackPower"`
	DefensePower int    `json:"defensePower"`
	Winner       string `json:"winner"` // "attacker" or "defender"
	Difference   int    `json:"difference"`
}

// Combat is created by a successful attack declaration and consumed exactly
// once through resolution. DefenderID is empty for neutral territories.
type Combat struct {
	AttackerID        string         `json:"attackerId"`
	DefenderID        string         `json:"defenderId"`
	TargetTerritoryID string         `json:"targetTerritoryId"`
	AttackCards       []CardInstance `json:"attackCards"`
	DefenseCards      []CardInstance `json:"defenseCards"`
	TacticianCard     *CardInstance  `json:"tacticianCard"`
	TacticianTargetID string         `json:"tacticianTargetInstanceId"`
	Phase             CombatPhase    `json:"phase"`
	Result            *CombatResult  `json:"result,omitempty"`
}

// ActiveEvent is an event card in force, stamped with the turn it was played
// so expiry can be computed from elapsed turns.
type ActiveEvent struct {
	Card        CardInstance `json:"card"`
	PlayerID    string       `json:"playerId"`
	CreatedTurn int          `json:"createdTurn"`
}

// VictoryCandidate tracks a player holding a victory threshold; the win is
// only confirmed after the threshold has been held for the configured number
// of consecutive turns.
type VictoryCandidate struct {
	PlayerID  string `json:"playerId"`
	SinceTurn int    `json:"sinceTurn"`
}

type LogEntry struct {
	Seq      int       `json:"seq"`
	Turn     int       `json:"turn"`
	PlayerID string    `json:"playerId"`
	Message  string    `json:"message"`
	Time     time.Time `json:"timestamp"`
}

// Options configure a new game. The zero value picks the catalog defaults
// and a time-based shuffle seed.
type Options struct {
	Seed               int64 `json:"-"`
	VictoryTerritories int   `json:"victoryTerritories"`
	VictoryValue       int   `json:"victoryValue"`
	ConfirmationTurns  int   `json:"confirmationTurns"`
}

// GameState is the root aggregate. Commands never mutate their receiver:
// each returns a new snapshot built from Copy, or the unchanged receiver
// when the referenced entity does not exist.
type GameState struct {
	Phase         GamePhase         `json:"phase"`
	Turn          int               `json:"currentTurn"`
	CurrentPlayer int               `json:"currentPlayerIndex"`
	TurnPhase     TurnPhase         `json:"turnPhase"`
	Players       []*Player         `json:"players"`
	Territories   []*Territory      `json:"territories"`
	Deck          []CardInstance    `json:"deck"`
	DiscardPile   []CardInstance    `json:"discardPile"`
	ActiveEvents  []ActiveEvent     `json:"activeEvents"`
	TurnEffects   []TurnEffect      `json:"turnEffects"`
	Combat        *Combat           `json:"combat"`
	Winner        string            `json:"winner"`
	Candidate     *VictoryCandidate `json:"victoryCandidate"`
	Log           []LogEntry        `json:"log"`
	BlockNeutral  bool              `json:"blockNeutralCapture"`
	BlockAttacks  bool              `json:"blockAllAttacks"`
	Options       Options           `json:"options"`

	rng          *rand.Rand
	nextInstance int
	nextLogSeq   int
}

// NewGame builds the initial state for 2-4 players. This is the one loud
// failure in the engine: outside that range no valid state exists.
func NewGame(playerNames []string, opts Options) (*GameState, error) {
	if len(playerNames) < 2 || len(playerNames) > 4 {
		return nil, fmt.Errorf("player count must be 2-4, got %d", len(playerNames))
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.VictoryTerritories == 0 {
		opts.VictoryTerritories = DefaultVictoryTerritories
	}
	if opts.VictoryValue == 0 {
		opts.VictoryValue = DefaultVictoryValue
	}
	if opts.ConfirmationTurns == 0 {
		opts.ConfirmationTurns = DefaultConfirmationTurns
	}

	gs := &GameState{
		Phase:       Playing,
		Turn:        1,
		TurnPhase:   DrawPhase,
		Territories: newTerritories(),
		DiscardPile: []CardInstance{},
		Options:     opts,
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}

	gs.Deck = gs.instantiate(CatalogCards())
	gs.shuffle(gs.Deck)

	for i, name := range playerNames {
		p := &Player{
			ID:          fmt.Sprintf("player-%d", i),
			Name:        name,
			Color:       playerColors[i],
			Hand:        []CardInstance{},
			Territories: []string{},
			Actions:     ActionsPerTurn,
			IsActive:    i == 0,
		}
		p.Hand = append(p.Hand, gs.popDeck(InitialHandSize)...)
		gs.Players = append(gs.Players, p)
	}

	// Starting positions are fixed per player count but the assignment order
	// is shuffled for fairness, using the seeded source so tests can pin it.
	positions := append([]string(nil), startingPositions[len(playerNames)]...)
	gs.rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})
	for i, p := range gs.Players {
		if t := gs.territory(positions[i]); t != nil {
			t.Owner = p.ID
			p.Territories = append(p.Territories, t.ID)
		}
	}

	gs.addLog("system", "game started")
	return gs, nil
}

// Copy returns a deep copy sharing only the immutable catalog strings and
// the RNG (commands against one room are serialized, so a shared source is
// safe and keeps the deal deterministic under one seed).
func (gs *GameState) Copy() *GameState {
	ns := *gs

	ns.Players = make([]*Player, len(gs.Players))
	for i, p := range gs.Players {
		cp := *p
		cp.Hand = append([]CardInstance{}, p.Hand...)
		cp.Territories = append([]string{}, p.Territories...)
		ns.Players[i] = &cp
	}

	ns.Territories = make([]*Territory, len(gs.Territories))
	for i, t := range gs.Territories {
		ct := *t
		ct.AdjacentTo = append([]string{}, t.AdjacentTo...)
		ct.Garrison = append([]CardInstance{}, t.Garrison...)
		ns.Territories[i] = &ct
	}

	ns.Deck = append([]CardInstance{}, gs.Deck...)
	ns.DiscardPile = append([]CardInstance{}, gs.DiscardPile...)
	ns.ActiveEvents = append([]ActiveEvent{}, gs.ActiveEvents...)
	ns.TurnEffects = append([]TurnEffect{}, gs.TurnEffects...)
	ns.Log = append([]LogEntry{}, gs.Log...)

	if gs.Combat != nil {
		cc := *gs.Combat
		cc.AttackCards = append([]CardInstance{}, gs.Combat.AttackCards...)
		cc.DefenseCards = append([]CardInstance{}, gs.Combat.DefenseCards...)
		if gs.Combat.TacticianCard != nil {
			tc := *gs.Combat.TacticianCard
			cc.TacticianCard = &tc
		}
		if gs.Combat.Result != nil {
			r := *gs.Combat.Result
			cc.Result = &r
		}
		ns.Combat = &cc
	}
	if gs.Candidate != nil {
		c := *gs.Candidate
		ns.Candidate = &c
	}

	return &ns
}

func (gs *GameState) player(id string) *Player {
	for _, p := range gs.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (gs *GameState) territory(id string) *Territory {
	for _, t := range gs.Territories {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (gs *GameState) currentPlayer() *Player {
	if gs.CurrentPlayer < 0 || gs.CurrentPlayer >= len(gs.Players) {
		return nil
	}
	return gs.Players[gs.CurrentPlayer]
}

func (gs *GameState) addLog(playerID, message string) {
	gs.nextLogSeq++
	gs.Log = append(gs.Log, LogEntry{
		Seq:      gs.nextLogSeq,
		Turn:     gs.Turn,
		PlayerID: playerID,
		Message:  message,
		Time:     time.Now(),
	})
}

// instantiate issues fresh instance ids for a batch of catalog cards.
func (gs *GameState) instantiate(cards []Card) []CardInstance {
	out := make([]CardInstance, len(cards))
	for i, c := range cards {
		gs.nextInstance++
		out[i] = CardInstance{Card: c, InstanceID: fmt.Sprintf("%s#%d", c.ID, gs.nextInstance)}
	}
	return out
}

func (gs *GameState) shuffle(cards []CardInstance) {
	gs.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// popDeck removes up to count cards from the top of the deck.
func (gs *GameState) popDeck(count int) []CardInstance {
	if count > len(gs.Deck) {
		count = len(gs.Deck)
	}
	drawn := append([]CardInstance{}, gs.Deck[:count]...)
	gs.Deck = append([]CardInstance{}, gs.Deck[count:]...)
	return drawn
}
