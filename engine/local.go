package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"sanguo/ai"
	"sanguo/game"
)

// MaxTurns caps a local match so two evenly matched agents cannot loop
// forever trading territory back and forth.
const MaxTurns = 500

// Engine drives a full local match between AI seats. Each turn it hands the
// current snapshot to the seat's agent and adopts whatever snapshot comes
// back.
type Engine struct {
	State  *game.GameState
	Agents []*ai.Player
}

// Local builds a match with one agent per seat. Seeds are derived from the
// base seed so a match replays identically, agent randomness included.
func Local(difficulties []ai.Difficulty, seed int64) (*Engine, error) {
	if len(difficulties) < 2 || len(difficulties) > 4 {
		return nil, fmt.Errorf("need 2-4 agents, got %d", len(difficulties))
	}

	names := make([]string, len(difficulties))
	agents := make([]*ai.Player, len(difficulties))
	for i, d := range difficulties {
		names[i] = ai.Name(i)
		agents[i] = ai.NewPlayer(d, seed+int64(i)+1)
	}

	state, err := game.NewGame(names, game.Options{Seed: seed})
	if err != nil {
		return nil, err
	}
	for _, p := range state.Players {
		p.IsAI = true
	}

	return &Engine{State: state, Agents: agents}, nil
}

// Run plays until a winner is confirmed or the turn cap trips. It returns
// the winning player id, empty when the match was cut off.
func (e *Engine) Run() (string, int) {
	turns := 0
	for e.State.Phase == game.Playing && e.State.Winner == "" && turns < MaxTurns {
		seat := e.State.CurrentPlayer
		before := e.State

		e.State = e.Agents[seat].ExecuteFullTurn(e.State)
		turns++

		log.Info().
			Int("turn", e.State.Turn).
			Str("player", before.Players[seat].Name).
			Int("territories", len(e.State.Players[seat].Territories)).
			Msg("turn complete")

		if e.State == before {
			// The agent could not act at all. Abandon rather than spin.
			log.Warn().Int("seat", seat).Msg("agent made no progress, stopping")
			break
		}
	}

	if e.State.Winner != "" {
		log.Info().Str("winner", e.State.Winner).Int("turns", turns).Msg("match over")
	} else {
		log.Info().Int("turns", turns).Msg("match stopped without a winner")
	}
	return e.State.Winner, turns
}
