package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sanguo/game"
)

func newAIGame(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGame([]string{Name(0), "Human"}, game.Options{Seed: 42})
	require.NoError(t, err, "Game setup should succeed")
	gs.Players[0].IsAI = true
	return gs
}

func TestName(t *testing.T) {
	require.NotEmpty(t, Name(0), "Every index yields a name")
	require.Equal(t, Name(0), Name(len(aiNames)), "Names wrap around the roster")
}

func TestSelectAttackTarget(t *testing.T) {
	t.Run("scoring value against defenses and garrisons", func(t *testing.T) {
		a := NewPlayer(Normal, 1)
		gs := newAIGame(t)

		// Luoyang: value 3, terrain 2, neutral -> 6-2+5 = 9.
		// Puyang: value 2, terrain 0, neutral, one garrison -> 4+5-3 = 6.
		for _, tr := range gs.Territories {
			if tr.ID == "puyang" {
				tr.Garrison = append(tr.Garrison, game.CardInstance{})
			}
		}

		got := a.selectAttackTarget(gs, []string{"luoyang", "puyang"})

		require.Equal(t, "luoyang", got, "The garrisoned city scores lower")
	})

	t.Run("returning nothing for an empty candidate list", func(t *testing.T) {
		a := NewPlayer(Normal, 1)
		gs := newAIGame(t)

		require.Empty(t, a.selectAttackTarget(gs, nil), "No candidates, no target")
	})
}

func TestSelectAttackCards(t *testing.T) {
	mk := func(id string, attack int) game.CardInstance {
		return game.CardInstance{
			Card:       game.Card{ID: id, Type: game.GeneralCard, Attack: attack},
			InstanceID: id + "#1",
		}
	}

	t.Run("taking the strongest generals up to the budget", func(t *testing.T) {
		a := NewPlayer(Normal, 1)
		generals := []game.CardInstance{mk("weak", 2), mk("strong", 6), mk("mid", 4)}

		got := a.selectAttackCards(generals, generals)

		require.Len(t, got, 2, "Normal difficulty commits two cards")
		require.Equal(t, 6, got[0].Attack, "The strongest general leads")
		require.Equal(t, 4, got[1].Attack, "The second slot takes the next best")
	})

	t.Run("adding an offensive strategy card on hard", func(t *testing.T) {
		a := NewPlayer(Hard, 1)
		generals := []game.CardInstance{mk("strong", 6)}
		hand := append([]game.CardInstance{}, generals...)
		hand = append(hand, game.CardInstance{
			Card:       game.Card{ID: "siege", Type: game.StrategyCard, Effect: game.Siege, Value: 3},
			InstanceID: "siege#1",
		})

		got := a.selectAttackCards(hand, generals)

		require.Len(t, got, 2, "The general plus one strategy card")
		require.Equal(t, game.StrategyCard, got[1].Type, "The strategy card joins the set")
	})
}

func TestSelectDiscard(t *testing.T) {
	a := NewPlayer(Normal, 1)
	hand := []game.CardInstance{
		{Card: game.Card{ID: "g", Type: game.GeneralCard}, InstanceID: "g#1"},
		{Card: game.Card{ID: "e", Type: game.EventCard}, InstanceID: "e#1"},
		{Card: game.Card{ID: "s", Type: game.StrategyCard}, InstanceID: "s#1"},
	}

	got := a.selectDiscard(hand)

	require.Equal(t, "e#1", got.InstanceID, "Events go first, generals last")
}

func TestSelectDefenseCards(t *testing.T) {
	t.Run("stacking defenders until the attack is matched", func(t *testing.T) {
		a := NewPlayer(Hard, 1)
		combat := &game.Combat{
			AttackCards: []game.CardInstance{
				{Card: game.Card{Type: game.GeneralCard, Attack: 6}},
			},
		}
		defender := &game.Player{
			IsAI: true,
			Hand: []game.CardInstance{
				{Card: game.Card{ID: "d1", Type: game.GeneralCard, Defense: 4}, InstanceID: "d1#1"},
				{Card: game.Card{ID: "d2", Type: game.GeneralCard, Defense: 3}, InstanceID: "d2#1"},
				{Card: game.Card{ID: "d3", Type: game.GeneralCard, Defense: 2}, InstanceID: "d3#1"},
			},
		}

		got := a.selectDefenseCards(combat, defender)

		require.Len(t, got, 2, "Two defenders cover attack 6")
		require.Equal(t, 4, got[0].Defense, "The stoutest defender leads")
	})
}

func TestExecuteFullTurn(t *testing.T) {
	t.Run("playing a complete turn and passing the table", func(t *testing.T) {
		a := NewPlayer(Normal, 1)
		gs := newAIGame(t)

		ns := a.ExecuteFullTurn(gs)

		require.Equal(t, 1, ns.CurrentPlayer, "Play passes to the human seat")
		require.Equal(t, game.DrawPhase, ns.TurnPhase, "The next turn starts fresh")
		require.LessOrEqual(t, len(ns.Players[0].Hand), game.MaxHandSize,
			"The hand respects the cap")
		require.Equal(t, game.Playing, ns.Phase, "One turn cannot end this game")
	})

	t.Run("ignoring a human seat", func(t *testing.T) {
		a := NewPlayer(Normal, 1)
		gs := newAIGame(t)
		gs.Players[0].IsAI = false

		ns := a.ExecuteFullTurn(gs)

		require.Same(t, gs, ns, "A human turn is left alone")
	})
}
