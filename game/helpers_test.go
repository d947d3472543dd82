package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestGame builds a deterministic 2-4 player game for tests.
func newTestGame(t *testing.T, names ...string) *GameState {
	t.Helper()
	gs, err := NewGame(names, Options{Seed: 42})
	require.NoError(t, err, "Game setup should succeed")
	return gs
}

// findCard looks up a catalog definition by id.
func findCard(t *testing.T, id string) Card {
	t.Helper()
	for _, set := range [][]Card{generals, strategies, resources, events, tacticians} {
		for _, c := range set {
			if c.ID == id {
				return c
			}
		}
	}
	t.Fatalf("no catalog card with id %q", id)
	return Card{}
}

// giveCard puts a fresh instance of a catalog card into a player's hand and
// returns it.
func giveCard(gs *GameState, p *Player, def Card) CardInstance {
	inst := gs.instantiate([]Card{def})[0]
	p.Hand = append(p.Hand, inst)
	return inst
}

// giveTerritories hands the listed territories to a player, displacing any
// previous owner's claim.
func giveTerritories(gs *GameState, playerID string, ids ...string) {
	p := gs.player(playerID)
	for _, id := range ids {
		t := gs.territory(id)
		if prev := gs.player(t.Owner); prev != nil && prev.ID != playerID {
			removeTerritory(prev, id)
		}
		if t.Owner != playerID {
			t.Owner = playerID
			p.Territories = append(p.Territories, id)
		}
	}
}

// toActionPhase moves a fresh game into the first player's action phase.
func toActionPhase(gs *GameState) *GameState {
	ns := gs.DrawCards(gs.currentPlayer().ID)
	return ns.AdvancePhase()
}

func instanceIDs(cards ...CardInstance) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.InstanceID
	}
	return ids
}

// discardCount counts instances of one catalog card in the discard pile.
func discardCount(gs *GameState, instanceID string) int {
	n := 0
	for _, c := range gs.DiscardPile {
		if c.InstanceID == instanceID {
			n++
		}
	}
	return n
}
