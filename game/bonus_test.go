package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stripHoldings removes every territory a player owns so a test can lay out
// holdings from scratch.
func stripHoldings(gs *GameState, playerID string) {
	p := gs.player(playerID)
	for _, tr := range gs.Territories {
		if tr.Owner == playerID {
			tr.Owner = ""
		}
	}
	p.Territories = []string{}
}

func TestCalculateTerritoryBonus(t *testing.T) {
	t.Run("scaling draw and actions with territory count", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// Ten connected cities spanning Hebei and Zhongyuan, neither complete.
		giveTerritories(gs, p0.ID, "jibei", "beiping", "nanpi", "dai", "ye",
			"pingyuan", "puyang", "luoyang", "xuchang", "chenliu")

		b := gs.CalculateTerritoryBonus(p0.ID)

		require.Equal(t, 2, b.BonusDraw, "Ten territories earn two bonus cards")
		require.Equal(t, 1, b.BonusActions, "Ten territories earn one bonus action")
		require.Empty(t, b.DominatedRegions, "No region is complete")
		require.Equal(t, 1, b.FragmentationGroups, "The holdings are one group")
	})

	t.Run("halving region bonuses after the first dominated region", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// All of Hebei (7 cities, draw +1) and all of Zhongyuan (8 cities,
		// draw +1 action +1).
		giveTerritories(gs, p0.ID, regionTerritories[Hebei]...)
		giveTerritories(gs, p0.ID, regionTerritories[Zhongyuan]...)

		b := gs.CalculateTerritoryBonus(p0.ID)

		require.Equal(t, []Region{Hebei, Zhongyuan}, b.DominatedRegions,
			"Both regions are fully held, in catalog order")
		// 15 cities: base draw 2 (capped), base action 1.
		// Hebei pays full (+1 draw), Zhongyuan half (draw 1/2=0, action 1/2=0).
		require.Equal(t, 3, b.BonusDraw, "Base 2 plus Hebei's full bonus")
		require.Equal(t, 1, b.BonusActions, "Base 1; halved bonuses round to zero")
	})

	t.Run("penalizing overexpansion", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// Hebei + Zhongyuan + Xibei's jinyang: 16 connected cities.
		giveTerritories(gs, p0.ID, regionTerritories[Hebei]...)
		giveTerritories(gs, p0.ID, regionTerritories[Zhongyuan]...)
		giveTerritories(gs, p0.ID, "jinyang")

		b := gs.CalculateTerritoryBonus(p0.ID)

		// Base action 1 + Hebei full 0 + Zhongyuan half 0, minus the
		// overexpansion penalty.
		require.Equal(t, 0, b.BonusActions, "Sixteen territories cost an action")
	})

	t.Run("penalizing fragmented holdings", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// Three islands far apart: liaodong, chengdu, nanhai.
		giveTerritories(gs, p0.ID, "liaodong", "chengdu", "nanhai")

		b := gs.CalculateTerritoryBonus(p0.ID)

		require.Equal(t, 3, b.FragmentationGroups, "Three disconnected groups")
		require.Equal(t, -1, b.BonusDraw, "Three groups cost a card")
		require.Equal(t, -1, b.BonusActions, "Three groups cost an action")
	})

	t.Run("clamping the net penalty at minus one", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// Four islands: fragmentation exceeds the table but the clamp holds.
		giveTerritories(gs, p0.ID, "liaodong", "chengdu", "nanhai", "wuwei")

		b := gs.CalculateTerritoryBonus(p0.ID)

		require.Equal(t, 4, b.FragmentationGroups, "Four disconnected groups")
		require.Equal(t, -1, b.BonusDraw, "Draw never drops below minus one")
		require.Equal(t, -1, b.BonusActions, "Actions never drop below minus one")
	})
}

func TestConnectedGroupCount(t *testing.T) {
	t.Run("walking one-way raw adjacency in both directions", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// The raw table lists liaodong -> beiping only from beiping's side;
		// the repaired graph must still join them.
		giveTerritories(gs, p0.ID, "liaodong", "beiping")

		require.Equal(t, 1, gs.ConnectedGroupCount(p0.ID),
			"Adjacency is symmetric regardless of declaration direction")
	})

	t.Run("counting nothing for an empty holding", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		stripHoldings(gs, gs.Players[0].ID)

		require.Equal(t, 0, gs.ConnectedGroupCount(gs.Players[0].ID),
			"No territories means no groups")
	})
}

func TestDominatedRegions(t *testing.T) {
	t.Run("listing only fully held regions", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, regionTerritories[Jiaozhi]...)
		giveTerritories(gs, p0.ID, "zitong") // partial Yizhou

		require.Equal(t, []Region{Jiaozhi}, gs.DominatedRegions(p0.ID),
			"A partial region does not count")
	})
}
