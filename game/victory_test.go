package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckVictory(t *testing.T) {
	t.Run("meeting the territory threshold", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 3
		gs.Options.VictoryValue = 1000
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, "jibei", "beiping", "nanpi")

		require.Equal(t, p0.ID, gs.CheckVictory(), "Three territories meet the threshold")
	})

	t.Run("meeting the value threshold", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 100
		gs.Options.VictoryValue = 6
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		// Luoyang and Xuchang are worth 3 each.
		giveTerritories(gs, p0.ID, "luoyang", "xuchang")

		require.Equal(t, p0.ID, gs.CheckVictory(), "Summed value 6 meets the threshold")
	})

	t.Run("preferring the current player on a tie", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 2
		gs.Options.VictoryValue = 1000
		stripHoldings(gs, gs.Players[0].ID)
		stripHoldings(gs, gs.Players[1].ID)
		giveTerritories(gs, gs.Players[0].ID, "jibei", "beiping")
		giveTerritories(gs, gs.Players[1].ID, "chengdu", "zitong")

		gs.CurrentPlayer = 1
		require.Equal(t, gs.Players[1].ID, gs.CheckVictory(),
			"The current player wins the tie")

		gs.CurrentPlayer = 0
		require.Equal(t, gs.Players[0].ID, gs.CheckVictory(),
			"Otherwise table order decides")
	})

	t.Run("ignoring eliminated players", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 2
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, "jibei", "beiping")
		p0.IsEliminated = true
		gs.CurrentPlayer = 1

		require.Empty(t, gs.CheckVictory(), "An eliminated player cannot win")
	})
}

func TestCheckAndApplyVictory(t *testing.T) {
	t.Run("winning immediately as the sole survivor", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu", "Shu")
		gs.Players[1].IsEliminated = true
		gs.Players[2].IsEliminated = true

		gs.checkAndApplyVictory()

		require.Equal(t, Finished, gs.Phase, "The game ends at once")
		require.Equal(t, gs.Players[0].ID, gs.Winner, "The survivor wins")
	})

	t.Run("registering a candidate instead of an instant threshold win", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 2
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, "jibei", "beiping")

		gs.checkAndApplyVictory()

		require.Equal(t, Playing, gs.Phase, "The claim must be held first")
		require.NotNil(t, gs.Candidate, "A victory candidate is registered")
		require.Equal(t, p0.ID, gs.Candidate.PlayerID, "The leader is the candidate")
		require.Equal(t, gs.Turn, gs.Candidate.SinceTurn, "The claim starts this turn")
	})

	t.Run("confirming a claim held for the configured turns", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 2
		gs.Options.ConfirmationTurns = 1
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, "jibei", "beiping")

		gs.checkAndApplyVictory()
		require.Equal(t, Playing, gs.Phase, "Turn 1: claim registered")

		gs.Turn++
		gs.checkAndApplyVictory()

		require.Equal(t, Finished, gs.Phase, "Turn 2: the held claim confirms")
		require.Equal(t, p0.ID, gs.Winner, "The candidate wins")
	})

	t.Run("displacing a candidate restarts the clock", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 2
		gs.Options.ConfirmationTurns = 2
		p0, p1 := gs.Players[0], gs.Players[1]
		stripHoldings(gs, p0.ID)
		stripHoldings(gs, p1.ID)
		giveTerritories(gs, p0.ID, "jibei", "beiping")

		gs.checkAndApplyVictory()
		require.Equal(t, p0.ID, gs.Candidate.PlayerID, "First claimant registers")

		// The second player overtakes while the first loses the threshold.
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p1.ID, "chengdu", "zitong", "jiameng")
		gs.Turn++
		gs.checkAndApplyVictory()

		require.Equal(t, Playing, gs.Phase, "No instant win for the new claimant")
		require.Equal(t, p1.ID, gs.Candidate.PlayerID, "The candidate is replaced")
		require.Equal(t, gs.Turn, gs.Candidate.SinceTurn, "The clock restarts")
	})

	t.Run("clearing the candidate when the threshold is lost", func(t *testing.T) {
		gs := newTestGame(t, "Wei", "Wu")
		gs.Options.VictoryTerritories = 2
		p0 := gs.Players[0]
		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, "jibei", "beiping")

		gs.checkAndApplyVictory()
		require.NotNil(t, gs.Candidate, "The claim registers")

		stripHoldings(gs, p0.ID)
		giveTerritories(gs, p0.ID, "jibei")
		gs.Turn++
		gs.checkAndApplyVictory()

		require.Nil(t, gs.Candidate, "A lost threshold clears the claim entirely")
		require.Equal(t, Playing, gs.Phase, "The game continues")
	})
}
