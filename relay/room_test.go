package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sanguo/game"
)

type frame struct {
	Type    string
	Payload any
}

// fakeMember records every frame pushed to it.
type fakeMember struct {
	id     string
	frames []frame
}

func (f *fakeMember) ID() string { return f.id }

func (f *fakeMember) Send(msgType string, payload any) {
	f.frames = append(f.frames, frame{Type: msgType, Payload: payload})
}

func (f *fakeMember) last(msgType string) (any, bool) {
	for i := len(f.frames) - 1; i >= 0; i-- {
		if f.frames[i].Type == msgType {
			return f.frames[i].Payload, true
		}
	}
	return nil, false
}

// fakeClock drives reservation and TTL expiry without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRoom(seats int) (*Room, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	return newRoom("TESTAB", seats, 5*time.Minute, clock.now), clock
}

// seatTwo fills a two-seat room and starts the game deterministically.
func seatTwo(t *testing.T, r *Room) (*fakeMember, *fakeMember) {
	t.Helper()
	host := &fakeMember{id: "host"}
	guest := &fakeMember{id: "guest"}
	r.adopt(host)
	require.NoError(t, r.SelectSeat(host, 0, "Wei"), "Host takes seat 0")
	require.NoError(t, r.SelectSeat(guest, 1, "Wu"), "Guest takes seat 1")
	require.NoError(t, r.Start(host, game.Options{Seed: 42}), "The game starts")
	return host, guest
}

func TestSeatSelection(t *testing.T) {
	t.Run("claiming a free seat issues a token", func(t *testing.T) {
		r, _ := newTestRoom(2)
		m := &fakeMember{id: "a"}

		require.NoError(t, r.SelectSeat(m, 0, "Wei"), "A free seat is claimable")

		payload, ok := m.last(MsgSeatConfirmed)
		require.True(t, ok, "The claimant gets a confirmation")
		conf := payload.(SeatConfirmation)
		require.Equal(t, "player-0", conf.PlayerID, "Seat 0 maps to player-0")
		require.NotEmpty(t, conf.SeatToken, "A reservation token is issued")
	})

	t.Run("rejecting a seat someone else occupies", func(t *testing.T) {
		r, _ := newTestRoom(2)
		a := &fakeMember{id: "a"}
		b := &fakeMember{id: "b"}
		require.NoError(t, r.SelectSeat(a, 0, "Wei"))

		require.Error(t, r.SelectSeat(b, 0, "Wu"), "An occupied seat is off limits")
	})

	t.Run("moving chairs abandons the old seat", func(t *testing.T) {
		r, _ := newTestRoom(3)
		m := &fakeMember{id: "a"}
		require.NoError(t, r.SelectSeat(m, 0, "Wei"))

		require.NoError(t, r.SelectSeat(m, 2, "Wei"), "The same client may move")

		info := r.Info()
		require.False(t, info.Seats[0].Occupied, "The old seat frees up")
		require.True(t, info.Seats[2].Occupied, "The new seat is taken")
	})
}

func TestSeatReclaim(t *testing.T) {
	t.Run("reclaiming within the grace window", func(t *testing.T) {
		r, clock := newTestRoom(2)
		a := &fakeMember{id: "a"}
		require.NoError(t, r.SelectSeat(a, 0, "Wei"))
		payload, _ := a.last(MsgSeatConfirmed)
		token := payload.(SeatConfirmation).SeatToken

		r.Disconnect(a)
		require.True(t, r.Info().Seats[0].Reserved, "The seat holds its reservation")

		clock.advance(4 * time.Minute)
		again := &fakeMember{id: "a2"}
		require.NoError(t, r.ReclaimSeat(again, 0, token, ""),
			"The token reclaims the seat inside the grace period")
		require.True(t, r.Info().Seats[0].Occupied, "The seat is occupied again")
	})

	t.Run("rejecting a reclaim after the grace expires", func(t *testing.T) {
		r, clock := newTestRoom(2)
		a := &fakeMember{id: "a"}
		require.NoError(t, r.SelectSeat(a, 0, "Wei"))
		payload, _ := a.last(MsgSeatConfirmed)
		token := payload.(SeatConfirmation).SeatToken

		r.Disconnect(a)
		clock.advance(6 * time.Minute)

		again := &fakeMember{id: "a2"}
		require.Error(t, r.ReclaimSeat(again, 0, token, ""),
			"An expired reservation is gone")
		require.False(t, r.Info().Seats[0].Occupied, "The seat is fully cleared")
		require.False(t, r.Info().Seats[0].Reserved, "No reservation lingers")
	})

	t.Run("rejecting a wrong token", func(t *testing.T) {
		r, _ := newTestRoom(2)
		a := &fakeMember{id: "a"}
		require.NoError(t, r.SelectSeat(a, 0, "Wei"))
		r.Disconnect(a)

		intruder := &fakeMember{id: "x"}
		require.Error(t, r.ReclaimSeat(intruder, 0, "forged", ""),
			"Only the issued token reclaims a seat")
	})

	t.Run("leaving outright voids the reservation", func(t *testing.T) {
		r, _ := newTestRoom(2)
		a := &fakeMember{id: "a"}
		require.NoError(t, r.SelectSeat(a, 0, "Wei"))
		payload, _ := a.last(MsgSeatConfirmed)
		token := payload.(SeatConfirmation).SeatToken

		r.Leave(a)

		require.Error(t, r.ReclaimSeat(a, 0, token, ""),
			"A deliberate leave keeps no reconnect window")
	})
}

func TestHostRefresh(t *testing.T) {
	t.Run("promoting a remaining occupant when the host leaves", func(t *testing.T) {
		r, _ := newTestRoom(2)
		a := &fakeMember{id: "a"}
		b := &fakeMember{id: "b"}
		r.adopt(a)
		require.NoError(t, r.SelectSeat(a, 0, "Wei"))
		require.NoError(t, r.SelectSeat(b, 1, "Wu"))

		r.Leave(a)

		require.Equal(t, 1, r.Info().HostSeatIndex, "The guest inherits the room")
	})
}

func TestRoomStart(t *testing.T) {
	t.Run("requiring the host and a full table", func(t *testing.T) {
		r, _ := newTestRoom(2)
		host := &fakeMember{id: "host"}
		guest := &fakeMember{id: "guest"}
		r.adopt(host)
		require.NoError(t, r.SelectSeat(host, 0, "Wei"))

		require.Error(t, r.Start(guest, game.Options{}), "Only the host starts")
		require.Error(t, r.Start(host, game.Options{}), "A half-empty table cannot start")

		require.NoError(t, r.SelectSeat(guest, 1, "Wu"))
		require.NoError(t, r.Start(host, game.Options{Seed: 42}), "A full table starts")
		require.Error(t, r.Start(host, game.Options{}), "A game starts once")
		require.True(t, r.Info().IsStarted, "The lobby reports the started game")
	})
}

func TestStateRedaction(t *testing.T) {
	t.Run("hiding opposing hands behind a count", func(t *testing.T) {
		r, _ := newTestRoom(2)
		seatTwo(t, r)

		masked := r.MaskedState("player-0")

		require.NotEmpty(t, masked.Players[0].Hand, "Your own hand is visible")
		require.Empty(t, masked.Players[1].Hand, "The opposing hand is hidden")
		require.Equal(t, game.InitialHandSize, masked.Players[1].HandSize,
			"Only the count of the opposing hand leaks")
	})

	t.Run("leaving the authoritative state untouched", func(t *testing.T) {
		r, _ := newTestRoom(2)
		seatTwo(t, r)

		r.MaskedState("player-0")

		full := r.MaskedState("player-1")
		require.NotEmpty(t, full.Players[1].Hand, "Redaction works on copies only")
	})
}

func TestApplyAuthorization(t *testing.T) {
	t.Run("rejecting actions before the game starts", func(t *testing.T) {
		r, _ := newTestRoom(2)
		m := &fakeMember{id: "a"}
		require.NoError(t, r.SelectSeat(m, 0, "Wei"))

		err := r.Apply(m, GameActionRequest{Action: ActionDrawCards, PlayerID: "player-0"})
		require.Error(t, err, "No game, no actions")
	})

	t.Run("rejecting a spoofed player id", func(t *testing.T) {
		r, _ := newTestRoom(2)
		host, _ := seatTwo(t, r)

		err := r.Apply(host, GameActionRequest{Action: ActionDrawCards, PlayerID: "player-1"})
		require.Error(t, err, "A seat cannot act as another player")
	})

	t.Run("rejecting out-of-turn actions", func(t *testing.T) {
		r, _ := newTestRoom(2)
		_, guest := seatTwo(t, r)

		err := r.Apply(guest, GameActionRequest{Action: ActionDrawCards, PlayerID: "player-1"})
		require.Error(t, err, "Turn actions belong to the current player")
	})

	t.Run("running a draw and broadcasting redacted updates", func(t *testing.T) {
		r, _ := newTestRoom(2)
		host, guest := seatTwo(t, r)

		err := r.Apply(host, GameActionRequest{Action: ActionDrawCards, PlayerID: "player-0"})
		require.NoError(t, err, "The current player may draw")

		payload, ok := guest.last(MsgGameUpdate)
		require.True(t, ok, "Every member hears the update")
		update := payload.(GameUpdate)
		require.Empty(t, update.State.Players[0].Hand,
			"The guest never sees the host's cards")
		require.Equal(t, game.InitialHandSize+game.CardsPerDraw,
			update.State.Players[0].HandSize, "The guest sees the hand count grow")
	})

	t.Run("holding the phase when a draw is rejected", func(t *testing.T) {
		r, _ := newTestRoom(2)
		host, _ := seatTwo(t, r)

		require.NoError(t, r.Apply(host, GameActionRequest{
			Action: ActionDrawCards, PlayerID: "player-0",
		}))
		require.Equal(t, game.ActionPhase, r.state.TurnPhase,
			"An accepted draw advances to the action phase")
		handAfterDraw := handSize(r.state, "player-0")

		require.NoError(t, r.Apply(host, GameActionRequest{
			Action: ActionDrawCards, PlayerID: "player-0",
		}))
		require.Equal(t, game.ActionPhase, r.state.TurnPhase,
			"A rejected draw does not move the phase")
		require.Equal(t, handAfterDraw, handSize(r.state, "player-0"),
			"A rejected draw yields no cards")
	})

	t.Run("letting the defender answer a pending combat", func(t *testing.T) {
		r, _ := newTestRoom(2)
		host, guest := seatTwo(t, r)

		require.NoError(t, r.Apply(host, GameActionRequest{
			Action: ActionDrawCards, PlayerID: "player-0",
		}))

		// Defense verbs are rejected while no combat is pending.
		err := r.Apply(guest, GameActionRequest{Action: ActionSkipDefense, PlayerID: "player-1"})
		require.Error(t, err, "No combat, no defense")

		// Stage a frontier: the host holds Xuchang, the guest holds Luoyang,
		// and the host has a general to commit.
		atk := game.CardInstance{
			Card:       game.Card{ID: "vanguard", Type: game.GeneralCard, Attack: 5, Cost: 1},
			InstanceID: "vanguard#99",
		}
		for _, tr := range r.state.Territories {
			switch tr.ID {
			case "xuchang":
				tr.Owner = "player-0"
				r.state.Players[0].Territories = append(r.state.Players[0].Territories, tr.ID)
			case "luoyang":
				tr.Owner = "player-1"
				r.state.Players[1].Territories = append(r.state.Players[1].Territories, tr.ID)
			}
		}
		r.state.Players[0].Hand = append(r.state.Players[0].Hand, atk)

		require.NoError(t, r.Apply(host, GameActionRequest{
			Action:   ActionAttack,
			PlayerID: "player-0",
			Data: ActionData{
				TargetTerritoryID: "luoyang",
				CardInstanceIDs:   []string{atk.InstanceID},
			},
		}))
		require.NoError(t, r.Apply(guest, GameActionRequest{
			Action: ActionSkipDefense, PlayerID: "player-1",
		}), "The designated defender may answer out of turn")
		require.Equal(t, game.Resolved, r.state.Combat.Phase,
			"The skipped defense resolves the combat")
	})
}
