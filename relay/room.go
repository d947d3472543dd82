package relay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sanguo/game"
)

// member is the transport-facing side of a connected client. The websocket
// server implements it; tests substitute a recorder.
type member interface {
	ID() string
	Send(msgType string, payload any)
}

// Seat is one chair at the table. A seat with a ClientID is occupied; a seat
// with a Token but no ClientID is reserved for a reconnect until
// ReservedUntil passes.
type Seat struct {
	Index         int
	Name          string
	Color         string
	ClientID      string
	Token         string
	ReservedUntil time.Time
	LastSeen      time.Time
}

func (s *Seat) occupied() bool { return s.ClientID != "" }

func (s *Seat) reserved(now time.Time) bool {
	return s.ClientID == "" && !s.ReservedUntil.IsZero() && s.ReservedUntil.After(now)
}

func (s *Seat) playerID() string {
	return fmt.Sprintf("player-%d", s.Index)
}

// clear empties a seat entirely; release keeps the token and opens the
// reconnect window instead.
func (s *Seat) clear() {
	s.Name = ""
	s.ClientID = ""
	s.Token = ""
	s.ReservedUntil = time.Time{}
	s.LastSeen = time.Time{}
}

// Room is one table: seats, membership and the authoritative game state.
// All exported methods are safe for concurrent use.
type Room struct {
	Code       string
	MaxPlayers int

	mu           sync.Mutex
	seats        []*Seat
	members      map[string]member
	hostID       string
	state        *game.GameState
	createdAt    time.Time
	lastActivity time.Time

	seatGrace time.Duration
	now       func() time.Time
}

func newRoom(code string, maxPlayers int, seatGrace time.Duration, now func() time.Time) *Room {
	if maxPlayers < 2 {
		maxPlayers = 2
	}
	if maxPlayers > 4 {
		maxPlayers = 4
	}
	r := &Room{
		Code:         code,
		MaxPlayers:   maxPlayers,
		members:      make(map[string]member),
		createdAt:    now(),
		lastActivity: now(),
		seatGrace:    seatGrace,
		now:          now,
	}
	for i := 0; i < maxPlayers; i++ {
		r.seats = append(r.seats, &Seat{Index: i, Color: game.PlayerColor(i)})
	}
	return r
}

func (r *Room) touch() { r.lastActivity = r.now() }

// adopt subscribes the room's creator and makes them host before any seat
// is taken.
func (r *Room) adopt(m member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hostID = m.ID()
	r.members[m.ID()] = m
	r.touch()
	m.Send(MsgRoomUpdate, r.infoLocked())
}

// Join subscribes a client to the room's updates without taking a seat.
func (r *Room) Join(m member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members[m.ID()] = m
	r.touch()
	m.Send(MsgRoomUpdate, r.infoLocked())
	if r.state != nil {
		m.Send(MsgGameUpdate, GameUpdate{State: r.maskedLocked(r.playerIDForLocked(m.ID()))})
	}
}

// Leave gives up the client's seat with no reconnect window and drops the
// subscription.
func (r *Room) Leave(m member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.releaseLocked(m.ID(), false)
	r.refreshHostLocked()
	delete(r.members, m.ID())
	r.touch()
	r.broadcastInfoLocked()
}

// Disconnect is Leave with a grace period: the seat token stays valid so the
// same player can reclaim it.
func (r *Room) Disconnect(m member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.holdsSeatLocked(m.ID()) {
		delete(r.members, m.ID())
		return
	}
	r.releaseLocked(m.ID(), true)
	r.refreshHostLocked()
	delete(r.members, m.ID())
	r.touch()
	r.broadcastInfoLocked()
}

// SelectSeat claims an open seat and issues a fresh reservation token.
func (r *Room) SelectSeat(m member, index int, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= r.MaxPlayers {
		return errors.New("no such seat")
	}
	seat := r.seats[index]
	now := r.now()
	if !seat.occupied() && !seat.ReservedUntil.IsZero() && !seat.ReservedUntil.After(now) {
		seat.clear()
	}
	if seat.occupied() && seat.ClientID != m.ID() {
		return errors.New("seat is taken")
	}
	if !seat.occupied() && seat.reserved(now) {
		return errors.New("seat is reserved")
	}

	// Moving chairs abandons the old one outright.
	r.releaseLocked(m.ID(), false)

	seat.ClientID = m.ID()
	seat.Name = strings.TrimSpace(name)
	if seat.Name == "" {
		seat.Name = "Player " + strconv.Itoa(index+1)
	}
	seat.Token = uuid.NewString()
	seat.ReservedUntil = time.Time{}
	seat.LastSeen = now

	if r.hostID == "" {
		r.hostID = m.ID()
	}
	r.members[m.ID()] = m
	r.touch()
	r.broadcastInfoLocked()
	m.Send(MsgSeatConfirmed, SeatConfirmation{
		RoomCode:  r.Code,
		SeatIndex: index,
		PlayerID:  seat.playerID(),
		SeatToken: seat.Token,
	})
	if r.state != nil {
		m.Send(MsgGameUpdate, GameUpdate{State: r.maskedLocked(seat.playerID())})
	}
	return nil
}

// ReclaimSeat reattaches a reconnecting client to the seat its token
// reserves. An expired reservation clears the seat instead.
func (r *Room) ReclaimSeat(m member, index int, token, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= r.MaxPlayers {
		return errors.New("no such seat")
	}
	seat := r.seats[index]
	if seat.Token == "" {
		return errors.New("seat holds no reservation")
	}

	now := r.now()
	if !seat.occupied() && !seat.ReservedUntil.IsZero() && !seat.ReservedUntil.After(now) {
		seat.clear()
		r.broadcastInfoLocked()
		return errors.New("reservation expired")
	}
	if seat.Token != token {
		return errors.New("wrong seat token")
	}
	if seat.occupied() && seat.ClientID != m.ID() {
		return errors.New("seat is taken")
	}

	seat.ClientID = m.ID()
	seat.ReservedUntil = time.Time{}
	seat.LastSeen = now
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		seat.Name = trimmed
	}

	if r.hostID == "" {
		r.hostID = m.ID()
	}
	r.members[m.ID()] = m
	r.touch()
	r.broadcastInfoLocked()
	m.Send(MsgSeatConfirmed, SeatConfirmation{
		RoomCode:  r.Code,
		SeatIndex: index,
		PlayerID:  seat.playerID(),
		SeatToken: seat.Token,
	})
	if r.state != nil {
		m.Send(MsgGameUpdate, GameUpdate{State: r.maskedLocked(seat.playerID())})
	}
	return nil
}

// Start deals a new game. Host only, and every seat must be filled.
func (r *Room) Start(m member, opts game.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hostID != m.ID() {
		return errors.New("only the host may start the game")
	}
	if r.state != nil {
		return errors.New("the game has already started")
	}
	filled := 0
	names := make([]string, len(r.seats))
	for i, s := range r.seats {
		if s.occupied() {
			filled++
		}
		names[i] = s.Name
		if names[i] == "" {
			names[i] = "Player " + strconv.Itoa(i+1)
		}
	}
	if filled != r.MaxPlayers {
		return errors.New("every seat must be filled to start")
	}

	state, err := game.NewGame(names, opts)
	if err != nil {
		return err
	}
	r.state = state
	r.touch()
	r.broadcastInfoLocked()
	r.broadcastStateLocked()
	return nil
}

// Apply runs one engine command on behalf of a seated client. The relay is
// the authorization boundary: the engine itself never sees unauthenticated
// input.
func (r *Room) Apply(m member, req GameActionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == nil {
		return errors.New("the game has not started")
	}
	seat := r.seatForLocked(m.ID())
	if seat == nil {
		return errors.New("take a seat first")
	}
	if seat.playerID() != req.PlayerID {
		return errors.New("player id does not match your seat")
	}
	if !r.allowedLocked(req.PlayerID, req.Action) {
		return errors.New("not your turn")
	}

	gs := r.state
	switch req.Action {
	case ActionDrawCards:
		next := gs.DrawCards(req.PlayerID)
		// A rejected draw must not leak a phase advance to the client.
		if handSize(next, req.PlayerID) > handSize(gs, req.PlayerID) {
			next = next.AdvancePhase()
		}
		gs = next
	case ActionEndTurn:
		gs = gs.EndTurn(req.PlayerID)
	case ActionAttack:
		gs = gs.StartAttack(req.PlayerID, req.Data.TargetTerritoryID,
			req.Data.CardInstanceIDs, req.Data.TacticianTargetInstanceID)
	case ActionDefend:
		gs = gs.Defend(req.Data.CardInstanceIDs)
	case ActionSkipDefense:
		gs = gs.SkipDefense()
	case ActionClearCombat:
		gs = gs.ClearCombat()
	case ActionDeployGeneral:
		gs = gs.DeployGeneral(req.PlayerID, req.Data.CardInstanceID, req.Data.TerritoryID)
	case ActionPlayCard:
		gs = gs.PlayCard(req.PlayerID, req.Data.CardInstanceID, req.Data.TargetID)
	case ActionDiscardCard:
		gs = gs.DiscardCard(req.PlayerID, req.Data.CardInstanceID)
	default:
		return fmt.Errorf("unknown action %q", req.Action)
	}

	r.state = gs
	r.touch()
	r.broadcastStateLocked()
	return nil
}

// Info snapshots the lobby view of the room.
func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.infoLocked()
}

// MaskedState returns the state as one player is allowed to see it: every
// opposing hand replaced by its count.
func (r *Room) MaskedState(playerID string) *game.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maskedLocked(playerID)
}

// expired reports whether the room has idled past its tier's TTL: no
// occupied or reserved seat, seated but not started, or started.
func (r *Room) expired(cfg Config) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	active := false
	for _, s := range r.seats {
		if s.occupied() || s.reserved(now) {
			active = true
			break
		}
	}

	ttl := cfg.EmptyRoomTTL
	if active {
		if r.state != nil {
			ttl = cfg.ActiveRoomTTL
		} else {
			ttl = cfg.LobbyRoomTTL
		}
	}
	return now.Sub(r.lastActivity) >= ttl
}

// close notifies every member that the room is gone.
func (r *Room) close(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		m.Send(MsgRoomClosed, ErrorMessage{Message: reason})
	}
	r.members = make(map[string]member)
}

func (r *Room) seatForLocked(clientID string) *Seat {
	for _, s := range r.seats {
		if s.ClientID == clientID {
			return s
		}
	}
	return nil
}

func (r *Room) holdsSeatLocked(clientID string) bool {
	return r.seatForLocked(clientID) != nil
}

// handSize reports the hand count for a player id, 0 when absent. A draw is
// accepted exactly when the hand grew.
func handSize(gs *game.GameState, playerID string) int {
	for _, p := range gs.Players {
		if p.ID == playerID {
			return len(p.Hand)
		}
	}
	return 0
}

func (r *Room) playerIDForLocked(clientID string) string {
	if s := r.seatForLocked(clientID); s != nil {
		return s.playerID()
	}
	return ""
}

// releaseLocked vacates any seat held by the client. With preserveToken the
// seat keeps its token and opens the reconnect window.
func (r *Room) releaseLocked(clientID string, preserveToken bool) {
	for _, s := range r.seats {
		if s.ClientID != clientID {
			continue
		}
		s.ClientID = ""
		s.LastSeen = r.now()
		if preserveToken {
			s.ReservedUntil = r.now().Add(r.seatGrace)
		} else {
			s.clear()
		}
	}
}

// refreshHostLocked hands the host role to any remaining occupant when the
// current host is gone.
func (r *Room) refreshHostLocked() {
	if r.hostID != "" && r.holdsSeatLocked(r.hostID) {
		return
	}
	r.hostID = ""
	for _, s := range r.seats {
		if s.occupied() {
			r.hostID = s.ClientID
			return
		}
	}
}

// allowedLocked implements the relay's authorization rule: turn actions
// belong to the current player; defend and skip-defense belong to the
// designated defender while a combat is waiting on them.
func (r *Room) allowedLocked(playerID, action string) bool {
	cur := r.state.Players[r.state.CurrentPlayer]
	if cur != nil && cur.ID == playerID {
		return true
	}
	if action != ActionDefend && action != ActionSkipDefense {
		return false
	}
	combat := r.state.Combat
	return combat != nil && combat.Phase == game.Defending && combat.DefenderID == playerID
}

func (r *Room) infoLocked() RoomInfo {
	now := r.now()
	info := RoomInfo{
		Code:          r.Code,
		MaxPlayers:    r.MaxPlayers,
		HostSeatIndex: -1,
		IsStarted:     r.state != nil,
	}
	for _, s := range r.seats {
		if !s.occupied() && !s.ReservedUntil.IsZero() && !s.ReservedUntil.After(now) {
			s.clear()
		}
		if s.occupied() && s.ClientID == r.hostID {
			info.HostSeatIndex = s.Index
		}
		info.Seats = append(info.Seats, SeatInfo{
			Index:    s.Index,
			Name:     s.Name,
			Color:    s.Color,
			Occupied: s.occupied(),
			Reserved: s.reserved(now),
		})
	}
	return info
}

func (r *Room) maskedLocked(playerID string) *game.GameState {
	if r.state == nil {
		return nil
	}
	masked := r.state.Copy()
	for _, p := range masked.Players {
		p.HandSize = len(p.Hand)
		if p.ID != playerID {
			p.Hand = []game.CardInstance{}
		}
	}
	return masked
}

func (r *Room) broadcastInfoLocked() {
	info := r.infoLocked()
	for _, m := range r.members {
		m.Send(MsgRoomUpdate, info)
	}
}

func (r *Room) broadcastStateLocked() {
	for id, m := range r.members {
		m.Send(MsgGameUpdate, GameUpdate{State: r.maskedLocked(r.playerIDForLocked(id))})
	}
}
