package relay

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Room codes avoid 0/O and 1/I so they survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

// Registry owns every live room. The clock is injected so tests can drive
// reservation and TTL expiry without sleeping.
type Registry struct {
	cfg Config
	now func() time.Time

	mu    sync.Mutex
	rooms map[string]*Room
	rng   *rand.Rand
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:   cfg,
		now:   time.Now,
		rooms: make(map[string]*Room),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom opens a fresh room under a collision-checked code.
func (reg *Registry) CreateRoom(maxPlayers int) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := reg.newCodeLocked()
	room := newRoom(code, maxPlayers, reg.cfg.SeatGrace, reg.now)
	reg.rooms[code] = room
	log.Info().Str("room", code).Int("seats", room.MaxPlayers).Msg("room created")
	return room
}

func (reg *Registry) Get(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[code]
}

// DropClient releases the client's seats across every room, opening the
// reconnect window. Called when a connection dies.
func (reg *Registry) DropClient(m member) {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.Unlock()

	for _, r := range rooms {
		r.Disconnect(m)
	}
}

// Cleanup sweeps rooms past their TTL tier and returns how many closed.
func (reg *Registry) Cleanup() int {
	reg.mu.Lock()
	var stale []*Room
	for code, r := range reg.rooms {
		if r.expired(reg.cfg) {
			stale = append(stale, r)
			delete(reg.rooms, code)
		}
	}
	reg.mu.Unlock()

	for _, r := range stale {
		r.close("room closed for inactivity")
		log.Info().Str("room", r.Code).Msg("idle room cleaned up")
	}
	return len(stale)
}

// RunCleanup sweeps on the configured interval until the context ends.
func (reg *Registry) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(reg.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.Cleanup()
		}
	}
}

func (reg *Registry) newCodeLocked() string {
	for {
		buf := make([]byte, codeLength)
		for i := range buf {
			buf[i] = codeAlphabet[reg.rng.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
}
