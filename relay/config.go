package relay

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config tunes the relay server. Every knob comes from the environment so a
// deployment never needs a config file.
type Config struct {
	Addr string `env:"RELAY_ADDR" envDefault:":8080"`

	// A dropped seat stays reserved for its token this long.
	SeatGrace time.Duration `env:"RELAY_SEAT_GRACE" envDefault:"5m"`

	// Idle-room sweep.
	CleanupInterval time.Duration `env:"RELAY_CLEANUP_INTERVAL" envDefault:"1m"`
	EmptyRoomTTL    time.Duration `env:"RELAY_EMPTY_ROOM_TTL" envDefault:"5m"`
	LobbyRoomTTL    time.Duration `env:"RELAY_LOBBY_ROOM_TTL" envDefault:"30m"`
	ActiveRoomTTL   time.Duration `env:"RELAY_ACTIVE_ROOM_TTL" envDefault:"60m"`
}

// LoadConfig reads the relay configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse relay env: %w", err)
	}
	return cfg, nil
}
