package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"sanguo/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 45 * time.Second
	sendBufferSize = 32
)

// Server terminates websocket connections and routes envelopes to rooms.
type Server struct {
	cfg      Config
	registry *Registry
	upgrader websocket.Upgrader
}

func NewServer(cfg Config) *Server {
	return &Server{
		cfg:      cfg,
		registry: NewRegistry(cfg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The relay authenticates by room code and seat token, not origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Registry() *Registry { return s.registry }

// Handler serves the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe runs the relay and its cleanup sweep until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.registry.RunCleanup(ctx)

	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", s.cfg.Addr).Msg("relay listening")
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Envelope, sendBufferSize),
	}
	log.Info().Str("client", c.id).Msg("client connected")

	go c.writePump()
	s.readPump(c)
}

// client is one websocket connection; it implements member.
type client struct {
	id   string
	conn *websocket.Conn
	send chan Envelope
}

func (c *client) ID() string { return c.id }

// Send queues one frame; a slow consumer loses frames rather than stalling
// the room.
func (c *client) Send(msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("type", msgType).Msg("marshal outbound frame")
		return
	}
	select {
	case c.send <- Envelope{Type: msgType, Payload: raw}:
	default:
		log.Warn().Str("client", c.id).Str("type", msgType).Msg("send buffer full, frame dropped")
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.registry.DropClient(c)
		close(c.send)
		c.conn.Close()
		log.Info().Str("client", c.id).Msg("client disconnected")
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client", c.id).Msg("read failed")
			}
			return
		}
		s.dispatch(c, env)
	}
}

// dispatch routes one inbound envelope. Every failure turns into a
// room:error frame back to the sender; nothing here can crash a room.
func (s *Server) dispatch(c *client, env Envelope) {
	fail := func(msg string) {
		c.Send(MsgRoomError, ErrorMessage{Message: msg})
	}

	switch env.Type {
	case MsgRoomCreate:
		var req CreateRoomRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed room:create payload")
			return
		}
		room := s.registry.CreateRoom(req.MaxPlayers)
		room.adopt(c)

	case MsgRoomJoin:
		var req JoinRoomRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed room:join payload")
			return
		}
		room := s.registry.Get(req.RoomCode)
		if room == nil {
			fail("room not found")
			return
		}
		room.Join(c)

	case MsgRoomLeave:
		var req JoinRoomRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed room:leave payload")
			return
		}
		if room := s.registry.Get(req.RoomCode); room != nil {
			room.Leave(c)
		}

	case MsgSeatSelect:
		var req SelectSeatRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed seat:select payload")
			return
		}
		room := s.registry.Get(req.RoomCode)
		if room == nil {
			fail("room not found")
			return
		}
		if err := room.SelectSeat(c, req.SeatIndex, req.Name); err != nil {
			fail(err.Error())
		}

	case MsgSeatReclaim:
		var req ReclaimSeatRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed seat:reclaim payload")
			return
		}
		room := s.registry.Get(req.RoomCode)
		if room == nil {
			fail("room not found")
			return
		}
		if err := room.ReclaimSeat(c, req.SeatIndex, req.SeatToken, req.Name); err != nil {
			fail(err.Error())
		}

	case MsgRoomStart:
		var req JoinRoomRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed room:start payload")
			return
		}
		room := s.registry.Get(req.RoomCode)
		if room == nil {
			fail("room not found")
			return
		}
		if err := room.Start(c, game.Options{}); err != nil {
			fail(err.Error())
		}

	case MsgGameAction:
		var req GameActionRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			fail("malformed game:action payload")
			return
		}
		room := s.registry.Get(req.RoomCode)
		if room == nil {
			fail("room not found")
			return
		}
		if err := room.Apply(c, req); err != nil {
			fail(err.Error())
		}

	default:
		fail("unknown message type")
	}
}
