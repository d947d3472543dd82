package relay

import (
	"encoding/json"

	"sanguo/game"
)

// Wire protocol: every frame is an Envelope whose Payload depends on Type.
// Client-to-server types mirror the lobby verbs; server-to-client types are
// the room/game update fan-out.
const (
	MsgRoomCreate  = "room:create"
	MsgRoomJoin    = "room:join"
	MsgRoomLeave   = "room:leave"
	MsgRoomStart   = "room:start"
	MsgSeatSelect  = "seat:select"
	MsgSeatReclaim = "seat:reclaim"
	MsgGameAction  = "game:action"

	MsgRoomUpdate    = "room:update"
	MsgRoomError     = "room:error"
	MsgRoomClosed    = "room:closed"
	MsgSeatConfirmed = "seat:confirmed"
	MsgGameUpdate    = "game:update"
)

type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRoomRequest struct {
	MaxPlayers int `json:"maxPlayers"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type SelectSeatRequest struct {
	RoomCode  string `json:"roomCode"`
	SeatIndex int    `json:"seatIndex"`
	Name      string `json:"name"`
}

type ReclaimSeatRequest struct {
	RoomCode  string `json:"roomCode"`
	SeatIndex int    `json:"seatIndex"`
	SeatToken string `json:"seatToken"`
	Name      string `json:"name,omitempty"`
}

// ActionData carries the union of per-action parameters; unused fields stay
// empty on the wire.
type ActionData struct {
	TargetTerritoryID         string   `json:"targetTerritoryId,omitempty"`
	CardInstanceIDs           []string `json:"cardInstanceIds,omitempty"`
	TacticianTargetInstanceID string   `json:"tacticianTargetInstanceId,omitempty"`
	CardInstanceID            string   `json:"cardInstanceId,omitempty"`
	TerritoryID               string   `json:"territoryId,omitempty"`
	TargetID                  string   `json:"targetId,omitempty"`
}

type GameActionRequest struct {
	RoomCode string     `json:"roomCode"`
	Action   string     `json:"action"`
	PlayerID string     `json:"playerId"`
	Data     ActionData `json:"data"`
}

// Engine verbs accepted in GameActionRequest.Action.
const (
	ActionDrawCards     = "drawCards"
	ActionEndTurn       = "endTurn"
	ActionAttack        = "attack"
	ActionDefend        = "defend"
	ActionSkipDefense   = "skipDefense"
	ActionClearCombat   = "clearCombat"
	ActionDeployGeneral = "deployGeneral"
	ActionPlayCard      = "playCard"
	ActionDiscardCard   = "discardCard"
)

type SeatInfo struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Occupied bool   `json:"occupied"`
	Reserved bool   `json:"reserved"`
}

type RoomInfo struct {
	Code          string     `json:"code"`
	MaxPlayers    int        `json:"maxPlayers"`
	Seats         []SeatInfo `json:"seats"`
	HostSeatIndex int        `json:"hostSeatIndex"` // -1 when the room has no host
	IsStarted     bool       `json:"isStarted"`
}

type SeatConfirmation struct {
	RoomCode  string `json:"roomCode"`
	SeatIndex int    `json:"seatIndex"`
	PlayerID  string `json:"playerId"`
	SeatToken string `json:"seatToken"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

type GameUpdate struct {
	State *game.GameState `json:"state"`
}
