package protocol

import (
	"encoding/json"
	"fmt"

	"starboard/pkg/board"
)

// RoomDesc is the serializable summary of a room returned by the room
// listing/creation endpoints and embedded in room_state_update events.
type RoomDesc struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CreatedBy       uint64  `json:"created_by"`
	CreatedTime     int64   `json:"created_time"`
	GameStarted     bool    `json:"game_started"`
	GameFinished    bool    `json:"game_finished"`
	Winner          *uint64 `json:"winner,omitempty"`
	ActivePlayer    int     `json:"active_player"`
	NumberOfPlayers int     `json:"number_of_player"`
}

// PlayerDesc is the serializable summary of a single player in a room.
type PlayerDesc struct {
	Name   string `json:"name"`
	Color  int    `json:"color"`
	UserID uint64 `json:"user_id"`
}

// GameStateDTO is the wire shape of a room's board: string-keyed cones,
// numeric player-color map, and ordered move history.
type GameStateDTO struct {
	Cones         map[string]int `json:"cones"`
	PlayersColors map[uint64]int `json:"players_colors"`
	Moves         []MoveDTO      `json:"moves"`
}

// MoveDTO is one entry of the move history: the moving color and the
// path it took.
type MoveDTO struct {
	Color int           `json:"color"`
	Path  []board.Point `json:"path"`
}

// MarshalJSON renders a move as the wire-format [color, path] tuple.
func (m MoveDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{m.Color, m.Path})
}

// PointKey renders a board point as the "row,col" string key the wire
// format uses for the cones map.
func PointKey(p board.Point) string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}
