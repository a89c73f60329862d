package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"starboard/internal/auth"
	"starboard/internal/room"
	"starboard/pkg/board"
	"starboard/pkg/gameerr"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type addUserRequest struct {
	Name string `json:"name"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
	UserID    uint64 `json:"user_id"`
	UserName  string `json:"user_name"`
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed body")
		return
	}
	userID, err := s.directory.Register(req.Name)
	if err != nil {
		writeGameError(w, err)
		return
	}
	token, createdAt, _, err := auth.GenerateToken(userID, req.Name)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, CreatedAt: createdAt.Unix(), UserID: userID, UserName: req.Name})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	userID, displayName, _ := userFromContext(r)
	token, createdAt, _, err := auth.GenerateToken(userID, displayName)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, CreatedAt: createdAt.Unix(), UserID: userID, UserName: displayName})
}

type createRoomRequest struct {
	RoomName string `json:"room_name"`
}

type createRoomResponse struct {
	Room interface{} `json:"room"`
	URL  string      `json:"url"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if err := auth.ValidateDisplayName(req.RoomName); err != nil {
		writeGameError(w, err)
		return
	}
	userID, _, _ := userFromContext(r)
	roomID := uuid.NewString()
	rm, err := s.registry.Create(roomID, req.RoomName, userID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createRoomResponse{
		Room: rm.Desc(),
		URL:  "/sse/" + roomID + "/{token}",
	})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, rm.Desc())
}

func (s *Server) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.roomFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rm.PlayerDescs())
}

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.roomFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rm.GameStateDTO())
}

func (s *Server) roomFromQuery(w http.ResponseWriter, r *http.Request) (*room.Room, bool) {
	roomID := r.URL.Query().Get("room_id")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "room not found")
		return nil, false
	}
	return rm, true
}

type updateRoomRequest struct {
	UpdateType string `json:"update_type"`
	NewColor   *int   `json:"new_color,omitempty"`
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "room not found")
		return
	}
	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed body")
		return
	}
	userID, _, _ := userFromContext(r)

	var err error
	switch req.UpdateType {
	case "Start":
		err = rm.Start(userID)
	case "Stop":
		err = rm.Stop(userID)
	case "ColorChange":
		if req.NewColor == nil {
			err = gameerr.New(gameerr.InvalidArgument, "new_color required")
		} else {
			err = rm.SetColor(userID, board.Color(*req.NewColor))
		}
	case "Leave":
		rm.Leave(userID)
		s.registry.RemoveIfEmptyAndFinished(roomID)
	default:
		err = gameerr.New(gameerr.InvalidArgument, "unknown update_type")
	}
	if err != nil {
		writeGameError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type moveRequest struct {
	Path          [][2]int `json:"path"`
	CalculatePath bool     `json:"calculate_path"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "room not found")
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed body")
		return
	}
	path, err := decodePath(req.Path)
	if err != nil {
		writeGameError(w, err)
		return
	}
	userID, _, _ := userFromContext(r)
	if err := rm.MakeMove(userID, path); err != nil {
		writeGameError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type chatRequest struct {
	Message  *string `json:"message,omitempty"`
	SetReady *bool   `json:"set_ready,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "room not found")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed body")
		return
	}
	userID, _, _ := userFromContext(r)
	if err := rm.SetReadyAndChat(userID, req.Message, req.SetReady); err != nil {
		writeGameError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleValidatePath(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "room not found")
		return
	}
	var raw [][2]int
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed body")
		return
	}
	path, err := decodePath(raw)
	if err != nil {
		writeJSONError(w, http.StatusNotAcceptable, err.Error())
		return
	}
	if err := rm.ValidatePath(path); err != nil {
		writeJSONError(w, http.StatusNotAcceptable, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

func decodePath(raw [][2]int) ([]board.Point, error) {
	if len(raw) < 2 {
		return nil, gameerr.New(gameerr.InvalidPath, "path too short")
	}
	out := make([]board.Point, len(raw))
	for i, pair := range raw {
		out[i] = board.Point{Row: pair[0], Col: pair[1]}
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
