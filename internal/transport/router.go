package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"starboard/internal/auth"
	"starboard/internal/room"
)

// Server bundles the dependencies every handler needs.
type Server struct {
	registry  *room.Registry
	directory *auth.Directory
}

// NewServer constructs the HTTP surface over registry.
func NewServer(registry *room.Registry, directory *auth.Directory) *Server {
	return &Server{registry: registry, directory: directory}
}

// Router builds the chi mux for the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/add", s.handleAddUser)
	r.With(requireAuth).Post("/refresh", s.handleRefresh)

	r.Route("/room", func(r chi.Router) {
		r.With(requireAuth).Post("/", s.handleCreateRoom)
		r.Get("/", s.handleListRooms)
		r.Get("/{roomID}", s.handleGetRoom)
	})
	r.Get("/players", s.handleGetPlayers)
	r.Get("/game-state", s.handleGetGameState)

	r.With(requireAuth).Post("/update/{roomID}", s.handleUpdateRoom)
	r.With(requireAuth).Post("/move/{roomID}", s.handleMove)
	r.With(requireAuth).Post("/chat/{roomID}", s.handleChat)
	r.With(requireAuth).Post("/validate/{roomID}", s.handleValidatePath)

	r.Get("/sse/{roomID}/{token}", s.serveSSE)

	return r
}
