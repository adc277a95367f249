// Package devserver implements an in-memory sync server speaking the same
// push/pull contract as the client adapter. It backs manual testing and
// integration tests; nothing it stores survives a restart.
package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/utils"
)

// storedEntity is the server-side copy of one entity. updatedAtMs is the
// version used for optimistic concurrency checks against incoming mutations.
type storedEntity struct {
	data        json.RawMessage
	updatedAtMs int64
	deleted     bool
}

// feedEntry is one position in the ordered change feed. seq values are
// strictly increasing and double as pull cursors.
type feedEntry struct {
	seq      int64
	resource string
	data     json.RawMessage
}

// Server holds the authoritative entity state for a single user session
// identified by a static bearer token.
type Server struct {
	userID int64
	token  string
	logger *logger.Logger

	mu       sync.Mutex
	entities map[string]map[string]storedEntity
	feed     []feedEntry
	seq      int64
}

func NewServer(userID int64, token string, logger *logger.Logger) *Server {
	logger.Info().Int64("user_id", userID).Msg("dev sync server created")
	return &Server{
		userID:   userID,
		token:    strings.TrimSpace(token),
		logger:   logger,
		entities: make(map[string]map[string]storedEntity),
	}
}

func (s *Server) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withTraceID)
	router.Use(s.withLogging)

	router.Get("/api/sync/ping", s.ping)

	router.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Post("/api/sync/push", s.push)
		r.Get("/api/sync/pull", s.pull)
	})

	return router
}

// auth checks the bearer token against the server's configured token and
// stores the session's user ID in the request context.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) < 2 || parts[1] == "" {
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}
		if parts[1] != s.token {
			http.Error(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, s.userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
