package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/jdparks/larder/internal/ai"
	"github.com/jdparks/larder/internal/email"
	"github.com/jdparks/larder/internal/handler"
	"github.com/jdparks/larder/internal/middleware"
	"github.com/jdparks/larder/internal/realtime"
	"github.com/jdparks/larder/internal/store"
)

// Server owns the stores, handlers, and realtime hub, and assembles the HTTP
// routing table.
type Server struct {
	logger *slog.Logger

	userStore      *store.UserStore
	householdStore *store.HouseholdStore
	listStore      *store.ListStore
	itemStore      *store.ItemStore
	sessionStore   *store.SessionStore
	authCodeStore  *store.AuthCodeStore

	hub     *realtime.Hub
	limiter *middleware.RateLimiter

	authHandler      *handler.AuthHandler
	householdHandler *handler.HouseholdHandler
	itemHandler      *handler.ItemHandler
	aiHandler        *handler.AIHandler
}

func New(db *sql.DB, logger *slog.Logger, aiClient *ai.Client, emailClient *email.Client) *Server {
	s := &Server{
		logger:         logger,
		userStore:      store.NewUserStore(db),
		householdStore: store.NewHouseholdStore(db),
		listStore:      store.NewListStore(db),
		itemStore:      store.NewItemStore(db),
		sessionStore:   store.NewSessionStore(db),
		authCodeStore:  store.NewAuthCodeStore(db),
		hub:            realtime.NewHub(logger.With("component", "hub")),
		limiter:        middleware.NewRateLimiter(),
	}

	s.authHandler = handler.NewAuthHandler(
		s.userStore, s.householdStore, s.listStore, s.sessionStore,
		s.authCodeStore, emailClient, logger.With("component", "auth"),
	)
	s.householdHandler = handler.NewHouseholdHandler(
		s.householdStore, s.listStore, s.userStore, s.authCodeStore,
		emailClient, logger.With("component", "household"),
	)
	s.itemHandler = handler.NewItemHandler(
		s.listStore, s.itemStore, s.hub, logger.With("component", "item"),
	)
	s.aiHandler = handler.NewAIHandler(aiClient, logger.With("component", "ai"))

	return s
}

// Hub exposes the realtime hub for monitoring.
func (s *Server) Hub() *realtime.Hub {
	return s.hub
}

// CleanupExpired purges expired sessions, auth codes, and rate-limit entries.
// Run periodically from main.
func (s *Server) CleanupExpired() {
	if _, err := s.sessionStore.DeleteExpired(); err != nil {
		s.logger.Error("cleanup sessions", "error", err)
	}
	if _, err := s.authCodeStore.DeleteExpired(); err != nil {
		s.logger.Error("cleanup auth codes", "error", err)
	}
	s.limiter.Cleanup()
}

// Router builds the full routing table. Auth endpoints are rate-limited by
// client IP; everything under /api (except auth) and /ws requires a session.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	authLimit := middleware.RateLimit(s.limiter, middleware.RealIP, 10, time.Minute)

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("POST /api/auth/register", authLimit(http.HandlerFunc(s.authHandler.Register)))
	mux.Handle("POST /api/auth/login", authLimit(http.HandlerFunc(s.authHandler.Login)))
	mux.Handle("POST /api/auth/verify", authLimit(http.HandlerFunc(s.authHandler.Verify)))
	mux.HandleFunc("POST /api/auth/logout", s.authHandler.Logout)

	// Protected
	protected := http.NewServeMux()
	protected.HandleFunc("POST /api/auth/switch-household", s.authHandler.SwitchHousehold)

	protected.HandleFunc("GET /api/households", s.householdHandler.List)
	protected.HandleFunc("POST /api/households", s.householdHandler.Create)
	protected.HandleFunc("POST /api/households/join", s.householdHandler.Join)
	protected.HandleFunc("GET /api/households/{id}/members", s.householdHandler.Members)
	protected.HandleFunc("POST /api/households/{id}/invite", s.householdHandler.Invite)

	protected.HandleFunc("GET /api/lists", s.householdHandler.Lists)
	protected.HandleFunc("GET /api/lists/{list_id}/items", s.itemHandler.List)
	protected.HandleFunc("POST /api/lists/{list_id}/items", s.itemHandler.Create)
	protected.HandleFunc("POST /api/lists/{list_id}/items/bulk", s.itemHandler.BulkCreate)
	protected.HandleFunc("PUT /api/lists/{list_id}/items/{id}", s.itemHandler.Update)
	protected.HandleFunc("POST /api/lists/{list_id}/items/{id}/toggle", s.itemHandler.Toggle)
	protected.HandleFunc("DELETE /api/lists/{list_id}/items/{id}", s.itemHandler.Delete)
	protected.HandleFunc("POST /api/lists/{list_id}/items/{id}/claim", s.itemHandler.Claim)
	protected.HandleFunc("POST /api/lists/{list_id}/items/{id}/unclaim", s.itemHandler.Unclaim)

	protected.HandleFunc("POST /api/ai/categorize-items", s.aiHandler.Categorize)
	protected.HandleFunc("POST /api/ai/extract-whiteboard", s.aiHandler.ExtractWhiteboard)
	protected.HandleFunc("POST /api/ai/generate-mealplan", s.aiHandler.GenerateMealPlan)

	protected.Handle("GET /ws", realtime.HandleWebSocket(s.hub, s.logger.With("component", "ws")))

	requireAuth := middleware.RequireAuth(s.sessionStore, s.householdStore)
	mux.Handle("/api/", requireAuth(protected))
	mux.Handle("/ws", requireAuth(protected))

	return middleware.RequestLogger(s.logger)(mux)
}
