package handlers

import (
	"net/http"

	"wallet/internal/auth"
	"wallet/internal/config"
	"wallet/internal/db"
	"wallet/internal/middleware"
	"wallet/internal/models"
	"wallet/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner db.TxRunner
	cfg      config.Config
	players  PlayerStore
	service  LedgerService
	audit    AuditService
	hub      *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, players PlayerStore, service LedgerService, audit AuditService, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner: txRunner,
		cfg:      cfg,
		players:  players,
		service:  service,
		audit:    audit,
		hub:      hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})

	router.Route("/wallet", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/balance", h.GetBalance)
		r.Post("/credit", h.Credit)
		r.Post("/debit", h.Debit)
		r.Get("/history", h.GetHistory)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Use(middleware.RequireAdmin)
		r.Get("/logs", h.GetAllLogs)
		r.Get("/logs/{username}", h.GetLogsByUsername)
	})

	router.Get("/ws/balances", h.WSBalances)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

// WSBalances upgrades to a websocket pushing balance updates. Browsers
// cannot set headers on websocket requests, so the token rides in the query.
func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ParseToken(h.cfg.JWTSecret, r.URL.Query().Get("token"))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, actor.ID)
}

func middlewareActor(r *http.Request) (*models.Actor, bool) {
	return middleware.ActorFromContext(r.Context())
}
