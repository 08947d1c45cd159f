package handler

import (
	"encoding/json"
	"net/http"

	"clickmee/internal/middleware"
	"clickmee/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler wires the HTTP API to the services
type Handler struct {
	authService        *service.AuthService
	clickService       *service.ClickService
	profileService     *service.ProfileService
	leaderboardService *service.LeaderboardService
	logger             *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	authService *service.AuthService,
	clickService *service.ClickService,
	profileService *service.ProfileService,
	leaderboardService *service.LeaderboardService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:        authService,
		clickService:       clickService,
		profileService:     profileService,
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(h.authService))

	api.HandleFunc("/auth/register", h.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/me", h.handleMe).Methods(http.MethodGet)
	api.HandleFunc("/click", h.handleClick).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", h.handleLeaderboard).Methods(http.MethodGet)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code string) {
	h.respondJSON(w, status, map[string]string{"error": code})
}
