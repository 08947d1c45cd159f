package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clickmee/internal/domain"
	"clickmee/internal/middleware"

	"go.uber.org/zap"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type profileResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Score       int64  `json:"score"`
	IsSuspended bool   `json:"is_suspended"`
}

func toProfileResponse(user *domain.User) profileResponse {
	return profileResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		AvatarURL:   user.AvatarURL,
		Score:       user.Score,
		IsSuspended: user.IsSuspended,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.FullName)
	if errors.Is(err, domain.ErrEmailTaken) {
		h.respondError(w, http.StatusConflict, "email_taken")
		return
	}
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	h.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	h.respondJSON(w, http.StatusCreated, toProfileResponse(user))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	session, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.respondError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		h.logger.Error("Failed to log in user", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	h.respondJSON(w, http.StatusOK, sessionResponse{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := middleware.Session(r)
	if session == nil {
		h.respondError(w, http.StatusUnauthorized, "auth_required")
		return
	}

	h.authService.Logout(session.Token)
	h.clickService.DropState(session.UserID)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.Session(r)
	if session == nil {
		h.respondError(w, http.StatusUnauthorized, "auth_required")
		return
	}

	user, err := h.profileService.Get(session.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		h.respondError(w, http.StatusNotFound, "user_not_found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to load profile",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	// Seed the click state so the first click does not pay for a profile read
	h.clickService.LoadState(user)

	h.respondJSON(w, http.StatusOK, toProfileResponse(user))
}
