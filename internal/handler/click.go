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

type clickRequest struct {
	// IsTrusted mirrors the browser's event.isTrusted flag for the
	// originating DOM event
	IsTrusted bool `json:"is_trusted"`
	X         int  `json:"x"`
	Y         int  `json:"y"`
}

type clickResponse struct {
	Score     int64  `json:"score"`
	Combo     int    `json:"combo"`
	Milestone string `json:"milestone,omitempty"`
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	event := domain.ClickEvent{
		Timestamp: time.Now(),
		IsTrusted: req.IsTrusted,
		X:         req.X,
		Y:         req.Y,
	}

	result, err := h.clickService.Click(middleware.Session(r), event)
	if errors.Is(err, domain.ErrAuthRequired) {
		h.respondError(w, http.StatusUnauthorized, "auth_required")
		return
	}
	if errors.Is(err, domain.ErrSuspended) {
		h.respondError(w, http.StatusForbidden, "suspended")
		return
	}
	if err != nil {
		h.logger.Error("Failed to process click", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	h.respondJSON(w, http.StatusOK, clickResponse{
		Score:     result.Score,
		Combo:     result.Combo,
		Milestone: result.Milestone,
	})
}
