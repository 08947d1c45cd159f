package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.leaderboardService.Top(limit)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	h.respondJSON(w, http.StatusOK, entries)
}
