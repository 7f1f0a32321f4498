package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ecoTrackAPI/middleware"
	"ecoTrackAPI/services"
	"ecoTrackAPI/utils"
)

type BadgeHandler struct {
	badgeService *services.BadgeService
}

func NewBadgeHandler(badgeService *services.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		badgeService: badgeService,
	}
}

func (h *BadgeHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	badges, err := h.badgeService.GetUserBadges(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching badges")
		return
	}

	respondWithJSON(w, http.StatusOK, badges)
}

func (h *BadgeHandler) GetRecentBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		limit = parsed
	}

	badges, err := h.badgeService.GetRecentBadges(ctx, userID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching recent badges")
		return
	}

	respondWithJSON(w, http.StatusOK, badges)
}

func (h *BadgeHandler) GetBadgeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userStats, err := h.badgeService.GetUserStats(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching user stats")
		return
	}

	badges, err := h.badgeService.GetUserBadges(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching badges")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"stats":     userStats,
		"eco_score": utils.CalculateEcoScore(userStats.CurrentStreak, userStats.TotalActivities, len(badges)),
	})
}

func (h *BadgeHandler) GetBadgeLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetUserID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	leaderboard, err := h.badgeService.GetBadgeLeaderboard(ctx, 10)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching badge leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, leaderboard)
}
