package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ecoTrackAPI/internal/goal"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req goal.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, newBadges, err := h.goalService.CreateGoal(ctx, userID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"goal":      created,
		"newBadges": newBadges,
	})
}

// GetGoals refreshes the caller's goals before returning them, so expired
// windows are archived and successors exist by the time the client renders.
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goals, err := h.goalService.RefreshGoals(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching goals")
		return
	}

	respondWithJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) GetGoalHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	history, err := h.goalService.GetGoalHistory(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching goal history")
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetUserID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	var req struct {
		CurrentPoints int `json:"currentPoints"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.goalService.UpdateGoalProgress(ctx, id, req.CurrentPoints)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *GoalHandler) RefreshGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goals, err := h.goalService.RefreshGoals(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error refreshing goals")
		return
	}

	respondWithJSON(w, http.StatusOK, goals)
}
