package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"kindledAPI/internal/types/activity"
	"kindledAPI/middleware"
	"kindledAPI/services"
)

type FlameHandler struct {
	flameService *services.FlameService
}

func NewFlameHandler(flameService *services.FlameService) *FlameHandler {
	return &FlameHandler{
		flameService: flameService,
	}
}

func (h *FlameHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req activity.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.flameService.RecordActivity(ctx, clerkID, &req)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

func (h *FlameHandler) GetFaithFlame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	groupID, err := uuid.Parse(r.URL.Query().Get("groupId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'groupId' must be a valid id")
		return
	}

	flame, err := h.flameService.GetFaithFlameByClerkID(ctx, clerkID, groupID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, flame)
}

func (h *FlameHandler) ListFellowshipFlames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	groupID, err := uuid.Parse(r.URL.Query().Get("groupId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'groupId' must be a valid id")
		return
	}

	flames, err := h.flameService.ListFellowshipFlames(ctx, groupID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, flames)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// statusForError maps the service error taxonomy onto HTTP statuses.
// Anything unclassified is treated as a storage failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotSteward):
		return http.StatusForbidden
	case errors.Is(err, services.ErrChallengeNotActive):
		return http.StatusConflict
	case errors.Is(err, services.ErrDuplicateChallenge):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}
