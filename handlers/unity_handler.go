package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"kindledAPI/services"
)

type UnityHandler struct {
	unityService *services.UnityService
}

func NewUnityHandler(unityService *services.UnityService) *UnityHandler {
	return &UnityHandler{
		unityService: unityService,
	}
}

func (h *UnityHandler) GetUnityPoints(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	groupID, err := uuid.Parse(r.URL.Query().Get("groupId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'groupId' must be a valid id")
		return
	}

	var weekStart time.Time
	if raw := r.URL.Query().Get("weekStart"); raw != "" {
		weekStart, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'weekStart' must be RFC3339")
			return
		}
	}

	week, err := h.unityService.GetUnityPoints(ctx, groupID, weekStart)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, week)
}

func (h *UnityHandler) GetUnityPointsHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	groupID, err := uuid.Parse(r.URL.Query().Get("groupId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'groupId' must be a valid id")
		return
	}

	weeks := 4
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		weeks, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'weeks' must be an integer")
			return
		}
	}

	history, err := h.unityService.GetUnityPointsHistory(ctx, groupID, weeks)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}
