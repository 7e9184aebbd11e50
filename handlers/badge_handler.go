package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"kindledAPI/middleware"
	"kindledAPI/services"
)

type BadgeHandler struct {
	badgeService *services.BadgeService
}

func NewBadgeHandler(badgeService *services.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		badgeService: badgeService,
	}
}

func (h *BadgeHandler) ListBadges(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.badgeService.ListBadges())
}

func (h *BadgeHandler) GetUserBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var groupID *uuid.UUID
	if raw := r.URL.Query().Get("groupId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'groupId' must be a valid id")
			return
		}
		groupID = &parsed
	}

	badges, err := h.badgeService.GetUserBadgesByClerkID(ctx, clerkID, groupID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, badges)
}

func (h *BadgeHandler) EvaluateBadges(w http.ResponseWriter, r *http.Request) {
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

	newBadges, err := h.badgeService.EvaluateBadgesByClerkID(ctx, clerkID, groupID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, newBadges)
}
