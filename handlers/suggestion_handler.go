package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kindledAPI/internal/types/feed"
	"kindledAPI/internal/types/suggestion"
	"kindledAPI/middleware"
	"kindledAPI/services"
	"kindledAPI/utils"
)

type SuggestionHandler struct {
	suggestionService *services.SuggestionService
}

func NewSuggestionHandler(suggestionService *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
	}
}

func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	suggestions, err := h.suggestionService.BuildSuggestionsByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, suggestions)
}

func (h *SuggestionHandler) DismissSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req suggestion.DismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.suggestionService.DismissSuggestionByClerkID(ctx, clerkID, &req); err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Suggestion dismissed"})
}

// RankFeed scores caller-supplied feed candidates against the caller's
// profile. The ranking itself is pure; only the profile read touches
// the store, and a missing profile degrades to recency-only ranking.
func (h *SuggestionHandler) RankFeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req feed.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.suggestionService.GetProfileByClerkID(ctx, clerkID)
	if err != nil {
		p = nil
	}

	ranked := utils.RankFeed(req.Items, p, time.Now().UTC())
	respondWithJSON(w, http.StatusOK, ranked)
}
