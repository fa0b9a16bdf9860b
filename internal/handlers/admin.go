package handlers

import (
	"errors"
	"net/http"

	"wallet/internal/policy"
	"wallet/internal/store"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	actor, _ := middlewareActor(r)
	entries, err := h.audit.AllEntries(r.Context(), actor)
	if err != nil {
		respondPolicyError(w, err)
		return
	}
	response := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		response = append(response, auditEntryToMap(entry))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) GetLogsByUsername(w http.ResponseWriter, r *http.Request) {
	actor, _ := middlewareActor(r)
	username := chi.URLParam(r, "username")
	entries, err := h.audit.EntriesForPlayer(r.Context(), actor, username)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		respondPolicyError(w, err)
		return
	}
	response := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		response = append(response, auditEntryToMap(entry))
	}
	respondJSON(w, http.StatusOK, response)
}

func respondPolicyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policy.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, policy.ErrForbidden):
		respondError(w, http.StatusForbidden, "admin privileges required")
	default:
		respondError(w, http.StatusInternalServerError, "unable to load logs")
	}
}
