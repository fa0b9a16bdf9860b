package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"wallet/internal/models"
	"wallet/internal/money"
	"wallet/internal/services"
	"wallet/internal/store"
)

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewareActor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	balance, err := h.service.Balance(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load balance")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"balance": money.FormatMinor(balance),
	})
}

type mutationRequest struct {
	Amount string `json:"amount"`
	Token  string `json:"token"`
}

func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, models.OpCredit, h.service.Credit)
}

func (h *Handler) Debit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, models.OpDebit, h.service.Debit)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, operation models.Operation, apply func(ctx context.Context, req services.MutationRequest) (services.Receipt, error)) {
	actor, ok := middlewareActor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		// Rejected before the service runs, so the audit entry for the
		// attempted operation is written here.
		h.audit.Record(r.Context(), actor.ID, operation, models.StatusFail)
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	receipt, err := apply(r.Context(), services.MutationRequest{
		PlayerID:    actor.ID,
		AmountMinor: amountMinor,
		Token:       req.Token,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidToken):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrDuplicateTransaction):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInsufficientFunds):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, store.ErrPlayerNotFound):
			respondError(w, http.StatusNotFound, "player not found")
		default:
			respondError(w, http.StatusInternalServerError, "operation failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token":   receipt.Token,
		"amount":  money.FormatMinor(receipt.AmountMinor),
		"balance": money.FormatMinor(receipt.BalanceAfter),
	})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewareActor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	entries, err := h.service.History(r.Context(), actor.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load history")
		return
	}
	response := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		response = append(response, ledgerEntryToMap(entry))
	}
	respondJSON(w, http.StatusOK, response)
}
