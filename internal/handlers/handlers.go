package handlers

import (
	"encoding/json"
	"net/http"

	"wallet/internal/models"
	"wallet/internal/money"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func ledgerEntryToMap(entry models.LedgerEntry) map[string]any {
	return map[string]any{
		"token":         entry.Token,
		"operation":     entry.Operation,
		"amount":        money.FormatMinor(entry.Amount),
		"balance_after": money.FormatMinor(entry.BalanceAfter),
		"created_at":    entry.CreatedAt,
	}
}

func auditEntryToMap(entry models.AuditLogEntry) map[string]any {
	return map[string]any{
		"id":         entry.ID,
		"player_id":  entry.PlayerID,
		"operation":  entry.Operation.DisplayName(),
		"status":     entry.Status,
		"created_at": entry.CreatedAt,
	}
}
