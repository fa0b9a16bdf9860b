package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wallet/internal/auth"
	"wallet/internal/models"
	"wallet/internal/money"
	"wallet/internal/store"
	"wallet/internal/validator"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateUsername(req.Username); err != nil {
		h.audit.Record(r.Context(), models.UnknownPlayerID, models.OpRegistration, models.StatusFail)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		h.audit.Record(r.Context(), models.UnknownPlayerID, models.OpRegistration, models.StatusFail)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	playerID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.players.Create(r.Context(), tx, playerID, req.Username, passwordHash, models.RoleUser)
	})
	if err != nil {
		h.audit.Record(r.Context(), models.UnknownPlayerID, models.OpRegistration, models.StatusFail)
		if errors.Is(err, store.ErrUsernameTaken) {
			respondError(w, http.StatusConflict, "username already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	h.audit.Record(r.Context(), playerID, models.OpRegistration, models.StatusSuccessful)
	token, err := auth.GenerateToken(h.cfg.JWTSecret, models.Actor{
		ID:       playerID,
		Username: req.Username,
		Role:     models.RoleUser,
	}, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":    playerID,
		"token": token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	player, err := h.players.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			h.audit.Record(r.Context(), models.UnknownPlayerID, models.OpLogin, models.StatusFail)
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !auth.CheckPassword(player.PasswordHash, req.Password) {
		h.audit.Record(r.Context(), player.ID, models.OpLogin, models.StatusFail)
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.audit.Record(r.Context(), player.ID, models.OpLogin, models.StatusSuccessful)
	token, err := auth.GenerateToken(h.cfg.JWTSecret, models.Actor{
		ID:       player.ID,
		Username: player.Username,
		Role:     player.Role,
	}, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"id":       player.ID,
		"username": player.Username,
		"role":     player.Role,
		"balance":  money.FormatMinor(player.Balance),
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewareActor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	player, err := h.players.GetByID(r.Context(), actor.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load player")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":         player.ID,
		"username":   player.Username,
		"role":       player.Role,
		"role_name":  player.Role.DisplayName(),
		"balance":    money.FormatMinor(player.Balance),
		"created_at": player.CreatedAt,
	})
}
