package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet/internal/auth"
	"wallet/internal/config"
	"wallet/internal/models"
	"wallet/internal/services"
	"wallet/internal/store"
	"wallet/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubPlayerStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, username, passwordHash string, role models.Role) error
	getByUsernameFn func(ctx context.Context, username string) (models.Player, error)
	getByIDFn       func(ctx context.Context, playerID string) (models.Player, error)
}

func (s *stubPlayerStore) Create(ctx context.Context, tx store.Execer, id, username, passwordHash string, role models.Role) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, username, passwordHash, role)
}

func (s *stubPlayerStore) GetByUsername(ctx context.Context, username string) (models.Player, error) {
	if s.getByUsernameFn == nil {
		return models.Player{}, store.ErrPlayerNotFound
	}
	return s.getByUsernameFn(ctx, username)
}

func (s *stubPlayerStore) GetByID(ctx context.Context, playerID string) (models.Player, error) {
	if s.getByIDFn == nil {
		return models.Player{}, store.ErrPlayerNotFound
	}
	return s.getByIDFn(ctx, playerID)
}

type stubLedgerService struct {
	creditFn  func(ctx context.Context, req services.MutationRequest) (services.Receipt, error)
	debitFn   func(ctx context.Context, req services.MutationRequest) (services.Receipt, error)
	balanceFn func(ctx context.Context, playerID string) (int64, error)
	historyFn func(ctx context.Context, playerID string) ([]models.LedgerEntry, error)
}

func (s *stubLedgerService) Credit(ctx context.Context, req services.MutationRequest) (services.Receipt, error) {
	if s.creditFn == nil {
		return services.Receipt{}, nil
	}
	return s.creditFn(ctx, req)
}

func (s *stubLedgerService) Debit(ctx context.Context, req services.MutationRequest) (services.Receipt, error) {
	if s.debitFn == nil {
		return services.Receipt{}, nil
	}
	return s.debitFn(ctx, req)
}

func (s *stubLedgerService) Balance(ctx context.Context, playerID string) (int64, error) {
	if s.balanceFn == nil {
		return 0, nil
	}
	return s.balanceFn(ctx, playerID)
}

func (s *stubLedgerService) History(ctx context.Context, playerID string) ([]models.LedgerEntry, error) {
	if s.historyFn == nil {
		return []models.LedgerEntry{}, nil
	}
	return s.historyFn(ctx, playerID)
}

type recordedAudit struct {
	playerID  string
	operation models.Operation
	status    models.Status
}

type stubAuditService struct {
	records            []recordedAudit
	allEntriesFn       func(ctx context.Context, actor *models.Actor) ([]models.AuditLogEntry, error)
	entriesForPlayerFn func(ctx context.Context, actor *models.Actor, username string) ([]models.AuditLogEntry, error)
}

func (s *stubAuditService) Record(_ context.Context, playerID string, operation models.Operation, status models.Status) {
	s.records = append(s.records, recordedAudit{playerID: playerID, operation: operation, status: status})
}

func (s *stubAuditService) AllEntries(ctx context.Context, actor *models.Actor) ([]models.AuditLogEntry, error) {
	if s.allEntriesFn == nil {
		return []models.AuditLogEntry{}, nil
	}
	return s.allEntriesFn(ctx, actor)
}

func (s *stubAuditService) EntriesForPlayer(ctx context.Context, actor *models.Actor, username string) ([]models.AuditLogEntry, error) {
	if s.entriesForPlayerFn == nil {
		return []models.AuditLogEntry{}, nil
	}
	return s.entriesForPlayerFn(ctx, actor, username)
}

type handlerFixture struct {
	handler *Handler
	players *stubPlayerStore
	service *stubLedgerService
	audit   *stubAuditService
}

func newTestHandler(t *testing.T) *handlerFixture {
	t.Helper()
	cfg := config.Config{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	players := &stubPlayerStore{}
	service := &stubLedgerService{}
	audit := &stubAuditService{}
	handler := New(fakeTxRunner{}, cfg, players, service, audit, websocket.NewHub())
	return &handlerFixture{handler: handler, players: players, service: service, audit: audit}
}

func bearerFor(t *testing.T, h *Handler, actor models.Actor) string {
	t.Helper()
	token, err := auth.GenerateToken(h.cfg.JWTSecret, actor, h.cfg.TokenTTL)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return bytes.NewReader(raw)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func doRequest(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
