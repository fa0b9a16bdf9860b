package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var roleNames = map[Role]string{
	RoleUser:  "Player",
	RoleAdmin: "Administrator",
}

func (r Role) DisplayName() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return string(r)
}

type Operation string

const (
	OpRegistration   Operation = "REGISTRATION"
	OpLogin          Operation = "LOGIN"
	OpViewBalance    Operation = "VIEW_BALANCE"
	OpCredit         Operation = "CREDIT"
	OpDebit          Operation = "DEBIT"
	OpViewHistory    Operation = "VIEW_HISTORY"
	OpShowAllLogs    Operation = "SHOW_ALL_LOGS"
	OpShowPlayerLogs Operation = "SHOW_PLAYER_LOGS"
)

var operationNames = map[Operation]string{
	OpRegistration:   "registration",
	OpLogin:          "login",
	OpViewBalance:    "view balance",
	OpCredit:         "credit",
	OpDebit:          "debit",
	OpViewHistory:    "view history",
	OpShowAllLogs:    "show all logs",
	OpShowPlayerLogs: "show logs by username",
}

func (o Operation) DisplayName() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return string(o)
}

type Status string

const (
	StatusSuccessful Status = "SUCCESSFUL"
	StatusFail       Status = "FAIL"
)

// UnknownPlayerID marks audit entries whose actor could not be identified,
// e.g. a login attempt against a username that does not exist.
const UnknownPlayerID = "unknown"

// Actor is the verified identity triple handed over by the auth layer.
// The ledger never re-validates credentials behind it.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

type Player struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	Balance      int64     `db:"balance" json:"balance"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// LedgerEntry is one applied balance mutation. Token is the caller-supplied
// idempotency key and is unique across the whole system, not per player.
type LedgerEntry struct {
	ID           string    `db:"id" json:"id"`
	Token        string    `db:"token" json:"token"`
	PlayerID     string    `db:"player_id" json:"player_id"`
	Operation    Operation `db:"operation" json:"operation"`
	Amount       int64     `db:"amount" json:"amount"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type AuditLogEntry struct {
	ID        string    `db:"id" json:"id"`
	PlayerID  string    `db:"player_id" json:"player_id"`
	Operation Operation `db:"operation" json:"operation"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
