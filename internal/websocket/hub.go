package websocket

import (
	"encoding/json"
	"sync"
)

// BalanceUpdate is pushed to a player's connected sockets after every
// successful credit or debit.
type BalanceUpdate struct {
	PlayerID string `json:"player_id"`
	Balance  string `json:"balance"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(playerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[playerID] == nil {
		h.clients[playerID] = make(map[*Client]struct{})
	}
	h.clients[playerID][client] = struct{}{}
}

func (h *Hub) Unregister(playerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[playerID] == nil {
		return
	}
	delete(h.clients[playerID], client)
	if len(h.clients[playerID]) == 0 {
		delete(h.clients, playerID)
	}
}

// BroadcastBalance never blocks the ledger: slow clients drop updates.
func (h *Hub) BroadcastBalance(playerID string, update BalanceUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[playerID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
