package realtime

import (
	"sync"
)

// Hub tracks websocket sessions and their conversation subscriptions. It keeps
// one active Connection per user while allowing fan-out to every member
// subscribed to a conversation.
type Hub struct {
	mu            sync.RWMutex
	sessions      map[string]*Connection            // sessionID -> connection
	userSessions  map[string]string                 // userID -> sessionID
	conversations map[string]map[string]*Connection // conversationID -> sessionID -> connection
	subscriptions map[string]map[string]struct{}    // sessionID -> set of conversationIDs
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:      make(map[string]*Connection),
		userSessions:  make(map[string]string),
		conversations: make(map[string]map[string]*Connection),
		subscriptions: make(map[string]map[string]struct{}),
	}
}

// Register tracks a connection for the given user and starts its write loop.
// A previous session for the same user is closed after the swap so each user
// holds exactly one active socket.
func (h *Hub) Register(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.unregisterLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.userSessions[conn.UserID] = conn.ID
	h.subscriptions[conn.ID] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Unregister removes a connection if it is still tracked.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	h.unregisterLocked(conn.ID)
	h.mu.Unlock()
}

// Subscribe adds the connection to a conversation's fan-out set.
func (h *Hub) Subscribe(conversationID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[conn.ID]; !ok {
		return
	}

	members := h.conversations[conversationID]
	if members == nil {
		members = make(map[string]*Connection)
		h.conversations[conversationID] = members
	}
	members[conn.ID] = conn

	subs := h.subscriptions[conn.ID]
	if subs == nil {
		subs = make(map[string]struct{})
		h.subscriptions[conn.ID] = subs
	}
	subs[conversationID] = struct{}{}
}

// Unsubscribe removes the connection from a conversation's fan-out set.
func (h *Hub) Unsubscribe(conversationID string, conn *Connection) {
	h.mu.Lock()
	h.unsubscribeLocked(conversationID, conn.ID)
	h.mu.Unlock()
}

// Fanout writes payload to every connection subscribed to the conversation
// and returns the delivered count. excludeUserID, when non-empty, skips that
// user's session.
func (h *Hub) Fanout(conversationID string, payload []byte, excludeUserID string) int {
	h.mu.RLock()
	members := h.conversations[conversationID]
	if len(members) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range members {
		if excludeUserID != "" && conn.UserID == excludeUserID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// Push delivers payload to the current connection of the given user, if any.
func (h *Hub) Push(userID string, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Shutdown terminates all tracked connections and clears hub state.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.userSessions = make(map[string]string)
	h.conversations = make(map[string]map[string]*Connection)
	h.subscriptions = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "server shutdown")
	}
}

func (h *Hub) unregisterLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID)
	}

	for conversationID := range h.subscriptions[sessionID] {
		h.unsubscribeLocked(conversationID, sessionID)
	}
	delete(h.subscriptions, sessionID)
}

func (h *Hub) unsubscribeLocked(conversationID string, sessionID string) {
	if sessionID == "" {
		return
	}
	members := h.conversations[conversationID]
	if members == nil {
		return
	}
	delete(members, sessionID)
	if len(members) == 0 {
		delete(h.conversations, conversationID)
	}
	if subs, ok := h.subscriptions[sessionID]; ok {
		delete(subs, conversationID)
		if len(subs) == 0 {
			delete(h.subscriptions, sessionID)
		}
	}
}
