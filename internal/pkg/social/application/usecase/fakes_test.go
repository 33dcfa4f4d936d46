package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	cacheport "go-converse/internal/infrastructure/cache/port"
	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// memRepo is an in-memory SocialGraphRepository. WithTx runs fn against the
// same state; the transactional isolation the adapter provides is out of scope
// here, the tests exercise the decision logic above it.
type memRepo struct {
	mu  sync.Mutex
	seq int

	users         map[string]social.User
	requests      map[string]social.FriendRequest
	friendships   map[string]social.Friendship
	conversations map[string]social.Conversation
	members       map[string]social.ConversationMember
	messages      map[string]social.Message
	messageSeq    map[string]int
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:         make(map[string]social.User),
		requests:      make(map[string]social.FriendRequest),
		friendships:   make(map[string]social.Friendship),
		conversations: make(map[string]social.Conversation),
		members:       make(map[string]social.ConversationMember),
		messages:      make(map[string]social.Message),
		messageSeq:    make(map[string]int),
	}
}

func (r *memRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("id-%d", r.seq)
}

func (r *memRepo) addUser(username, email string) social.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := social.User{
		ID:              r.nextID(),
		IdentitySubject: "subject|" + username,
		Username:        username,
		ImageURL:        "https://img.example/" + username,
		Email:           email,
	}
	r.users[u.ID] = u
	return u
}

// befriend wires a direct conversation, a friendship edge and both
// memberships, mirroring what an accept produces.
func (r *memRepo) befriend(a, b social.User) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	convID := r.nextID()
	r.conversations[convID] = social.Conversation{ID: convID}
	fID := r.nextID()
	r.friendships[fID] = social.Friendship{ID: fID, User1ID: a.ID, User2ID: b.ID, ConversationID: convID}
	for _, u := range []social.User{a, b} {
		mID := r.nextID()
		r.members[mID] = social.ConversationMember{ID: mID, MemberID: u.ID, ConversationID: convID}
	}
	return convID
}

func (r *memRepo) WithTx(ctx context.Context, fn func(repository.Tx) error) error {
	return fn(r)
}

func (r *memRepo) UserByID(ctx context.Context, id string) (*social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memRepo) UserBySubject(ctx context.Context, subject string) (*social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.IdentitySubject == subject {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memRepo) UserByEmail(ctx context.Context, email string) (*social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memRepo) InsertUser(ctx context.Context, u social.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID()
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *memRepo) FriendRequestByID(ctx context.Context, id string) (*social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.requests[id]; ok {
		return &req, nil
	}
	return nil, nil
}

func (r *memRepo) FriendRequestByPair(ctx context.Context, receiverID, senderID string) (*social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ReceiverID == receiverID && req.SenderID == senderID {
			return &req, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FriendRequestsByReceiver(ctx context.Context, receiverID string) ([]social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []social.FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == receiverID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) CountFriendRequestsByReceiver(ctx context.Context, receiverID string) (int, error) {
	reqs, _ := r.FriendRequestsByReceiver(ctx, receiverID)
	return len(reqs), nil
}

func (r *memRepo) InsertFriendRequest(ctx context.Context, req social.FriendRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.nextID()
	r.requests[req.ID] = req
	return req.ID, nil
}

func (r *memRepo) DeleteFriendRequest(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return fmt.Errorf("no friend request %s", id)
	}
	delete(r.requests, id)
	return nil
}

func (r *memRepo) FriendshipExists(ctx context.Context, userA, userB string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.friendships {
		if (f.User1ID == userA && f.User2ID == userB) || (f.User1ID == userB && f.User2ID == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) InsertFriendship(ctx context.Context, f social.Friendship) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.nextID()
	r.friendships[f.ID] = f
	return f.ID, nil
}

func (r *memRepo) ConversationByID(ctx context.Context, id string) (*social.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *memRepo) InsertConversation(ctx context.Context, c social.Conversation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID()
	r.conversations[c.ID] = c
	return c.ID, nil
}

func (r *memRepo) SetLastMessage(ctx context.Context, conversationID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[conversationID]
	if !ok {
		return fmt.Errorf("no conversation %s", conversationID)
	}
	c.LastMessageID = &messageID
	r.conversations[conversationID] = c
	return nil
}

func (r *memRepo) MembershipByUserConversation(ctx context.Context, memberID, conversationID string) (*social.ConversationMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.MemberID == memberID && m.ConversationID == conversationID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memRepo) MembershipsByConversation(ctx context.Context, conversationID string) ([]social.ConversationMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []social.ConversationMember
	for _, m := range r.members {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) MembershipsByUser(ctx context.Context, memberID string) ([]social.ConversationMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []social.ConversationMember
	for _, m := range r.members {
		if m.MemberID == memberID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) InsertMember(ctx context.Context, m social.ConversationMember) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID()
	r.members[m.ID] = m
	return m.ID, nil
}

func (r *memRepo) SetLastSeenMessage(ctx context.Context, membershipID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[membershipID]
	if !ok {
		return fmt.Errorf("no membership %s", membershipID)
	}
	m.LastSeenMessageID = &messageID
	r.members[membershipID] = m
	return nil
}

func (r *memRepo) MessageByID(ctx context.Context, id string) (*social.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.messages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *memRepo) InsertMessage(ctx context.Context, m social.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.messages[m.ID] = m
	r.messageSeq[m.ID] = r.seq
	return m.ID, nil
}

// MessagesByConversation returns newest first, matching the adapter's
// ORDER BY created_at DESC with insertion order breaking ties.
func (r *memRepo) MessagesByConversation(ctx context.Context, conversationID string) ([]social.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []social.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.messageSeq[out[i].ID] > r.messageSeq[out[j].ID]
	})
	return out, nil
}

var _ repository.SocialGraphRepository = (*memRepo)(nil)

// memCache is an in-memory cacheport.Cache that records deletes.
type memCache struct {
	mu      sync.Mutex
	data    map[string]string
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return "", cacheport.ErrMiss
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
		c.deleted = append(c.deleted, k)
	}
	return n, nil
}

func (c *memCache) Ping(ctx context.Context) error { return nil }
func (c *memCache) Close() error                   { return nil }

var _ cacheport.Cache = (*memCache)(nil)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu               sync.Mutex
	messages         []social.MessageView
	requestsTo       []string
	conversationsFor [][]string
}

func (p *capturePublisher) MessageCreated(conversationID string, view social.MessageView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, view)
}

func (p *capturePublisher) RequestReceived(receiverID string, view social.PendingRequestView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requestsTo = append(p.requestsTo, receiverID)
}

func (p *capturePublisher) ConversationCreated(conversationID string, memberIDs []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conversationsFor = append(p.conversationsFor, memberIDs)
}
