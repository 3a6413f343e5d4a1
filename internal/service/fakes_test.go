package service

import (
	"context"
	"strings"
	"time"

	"nexus/internal/domain"
)

// fakeUserRepo is an in-memory identity directory.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	err    error
}

func newFakeUserRepo(usernames ...string) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, name := range usernames {
		r.nextID++
		r.users[name] = &domain.User{
			ID:        r.nextID,
			Username:  name,
			Role:      domain.RoleUser,
			CreatedAt: time.Now(),
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) SearchByUsername(_ context.Context, fragment string) ([]domain.User, error) {
	var out []domain.User
	for name, u := range r.users {
		if containsFold(name, fragment) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Contacts(_ context.Context, _ int64) ([]domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, id int64, ip, device string, at time.Time) error {
	for _, u := range r.users {
		if u.ID == id {
			u.LastLoginIP = ip
			u.DeviceDetails = device
			u.LastLoginAt = &at
		}
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// fakeMessageRepo is an in-memory message store. It fills in joined
// usernames from the directory it is constructed with.
type fakeMessageRepo struct {
	users     *fakeUserRepo
	messages  map[int64]*domain.Message
	nextID    int64
	createErr error
	sweepErr  error
	sweeps    []time.Time
}

func newFakeMessageRepo(users *fakeUserRepo) *fakeMessageRepo {
	return &fakeMessageRepo{users: users, messages: make(map[int64]*domain.Message)}
}

func (r *fakeMessageRepo) usernameFor(id int64) string {
	for name, u := range r.users.users {
		if u.ID == id {
			return name
		}
	}
	return ""
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	msg.ID = r.nextID
	copied := *msg
	copied.SenderUsername = r.usernameFor(msg.SenderID)
	copied.RecipientUsername = r.usernameFor(msg.RecipientID)
	r.messages[msg.ID] = &copied
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	msg, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	copied := *msg
	return &copied, nil
}

func (r *fakeMessageRepo) FindConversation(_ context.Context, userAID, userBID int64, page, size int) ([]domain.Message, bool, error) {
	var out []domain.Message
	for _, m := range r.messages {
		pair := (m.SenderID == userAID && m.RecipientID == userBID) ||
			(m.SenderID == userBID && m.RecipientID == userAID)
		if pair && !m.Deleted {
			out = append(out, *m)
		}
	}
	return out, false, nil
}

func (r *fakeMessageRepo) FindAllByType(_ context.Context, types []domain.MessageType) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		for _, t := range types {
			if m.Type == t {
				out = append(out, *m)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateStatus(_ context.Context, id int64, status domain.MessageStatus) error {
	if m, ok := r.messages[id]; ok {
		m.Status = status
	}
	return nil
}

func (r *fakeMessageRepo) SoftDelete(_ context.Context, id int64) error {
	if m, ok := r.messages[id]; ok {
		m.Deleted = true
	}
	return nil
}

func (r *fakeMessageRepo) HardDelete(_ context.Context, id int64, tombstone string) error {
	if m, ok := r.messages[id]; ok {
		m.Deleted = true
		m.Type = domain.TypeText
		m.Content = tombstone
		m.ExpiresAt = nil
	}
	return nil
}

func (r *fakeMessageRepo) DeleteExpiredBefore(_ context.Context, t time.Time) (int64, error) {
	if r.sweepErr != nil {
		return 0, r.sweepErr
	}
	r.sweeps = append(r.sweeps, t)
	var removed int64
	for id, m := range r.messages {
		if m.ExpiresAt != nil && m.ExpiresAt.Before(t) {
			delete(r.messages, id)
			removed++
		}
	}
	return removed, nil
}

type notifiedMessage struct {
	msg    domain.Message
	tempID string
}

type notifiedStatus struct {
	username  string
	messageID int64
	status    domain.MessageStatus
}

// fakeNotifier records fan-out calls.
type fakeNotifier struct {
	newMessages []notifiedMessage
	deleted     []domain.Message
	statuses    []notifiedStatus
	typings     []domain.TypingSignal
}

func (n *fakeNotifier) NotifyNewMessage(msg *domain.Message, tempID string) {
	n.newMessages = append(n.newMessages, notifiedMessage{msg: *msg, tempID: tempID})
}

func (n *fakeNotifier) NotifyDeletedMessage(msg *domain.Message) {
	n.deleted = append(n.deleted, *msg)
}

func (n *fakeNotifier) NotifyStatus(username string, messageID int64, status domain.MessageStatus) {
	n.statuses = append(n.statuses, notifiedStatus{username: username, messageID: messageID, status: status})
}

func (n *fakeNotifier) NotifyTyping(signal domain.TypingSignal) {
	n.typings = append(n.typings, signal)
}

// fakeBlobStore records deletions and can be told to fail.
type fakeBlobStore struct {
	deleted []string
	err     error
}

func (b *fakeBlobStore) Delete(filename string) error {
	if b.err != nil {
		return b.err
	}
	b.deleted = append(b.deleted, filename)
	return nil
}
