package controller

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vturenko/brokerage-admin/internal/model"
	"github.com/vturenko/brokerage-admin/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, usernameFilter string) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*model.User
	for _, u := range f.users {
		if usernameFilter != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(usernameFilter)) {
			continue
		}
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id int64, patch map[string]interface{}) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for col, val := range patch {
		switch col {
		case "username":
			u.Username = val.(string)
		case "balance":
			u.Balance = val.(decimal.Decimal)
		case "broker":
			u.Broker = val.(string)
		case "is_frozen":
			u.IsFrozen = val.(bool)
		}
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) SetPassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) SetFrozen(_ context.Context, id int64, frozen bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsFrozen = frozen
	return nil
}

func (f *fakeUserRepo) SetBroker(_ context.Context, id int64, broker string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Broker = broker
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// fakeTxnRepo reads the frozen flag from the shared user repo so handler
// tests can freeze an account through the API and watch transactions bounce.
type fakeTxnRepo struct {
	mu     sync.Mutex
	nextID int64
	users  *fakeUserRepo
	txns   []*model.Transaction
}

func (f *fakeTxnRepo) CreateIfActive(ctx context.Context, txn *model.Transaction) error {
	user, err := f.users.GetByID(ctx, txn.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return repository.ErrUserNotFound
	}
	if user.IsFrozen {
		return repository.ErrAccountFrozen
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	txn.ID = f.nextID
	txn.CreatedAt = time.Now().UTC()
	clone := *txn
	f.txns = append(f.txns, &clone)
	return nil
}

func (f *fakeTxnRepo) List(_ context.Context, userID *int64) ([]*model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var txns []*model.Transaction
	for _, t := range f.txns {
		if userID != nil && t.UserID != *userID {
			continue
		}
		clone := *t
		txns = append(txns, &clone)
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].CreatedAt.After(txns[j].CreatedAt) })
	return txns, nil
}

func (f *fakeTxnRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.txns {
		if t.ID == id {
			f.txns = append(f.txns[:i], f.txns[i+1:]...)
			break
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications []*model.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = f.nextID
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()
	clone := *n
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID int64) ([]*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
