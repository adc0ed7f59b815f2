package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
	"memoapp/internal/core/util"

	"github.com/google/uuid"
)

// UserStore keeps accounts in-process for mock mode and tests.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]domain.User
	nextID int
}

func NewUserStore() port.UserRepository {
	return &UserStore{
		users:  make(map[int]domain.User),
		nextID: 1,
	}
}

// NewSeededUserStore registers the demo account mock mode logs in with.
func NewSeededUserStore() port.UserRepository {
	store := &UserStore{
		users:  make(map[int]domain.User),
		nextID: 1,
	}

	encrypted, err := util.GenerateEncrypt("password123")

	if err != nil {
		return store
	}

	now := time.Now()

	store.users[1] = domain.User{
		ID:                1,
		UUID:              uuid.New(),
		Name:              "Demo User",
		Email:             "demo@example.com",
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	store.nextID = 2

	return store
}

func (s *UserStore) GetByID(ctx context.Context, id int) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]

	if !ok {
		return domain.User{}, domain.ErrNotFound
	}

	return user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}

	return domain.User{}, domain.ErrNotFound
}

func (s *UserStore) Create(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	now := time.Now()

	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID] = user
	s.nextID++

	return user, nil
}
