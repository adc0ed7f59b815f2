package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
)

// Store is an in-memory memo collection standing in for the backend in mock
// mode and in tests. It is an explicit object handed to whoever needs it,
// never a package-level singleton.
type Store struct {
	mu     sync.RWMutex
	memos  map[int]domain.Memo
	nextID int
}

func NewStore() port.MemoRepository {
	return &Store{
		memos:  make(map[int]domain.Memo),
		nextID: 1,
	}
}

// seededUserID owns every seeded record, matching the demo account.
const seededUserID = 1

// NewSeededStore returns a store pre-populated with a small mixed-status
// collection so mock mode renders something useful.
func NewSeededStore() port.MemoRepository {
	store := &Store{
		memos:  make(map[int]domain.Memo),
		nextID: 1,
	}

	now := time.Now()
	weekAgo := now.Add(-7 * 24 * time.Hour)

	seeds := []domain.Memo{
		{
			Title:    "Sample memo 1",
			Content:  "This is sample data served because the store is running in mock mode.",
			Category: "development",
			Tags:     []string{"sample", "development"},
			Priority: domain.PriorityMedium,
			Status:   domain.StatusActive,
		},
		{
			Title:    "Sample memo 2",
			Content:  "Check the API server auth settings and configure a valid token.",
			Category: "settings",
			Tags:     []string{"auth", "api"},
			Priority: domain.PriorityHigh,
			Status:   domain.StatusActive,
		},
		{
			Title:       "Archived memo sample",
			Content:     "A finished task kept around in the archive.",
			Category:    "archive",
			Tags:        []string{"done", "sample"},
			Priority:    domain.PriorityLow,
			Status:      domain.StatusArchived,
			CreatedAt:   weekAgo,
			UpdatedAt:   weekAgo,
			CompletedAt: &weekAgo,
		},
		{
			Title:    "Learn about ownership and borrowing in Rust",
			Content:  "Study the concepts behind memory safety in the Rust language.",
			Category: "programming",
			Tags:     []string{"rust", "learning"},
			Priority: domain.PriorityHigh,
			Status:   domain.StatusActive,
		},
	}

	for _, seed := range seeds {
		if seed.CreatedAt.IsZero() {
			seed.CreatedAt = now
			seed.UpdatedAt = now
		}

		seed.UserID = seededUserID
		seed.ID = store.nextID
		store.nextID++
		store.memos[seed.ID] = seed
	}

	return store
}

func (s *Store) List(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) ([]domain.Memo, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Memo, 0)

	for _, memo := range s.memos {
		if userID != 0 && !memo.BelongsToUser(userID) {
			continue
		}

		if !filter.Matches(memo) {
			continue
		}

		matched = append(matched, memo)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}

		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = total
	}

	start := (page - 1) * limit

	if start >= total {
		return []domain.Memo{}, total, nil
	}

	end := start + limit

	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (s *Store) GetByID(ctx context.Context, id int) (domain.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memo, ok := s.memos[id]

	if !ok {
		return domain.Memo{}, domain.ErrNotFound
	}

	return memo, nil
}

func (s *Store) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memo.ID = s.nextID
	s.nextID++

	s.memos[memo.ID] = memo

	return memo, nil
}

func (s *Store) Update(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.memos[memo.ID]; !ok {
		return domain.Memo{}, domain.ErrNotFound
	}

	s.memos[memo.ID] = memo

	return memo, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.memos[id]; !ok {
		return domain.ErrNotFound
	}

	// ids are never reused, nextID only moves forward
	delete(s.memos, id)

	return nil
}
