package service

import (
	"context"
	"log/slog"
	"time"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"
	"memoapp/internal/core/port"
)

type MemoService struct {
	repo port.MemoRepository
}

func NewMemoService(repo port.MemoRepository) *MemoService {
	return &MemoService{repo}
}

func (ms *MemoService) List(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error) {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = request.DefaultLimit
	}

	memos, total, err := ms.repo.List(ctx, userID, filter, page, limit)

	if err != nil {
		slog.Error("Error listing memos", "error", err, "user_id", userID)
		return nil, err
	}

	return buildListResponse(memos, total, page, limit), nil
}

// Search is List with a mandatory predicate. An empty search box must not
// turn into a full scan.
func (ms *MemoService) Search(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error) {
	if filter.IsZero() {
		if limit <= 0 {
			limit = request.DefaultLimit
		}

		return buildListResponse(nil, 0, 1, limit), nil
	}

	return ms.List(ctx, userID, filter, page, limit)
}

func (ms *MemoService) Get(ctx context.Context, userID, id int) (domain.Memo, error) {
	memo, err := ms.repo.GetByID(ctx, id)

	if err != nil {
		return domain.Memo{}, err
	}

	if !memo.BelongsToUser(userID) {
		return domain.Memo{}, domain.ErrNotFound
	}

	return memo, nil
}

func (ms *MemoService) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	now := time.Now()

	memo.Normalize()
	memo.Status = domain.StatusActive
	memo.CompletedAt = nil
	memo.CreatedAt = now
	memo.UpdatedAt = now

	saved, err := ms.repo.Create(ctx, memo)

	if err != nil {
		slog.Error("Error creating memo", "error", err, "title", memo.Title)
		return domain.Memo{}, err
	}

	return saved, nil
}

func (ms *MemoService) Update(ctx context.Context, userID, id int, patch domain.MemoPatch) (domain.Memo, error) {
	memo, err := ms.Get(ctx, userID, id)

	if err != nil {
		return domain.Memo{}, err
	}

	patch.Apply(&memo)
	memo.UpdatedAt = time.Now()

	return ms.repo.Update(ctx, memo)
}

// Archive moves a memo to the archived state. Archiving an already-archived
// memo is a no-op that returns the current record.
func (ms *MemoService) Archive(ctx context.Context, userID, id int) (domain.Memo, error) {
	memo, err := ms.Get(ctx, userID, id)

	if err != nil {
		return domain.Memo{}, err
	}

	if memo.IsArchived() {
		return memo, nil
	}

	now := time.Now()
	memo.Status = domain.StatusArchived
	memo.CompletedAt = &now
	memo.UpdatedAt = now

	return ms.repo.Update(ctx, memo)
}

// Restore is the symmetric transition back to active.
func (ms *MemoService) Restore(ctx context.Context, userID, id int) (domain.Memo, error) {
	memo, err := ms.Get(ctx, userID, id)

	if err != nil {
		return domain.Memo{}, err
	}

	if !memo.IsArchived() {
		return memo, nil
	}

	memo.Status = domain.StatusActive
	memo.CompletedAt = nil
	memo.UpdatedAt = time.Now()

	return ms.repo.Update(ctx, memo)
}

// PermanentlyDelete removes the record entirely. Only archived memos can be
// deleted; active ones must be archived first.
func (ms *MemoService) PermanentlyDelete(ctx context.Context, userID, id int) error {
	memo, err := ms.Get(ctx, userID, id)

	if err != nil {
		return err
	}

	if !memo.IsArchived() {
		return domain.ErrMemoNotArchived
	}

	return ms.repo.Delete(ctx, memo.ID)
}

func buildListResponse(memos []domain.Memo, total, page, limit int) *response.MemoListResponse {
	items := make([]response.MemoResponse, 0, len(memos))

	for _, memo := range memos {
		items = append(items, response.NewMemoResponse(memo))
	}

	totalPages := total / limit

	if total%limit != 0 {
		totalPages++
	}

	return &response.MemoListResponse{
		Memos:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
