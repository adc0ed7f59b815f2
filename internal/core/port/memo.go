package port

import (
	"context"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/response"
)

type MemoRepository interface {
	List(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) ([]domain.Memo, int, error)
	GetByID(ctx context.Context, id int) (domain.Memo, error)
	Create(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Update(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Delete(ctx context.Context, id int) error
}

type MemoService interface {
	List(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error)
	Get(ctx context.Context, userID, id int) (domain.Memo, error)
	Create(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Update(ctx context.Context, userID, id int, patch domain.MemoPatch) (domain.Memo, error)
	Archive(ctx context.Context, userID, id int) (domain.Memo, error)
	Restore(ctx context.Context, userID, id int) (domain.Memo, error)
	PermanentlyDelete(ctx context.Context, userID, id int) error
	Search(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error)
}
