package client

import (
	"context"

	"memoapp/internal/adapter/database/memory"
	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/response"
	"memoapp/internal/core/service"
)

// mockUserID is the owner of everything in the substitute collection.
const mockUserID = 1

// mockStore serves the gateway surface from an in-process seeded collection.
// It reuses the real service layer, so lifecycle semantics are identical to
// the remote backend.
type mockStore struct {
	svc *service.MemoService
}

func newMockStore() *mockStore {
	return &mockStore{
		svc: service.NewMemoService(memory.NewSeededStore()),
	}
}

func (ms *mockStore) List(ctx context.Context, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error) {
	return ms.svc.List(ctx, mockUserID, filter, page, limit)
}

func (ms *mockStore) Search(ctx context.Context, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error) {
	return ms.svc.Search(ctx, mockUserID, filter, page, limit)
}

func (ms *mockStore) Get(ctx context.Context, id int) (domain.Memo, error) {
	return ms.svc.Get(ctx, mockUserID, id)
}

func (ms *mockStore) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	memo.UserID = mockUserID

	return ms.svc.Create(ctx, memo)
}

func (ms *mockStore) Update(ctx context.Context, id int, patch domain.MemoPatch) (domain.Memo, error) {
	return ms.svc.Update(ctx, mockUserID, id, patch)
}

func (ms *mockStore) Archive(ctx context.Context, id int) (domain.Memo, error) {
	return ms.svc.Archive(ctx, mockUserID, id)
}

func (ms *mockStore) Restore(ctx context.Context, id int) (domain.Memo, error) {
	return ms.svc.Restore(ctx, mockUserID, id)
}

func (ms *mockStore) PermanentlyDelete(ctx context.Context, id int) error {
	return ms.svc.PermanentlyDelete(ctx, mockUserID, id)
}
