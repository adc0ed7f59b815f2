package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"
	"memoapp/pkg/config"

	"github.com/go-resty/resty/v2"
)

// MemoStore is the uniform CRUD+search surface callers program against,
// regardless of which backend serves it.
type MemoStore interface {
	List(ctx context.Context, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error)
	Get(ctx context.Context, id int) (domain.Memo, error)
	Create(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Update(ctx context.Context, id int, patch domain.MemoPatch) (domain.Memo, error)
	Archive(ctx context.Context, id int) (domain.Memo, error)
	Restore(ctx context.Context, id int) (domain.Memo, error)
	PermanentlyDelete(ctx context.Context, id int) error
	Search(ctx context.Context, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error)
}

type Config struct {
	BaseURL   string
	Mode      config.StoreMode
	TokenPath string
	Timeout   time.Duration
}

// New resolves the backend strategy exactly once. Nothing downstream
// re-inspects the mode per call.
func New(cfg Config, tokens *TokenManager) MemoStore {
	if cfg.Mode == config.StoreModeMock {
		return newMockStore()
	}

	timeout := cfg.Timeout

	if timeout == 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &remoteStore{
		http:   httpClient,
		tokens: tokens,
	}
}

type remoteStore struct {
	http   *resty.Client
	tokens *TokenManager
}

func (rs *remoteStore) List(ctx context.Context, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error) {
	var list response.MemoListResponse

	err := rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParams(filterParams(filter, page, limit)).
			SetResult(&list).
			Get("/api/memos")
	})

	if err != nil {
		return nil, err
	}

	return reFilter(&list, filter), nil
}

func (rs *remoteStore) Search(ctx context.Context, filter domain.MemoFilter, page, limit int) (*response.MemoListResponse, error) {
	// An empty search box must not degenerate into a full listing.
	if filter.IsZero() {
		if limit <= 0 {
			limit = request.DefaultLimit
		}
		if page <= 0 {
			page = 1
		}

		return &response.MemoListResponse{
			Memos: []response.MemoResponse{},
			Page:  page,
			Limit: limit,
		}, nil
	}

	var list response.MemoListResponse

	err := rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParams(filterParams(filter, page, limit)).
			SetResult(&list).
			Get("/api/memos/search")
	})

	if err != nil {
		return nil, err
	}

	return reFilter(&list, filter), nil
}

func (rs *remoteStore) Get(ctx context.Context, id int) (domain.Memo, error) {
	var memoResp response.MemoResponse

	err := rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&memoResp).
			Get(fmt.Sprintf("/api/memos/%d", id))
	})

	if err != nil {
		return domain.Memo{}, err
	}

	return memoFromResponse(memoResp), nil
}

func (rs *remoteStore) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	body := request.CreateMemoRequest{
		Title:    memo.Title,
		Content:  memo.Content,
		Category: memo.Category,
		Tags:     memo.Tags,
		Priority: string(memo.Priority),
	}

	if memo.Deadline != nil {
		body.Deadline = memo.Deadline.Format(time.RFC3339)
	}

	var memoResp response.MemoResponse

	err := rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetBody(body).
			SetResult(&memoResp).
			Post("/api/memos")
	})

	if err != nil {
		return domain.Memo{}, err
	}

	return memoFromResponse(memoResp), nil
}

func (rs *remoteStore) Update(ctx context.Context, id int, patch domain.MemoPatch) (domain.Memo, error) {
	body := request.UpdateMemoRequest{
		Title:    patch.Title,
		Content:  patch.Content,
		Category: patch.Category,
		Tags:     patch.Tags,
	}

	if patch.Priority != nil {
		priority := string(*patch.Priority)
		body.Priority = &priority
	}

	if patch.Status != nil {
		status := string(*patch.Status)
		body.Status = &status
	}

	var memoResp response.MemoResponse

	err := rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetBody(body).
			SetResult(&memoResp).
			Put(fmt.Sprintf("/api/memos/%d", id))
	})

	if err != nil {
		return domain.Memo{}, err
	}

	return memoFromResponse(memoResp), nil
}

func (rs *remoteStore) Archive(ctx context.Context, id int) (domain.Memo, error) {
	return rs.transition(ctx, id, "archive", domain.StatusArchived)
}

func (rs *remoteStore) Restore(ctx context.Context, id int) (domain.Memo, error) {
	return rs.transition(ctx, id, "restore", domain.StatusActive)
}

// transition runs a lifecycle operation and reconciles the echoed entity.
// Backends have been observed echoing the pre-transition status, so the
// requested status is imposed on the returned memo and one verification
// re-fetch checks convergence. Divergence is a warning, never a failure.
func (rs *remoteStore) transition(ctx context.Context, id int, op string, want domain.Status) (domain.Memo, error) {
	var memoResp response.MemoResponse

	err := rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&memoResp).
			Patch(fmt.Sprintf("/api/memos/%d/%s", id, op))
	})

	if err != nil {
		return domain.Memo{}, err
	}

	memo := memoFromResponse(memoResp)

	if memo.Status == want {
		return memo, nil
	}

	slog.Warn("Backend echoed stale status after transition",
		"memo_id", id,
		"operation", op,
		"echoed_status", memo.Status,
		"requested_status", want)

	verified, verifyErr := rs.Get(ctx, id)

	if verifyErr == nil && verified.Status == want {
		return verified, nil
	}

	if verifyErr == nil {
		slog.Warn("Backend has not converged after transition",
			"memo_id", id,
			"operation", op,
			"stored_status", verified.Status)
	}

	memo.Status = want

	return memo, nil
}

func (rs *remoteStore) PermanentlyDelete(ctx context.Context, id int) error {
	return rs.execute(ctx, func(token string) (*resty.Response, error) {
		return rs.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			Delete(fmt.Sprintf("/api/memos/%d/permanent", id))
	})
}

// execute runs one request, and on an auth failure performs a single
// refresh-and-retry. Concurrent auth failures share one refresh through
// the token manager.
func (rs *remoteStore) execute(ctx context.Context, do func(token string) (*resty.Response, error)) error {
	resp, err := do(rs.tokens.AccessToken())

	if err != nil {
		return fmt.Errorf("memo request: %w", domain.ErrTransport)
	}

	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		token, refreshErr := rs.tokens.Refresh(ctx)

		if refreshErr != nil {
			return refreshErr
		}

		resp, err = do(token)

		if err != nil {
			return fmt.Errorf("memo request: %w", domain.ErrTransport)
		}
	}

	if resp.IsError() {
		return classifyStatus(resp.StatusCode(), resp.Body())
	}

	return nil
}

// reFilter re-applies the full predicate to whatever the backend returned.
// Server-side filtering has been observed dropping dimensions, so this
// correction pass is mandatory, not an optimization.
func reFilter(list *response.MemoListResponse, filter domain.MemoFilter) *response.MemoListResponse {
	if filter.IsZero() || len(list.Memos) == 0 {
		return list
	}

	kept := make([]response.MemoResponse, 0, len(list.Memos))

	for _, memoResp := range list.Memos {
		if filter.Matches(memoFromResponse(memoResp)) {
			kept = append(kept, memoResp)
		}
	}

	if len(kept) == len(list.Memos) {
		return list
	}

	dropped := len(list.Memos) - len(kept)

	slog.Warn("Backend returned memos outside the requested filter",
		"dropped", dropped,
		"total_before", list.Total)

	list.Memos = kept
	list.Total -= dropped

	if list.Total < 0 {
		list.Total = 0
	}

	if list.Limit > 0 {
		list.TotalPages = (list.Total + list.Limit - 1) / list.Limit
	}

	return list
}

func filterParams(filter domain.MemoFilter, page, limit int) map[string]string {
	params := make(map[string]string)

	if filter.Category != "" {
		params["category"] = filter.Category
	}

	if filter.Status != "" {
		params["status"] = string(filter.Status)
	}

	if filter.Priority != "" {
		params["priority"] = string(filter.Priority)
	}

	if filter.Tag != "" {
		params["tags"] = filter.Tag
	}

	if filter.Search != "" {
		params["search"] = filter.Search
	}

	if filter.DeadlineFrom != nil {
		params["deadline_from"] = filter.DeadlineFrom.Format(time.RFC3339)
	}

	if filter.DeadlineTo != nil {
		params["deadline_to"] = filter.DeadlineTo.Format(time.RFC3339)
	}

	if page > 0 {
		params["page"] = strconv.Itoa(page)
	}

	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	return params
}

func memoFromResponse(r response.MemoResponse) domain.Memo {
	return domain.Memo{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		Category:    r.Category,
		Tags:        r.Tags,
		Priority:    r.Priority,
		Status:      r.Status,
		Deadline:    r.Deadline,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
		UserID:      r.UserID,
	}
}
