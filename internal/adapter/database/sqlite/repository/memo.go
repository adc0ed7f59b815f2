package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"memoapp/internal/adapter/database/sqlite"
	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
	"memoapp/pkg/tracing"
)

const memoColumns = "id, title, content, category, tags, priority, status, deadline, created_at, updated_at, completed_at, user_id"

type MemoRepository struct {
	db *sqlite.DB
}

func NewMemoRepository(db *sqlite.DB) port.MemoRepository {
	return &MemoRepository{db: db}
}

func (mr *MemoRepository) List(ctx context.Context, userID int, filter domain.MemoFilter, page, limit int) ([]domain.Memo, int, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.memo.List", []attribute.KeyValue{
		attribute.String("db.table", "memos"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", userID),
		attribute.Int("memo.page", page),
		attribute.Int("memo.limit", limit),
	})

	defer span.End()

	where := memoFilterConditions(userID, filter)

	countQuery := mr.db.QueryBuilder.Select("COUNT(*)").From("memos")

	for _, cond := range where {
		countQuery = countQuery.Where(cond)
	}

	stmt, args, err := countQuery.ToSql()

	if err != nil {
		return nil, 0, err
	}

	var total int

	if err := mr.db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		slog.Error("Error counting memos", "error", err)
		return nil, 0, err
	}

	query := mr.db.QueryBuilder.Select(memoColumns).
		From("memos").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	for _, cond := range where {
		query = query.Where(cond)
	}

	stmt, args, err = query.ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := mr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error fetching memos", "error", err)
		return nil, 0, err
	}

	defer rows.Close()

	data := []domain.Memo{}

	for rows.Next() {
		memo, err := scanMemo(rows)

		if err != nil {
			return nil, 0, err
		}

		data = append(data, memo)
	}

	span.SetAttributes(
		attribute.Int("db.rows_returned", len(data)),
		attribute.Int("memo.total", total),
	)

	return data, total, rows.Err()
}

func (mr *MemoRepository) GetByID(ctx context.Context, id int) (domain.Memo, error) {
	query := mr.db.QueryBuilder.Select(memoColumns).
		From("memos").
		Where(sq.Eq{"id": id}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Memo{}, err
	}

	rows, err := mr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Memo{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		return domain.Memo{}, domain.ErrNotFound
	}

	return scanMemo(rows)
}

func (mr *MemoRepository) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	tags, err := json.Marshal(memo.Tags)

	if err != nil {
		return domain.Memo{}, err
	}

	query := mr.db.QueryBuilder.Insert("memos").
		Columns("title", "content", "category", "tags", "priority", "status", "deadline", "created_at", "updated_at", "completed_at", "user_id").
		Values(memo.Title, memo.Content, memo.Category, string(tags), memo.Priority, memo.Status, memo.Deadline, memo.CreatedAt, memo.UpdatedAt, memo.CompletedAt, memo.UserID)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Memo{}, err
	}

	result, err := mr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating memo", "error", err)
		return domain.Memo{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Memo{}, err
	}

	return mr.GetByID(ctx, int(id))
}

func (mr *MemoRepository) Update(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	tags, err := json.Marshal(memo.Tags)

	if err != nil {
		return domain.Memo{}, err
	}

	query := mr.db.QueryBuilder.Update("memos").
		SetMap(map[string]interface{}{
			"title":        memo.Title,
			"content":      memo.Content,
			"category":     memo.Category,
			"tags":         string(tags),
			"priority":     memo.Priority,
			"status":       memo.Status,
			"deadline":     memo.Deadline,
			"updated_at":   memo.UpdatedAt,
			"completed_at": memo.CompletedAt,
		}).
		Where(sq.Eq{"id": memo.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Memo{}, err
	}

	result, err := mr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating memo", "error", err)
		return domain.Memo{}, err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.Memo{}, err
	}

	if affected == 0 {
		return domain.Memo{}, domain.ErrNotFound
	}

	return mr.GetByID(ctx, memo.ID)
}

// Delete removes a memo permanently. Only archived rows are deletable, the
// same policy the service enforces.
func (mr *MemoRepository) Delete(ctx context.Context, id int) error {
	query := mr.db.QueryBuilder.Delete("memos").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"status": domain.StatusArchived})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := mr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		if _, err := mr.GetByID(ctx, id); errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}

		return domain.ErrMemoNotArchived
	}

	return nil
}

func memoFilterConditions(userID int, filter domain.MemoFilter) []sq.Sqlizer {
	conds := []sq.Sqlizer{}

	if userID != 0 {
		conds = append(conds, sq.Eq{"user_id": userID})
	}

	if filter.Category != "" {
		conds = append(conds, sq.Eq{"category": filter.Category})
	}

	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}

	if filter.Priority != "" {
		conds = append(conds, sq.Eq{"priority": filter.Priority})
	}

	if filter.Tag != "" {
		conds = append(conds, sq.Like{"tags": "%\"" + filter.Tag + "\"%"})
	}

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		conds = append(conds, sq.Or{
			sq.Like{"LOWER(title)": term},
			sq.Like{"LOWER(content)": term},
			sq.Like{"LOWER(tags)": term},
		})
	}

	if filter.DeadlineFrom != nil {
		conds = append(conds, sq.GtOrEq{"deadline": *filter.DeadlineFrom})
	}

	if filter.DeadlineTo != nil {
		conds = append(conds, sq.LtOrEq{"deadline": *filter.DeadlineTo})
	}

	return conds
}

func scanMemo(rows *sql.Rows) (domain.Memo, error) {
	var memo domain.Memo
	var tags string
	var deadline, completedAt sql.NullTime

	err := rows.Scan(
		&memo.ID,
		&memo.Title,
		&memo.Content,
		&memo.Category,
		&tags,
		&memo.Priority,
		&memo.Status,
		&deadline,
		&memo.CreatedAt,
		&memo.UpdatedAt,
		&completedAt,
		&memo.UserID,
	)

	if err != nil {
		return domain.Memo{}, err
	}

	if err := json.Unmarshal([]byte(tags), &memo.Tags); err != nil {
		// legacy rows may hold a bare string instead of a JSON array
		memo.Tags = []string{tags}
	}

	if memo.Tags == nil {
		memo.Tags = []string{}
	}

	if deadline.Valid {
		memo.Deadline = &deadline.Time
	}

	if completedAt.Valid {
		memo.CompletedAt = &completedAt.Time
	}

	return memo, nil
}
