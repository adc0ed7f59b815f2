package handler

import (
	"context"
	"net/http"
	"strconv"

	. "memoapp/internal/adapter/http/helper"
	. "memoapp/internal/adapter/http/validation"
	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"
	"memoapp/internal/core/port"
	"memoapp/internal/core/util"
	"memoapp/pkg/config"
	. "memoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type MemoHandler struct {
	svc     port.MemoService
	Logger  *config.LokiLogger
	metrics *AppMetrics
}

func NewMemoHandler(svc port.MemoService, logger *config.LokiLogger) *MemoHandler {
	return &MemoHandler{
		svc:    svc,
		Logger: logger,
	}
}

// SetMetrics attaches the operation counters. Handlers built without
// metrics, such as in tests, skip recording.
func (m *MemoHandler) SetMetrics(metrics *AppMetrics) {
	m.metrics = metrics
}

func (m *MemoHandler) recordOperation(ctx context.Context, operation string) {
	if m.metrics == nil {
		return
	}

	m.metrics.RecordMemoOperation(ctx, operation)
}

func (m *MemoHandler) ListMemos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.memo.ListMemos", []attribute.KeyValue{
		attribute.String("handler.operation", "ListMemos"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID := c.GetInt("x-user-id")

	filter, page, limit, ok := bindFilter(c)
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("memo.page", page),
		attribute.Int("memo.limit", limit),
	)

	data, err := m.svc.List(ctx, userID, filter, page, limit)

	if err != nil {
		AddSpanError(span, err)

		m.Logger.Logger.Ctx(ctx).Error("Failed to list memos",
			zap.Error(err),
			zap.Int("user_id", userID),
		)

		SendInternalError(c, "Error listing memos")
		return
	}

	span.SetAttributes(
		attribute.Int("http.status_code", http.StatusOK),
		attribute.Int("memo.total", data.Total),
	)

	c.JSON(http.StatusOK, data)
}

func (m *MemoHandler) SearchMemos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.memo.SearchMemos", []attribute.KeyValue{
		attribute.String("handler.operation", "SearchMemos"),
	})

	defer span.End()

	userID := c.GetInt("x-user-id")

	filter, page, limit, ok := bindFilter(c)
	if !ok {
		return
	}

	data, err := m.svc.Search(ctx, userID, filter, page, limit)

	if err != nil {
		AddSpanError(span, err)
		SendInternalError(c, "Error searching memos")
		return
	}

	c.JSON(http.StatusOK, data)
}

func (m *MemoHandler) GetMemo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt("x-user-id")

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "Invalid memo id")
		return
	}

	memo, err := m.svc.Get(ctx, userID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewMemoResponse(memo))
}

func (m *MemoHandler) CreateMemo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt("x-user-id")

	params, err := util.ParamsToMap[request.CreateMemoRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	deadline, err := util.ParseTimePtr(params.Deadline)

	if err != nil {
		SendBadRequestError(c, "Invalid deadline format, expected RFC3339")
		return
	}

	priority, err := domain.ParsePriority(params.Priority)

	if err != nil {
		SendBadRequestError(c, err.Error())
		return
	}

	memo := domain.Memo{
		Title:    params.Title,
		Content:  params.Content,
		Category: params.Category,
		Tags:     params.Tags,
		Priority: priority,
		Deadline: deadline,
		UserID:   userID,
	}

	memo, err = m.svc.Create(ctx, memo)

	if err != nil {
		m.Logger.Logger.Ctx(ctx).Error("Failed to create memo", zap.Error(err))
		SendDomainError(c, err)
		return
	}

	m.recordOperation(ctx, "create")

	c.JSON(http.StatusCreated, response.NewMemoResponse(memo))
}

func (m *MemoHandler) UpdateMemo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt("x-user-id")

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "Invalid memo id")
		return
	}

	params, err := util.ParamsToMap[request.UpdateMemoRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	patch := domain.MemoPatch{
		Title:    params.Title,
		Content:  params.Content,
		Category: params.Category,
		Tags:     params.Tags,
	}

	if params.Priority != nil {
		priority, err := domain.ParsePriority(*params.Priority)

		if err != nil {
			SendBadRequestError(c, err.Error())
			return
		}

		patch.Priority = &priority
	}

	if params.Status != nil {
		status, err := domain.ParseStatus(*params.Status)

		if err != nil {
			SendBadRequestError(c, err.Error())
			return
		}

		patch.Status = &status
	}

	memo, err := m.svc.Update(ctx, userID, id, patch)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	m.recordOperation(ctx, "update")

	c.JSON(http.StatusOK, response.NewMemoResponse(memo))
}

// ArchiveMemo soft-deletes. DELETE on the memo resource routes here too.
func (m *MemoHandler) ArchiveMemo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt("x-user-id")

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "Invalid memo id")
		return
	}

	memo, err := m.svc.Archive(ctx, userID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	m.recordOperation(ctx, "archive")

	c.JSON(http.StatusOK, response.NewMemoResponse(memo))
}

func (m *MemoHandler) RestoreMemo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt("x-user-id")

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "Invalid memo id")
		return
	}

	memo, err := m.svc.Restore(ctx, userID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	m.recordOperation(ctx, "restore")

	c.JSON(http.StatusOK, response.NewMemoResponse(memo))
}

func (m *MemoHandler) PermanentlyDeleteMemo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt("x-user-id")

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "Invalid memo id")
		return
	}

	if err := m.svc.PermanentlyDelete(ctx, userID, id); err != nil {
		SendDomainError(c, err)
		return
	}

	m.recordOperation(ctx, "permanent_delete")

	c.JSON(http.StatusOK, response.MessageResponse{
		Message: "Memo permanently deleted",
	})
}

// bindFilter parses the shared query string into a filter plus paging.
// On failure it writes the error response and returns ok=false.
func bindFilter(c *gin.Context) (domain.MemoFilter, int, int, bool) {
	var params request.SearchParams

	if err := c.ShouldBindQuery(&params); err != nil {
		SendBadRequestError(c, "Invalid query parameters")
		return domain.MemoFilter{}, 0, 0, false
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return domain.MemoFilter{}, 0, 0, false
	}

	deadlineFrom, err := util.ParseTimePtr(params.DeadlineFrom)

	if err != nil {
		SendBadRequestError(c, "Invalid deadline_from format, expected RFC3339")
		return domain.MemoFilter{}, 0, 0, false
	}

	deadlineTo, err := util.ParseTimePtr(params.DeadlineTo)

	if err != nil {
		SendBadRequestError(c, "Invalid deadline_to format, expected RFC3339")
		return domain.MemoFilter{}, 0, 0, false
	}

	filter := domain.MemoFilter{
		Category:     params.Category,
		Status:       domain.Status(params.Status),
		Priority:     domain.Priority(params.Priority),
		Tag:          params.Tag,
		Search:       params.Search,
		DeadlineFrom: deadlineFrom,
		DeadlineTo:   deadlineTo,
	}

	return filter, params.Page, params.Limit, true
}
