package handler

import (
	"context"
	"log/slog"
	"net/http"

	. "memoapp/internal/adapter/http/helper"
	. "memoapp/internal/adapter/http/validation"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"
	"memoapp/internal/core/port"
	"memoapp/internal/core/util"
	. "memoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc     port.AuthService
	metrics *AppMetrics
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// SetMetrics attaches the operation counters. Handlers built without
// metrics, such as in tests, skip recording.
func (a *AuthHandler) SetMetrics(metrics *AppMetrics) {
	a.metrics = metrics
}

func (a *AuthHandler) recordOperation(ctx context.Context, operation string) {
	if a.metrics == nil {
		return
	}

	a.metrics.RecordUserOperation(ctx, operation)
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	data, err := a.svc.Registration(ctx, &params)

	if err != nil {
		slog.Error("Register failed", "error", err)
		SendDomainError(c, err)
		return
	}

	a.recordOperation(ctx, "register")

	c.JSON(http.StatusCreated, response.AuthResponse{Data: *data})
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	data, err := a.svc.Authenticate(ctx, &params)

	if err != nil {
		slog.Warn("Login failed", "email", params.Email)
		SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	a.recordOperation(ctx, "login")

	c.JSON(http.StatusOK, response.AuthResponse{Data: *data})
}

// Refresh exchanges a refresh token for a new session. The presented token
// is consumed even when the exchange fails.
func (a *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RefreshRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	data, err := a.svc.Refresh(ctx, params.RefreshToken)

	if err != nil {
		SendUnauthorizedError(c, "Invalid or expired refresh token")
		return
	}

	a.recordOperation(ctx, "refresh")

	c.JSON(http.StatusOK, response.AuthResponse{Data: *data})
}

func (a *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetInt("x-user-id")
	sessionID := c.GetString("x-session-id")

	if err := a.svc.Logout(ctx, userID, sessionID); err != nil {
		slog.Error("Logout failed", "error", err, "user_id", userID)
		SendInternalError(c, "Error logging out")
		return
	}

	a.recordOperation(ctx, "logout")

	c.JSON(http.StatusOK, response.MessageResponse{
		Message: "Logged out successfully",
	})
}

func (a *AuthHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetInt("x-user-id")

	user, err := a.svc.Profile(ctx, userID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ProfileResponse{Data: user})
}
