package port

import (
	"context"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"
)

type AuthService interface {
	Registration(ctx context.Context, req *request.SignUpRequest) (*response.AuthData, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*response.AuthData, error)
	Refresh(ctx context.Context, refreshToken string) (*response.AuthData, error)
	Logout(ctx context.Context, userID int, sessionID string) error
	Profile(ctx context.Context, userID int) (domain.PublicUser, error)
}

// SessionRepository tracks live refresh sessions. A session is revoked the
// moment its refresh token is used, so every token works at most once.
type SessionRepository interface {
	Put(ctx context.Context, sessionID string, userID int) error
	Take(ctx context.Context, sessionID string) (int, bool, error)
	Revoke(ctx context.Context, sessionID string) error
}
