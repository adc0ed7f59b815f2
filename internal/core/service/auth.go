package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"
	"memoapp/internal/core/port"
	"memoapp/internal/core/util"
	"memoapp/pkg/auth"
)

type AuthService struct {
	users    port.UserRepository
	sessions port.SessionRepository
}

func NewAuthService(users port.UserRepository, sessions port.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

func (as *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (*response.AuthData, error) {
	oldUser, err := as.users.GetByEmail(ctx, req.Email)

	if err == nil && oldUser.Email != "" {
		return nil, domain.ErrEmailTaken
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return nil, fmt.Errorf("error creating encrypted password")
	}

	user := domain.User{
		UUID:              uuid.New(),
		Name:              req.Name,
		Email:             req.Email,
		EncryptedPassword: encrypted,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	savedUser, err := as.users.Create(ctx, user)

	if err != nil {
		return nil, err
	}

	return as.openSession(ctx, &savedUser)
}

func (as *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (*response.AuthData, error) {
	user, err := as.users.GetByEmail(ctx, req.Email)

	if err != nil {
		slog.Error("Auth#Authenticate", "get_by_email", err)
		return nil, domain.ErrUnauthorized
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		slog.Error("Auth#Authenticate", "compare_password", err)
		return nil, domain.ErrUnauthorized
	}

	return as.openSession(ctx, &user)
}

// Refresh rotates the session: the presented refresh token is consumed and a
// fresh token pair under a new session id is returned. A second use of the
// same token fails.
func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (*response.AuthData, error) {
	claims, err := auth.VerifyJwtToken(refreshToken)

	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, domain.ErrUnauthorized
	}

	sessionID, _ := claims["sid"].(string)

	userID, ok, err := as.sessions.Take(ctx, sessionID)

	if err != nil {
		return nil, err
	}

	if !ok {
		slog.Warn("Auth#Refresh", "session", sessionID, "reason", "unknown or already used")
		return nil, domain.ErrUnauthorized
	}

	user, err := as.users.GetByID(ctx, userID)

	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	return as.openSession(ctx, &user)
}

func (as *AuthService) Logout(ctx context.Context, userID int, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return as.sessions.Revoke(ctx, sessionID)
}

func (as *AuthService) Profile(ctx context.Context, userID int) (domain.PublicUser, error) {
	user, err := as.users.GetByID(ctx, userID)

	if err != nil {
		return domain.PublicUser{}, err
	}

	return user.Public(), nil
}

func (as *AuthService) openSession(ctx context.Context, user *domain.User) (*response.AuthData, error) {
	sessionID := uuid.New().String()

	if err := as.sessions.Put(ctx, sessionID, user.ID); err != nil {
		return nil, err
	}

	accessToken, err := auth.CreateAccessTokenForUser(user.ID, sessionID)

	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.CreateRefreshTokenForUser(user.ID, sessionID)

	if err != nil {
		return nil, err
	}

	return &response.AuthData{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(auth.AccessTokenTTL.Seconds()),
	}, nil
}
