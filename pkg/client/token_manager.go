package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/request"
	"memoapp/internal/core/model/response"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

// persistedSession is the single JSON blob written to client storage. The
// token pair and the cached profile live and die together.
type persistedSession struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	User         *domain.PublicUser `json:"user,omitempty"`
}

// TokenManager holds the session token pair, persists it to a file and
// coordinates refresh so concurrent auth failures trigger exactly one
// refresh call.
type TokenManager struct {
	mu      sync.RWMutex
	session persistedSession
	path    string

	http  *resty.Client
	group singleflight.Group
}

func NewTokenManager(baseURL, path string, timeout time.Duration) *TokenManager {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	tm := &TokenManager{
		path: path,
		http: httpClient,
	}

	tm.load()

	return tm
}

func (tm *TokenManager) load() {
	data, err := os.ReadFile(tm.path)

	if err != nil {
		return
	}

	var session persistedSession

	if err := json.Unmarshal(data, &session); err != nil {
		return
	}

	tm.mu.Lock()
	tm.session = session
	tm.mu.Unlock()
}

func (tm *TokenManager) save() error {
	tm.mu.RLock()
	data, err := json.MarshalIndent(tm.session, "", "  ")
	tm.mu.RUnlock()

	if err != nil {
		return err
	}

	if dir := filepath.Dir(tm.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(tm.path, data, 0o600)
}

func (tm *TokenManager) setSession(data response.AuthData) error {
	tm.mu.Lock()
	user := data.User
	tm.session = persistedSession{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		User:         &user,
	}
	tm.mu.Unlock()

	return tm.save()
}

// Clear drops the in-memory session and its persisted copy.
func (tm *TokenManager) Clear() {
	tm.mu.Lock()
	tm.session = persistedSession{}
	tm.mu.Unlock()

	os.Remove(tm.path)
}

func (tm *TokenManager) AccessToken() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.session.AccessToken
}

// User returns the cached profile from the last login or refresh.
func (tm *TokenManager) User() *domain.PublicUser {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.session.User
}

func (tm *TokenManager) Register(ctx context.Context, name, email, password string) (*domain.PublicUser, error) {
	return tm.authenticate(ctx, "/api/auth/register", request.SignUpRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
}

func (tm *TokenManager) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	return tm.authenticate(ctx, "/api/auth/login", request.LoginRequest{
		Email:    email,
		Password: password,
	})
}

func (tm *TokenManager) authenticate(ctx context.Context, path string, body any) (*domain.PublicUser, error) {
	var authResp response.AuthResponse

	resp, err := tm.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&authResp).
		Post(path)

	if err != nil {
		return nil, fmt.Errorf("auth request: %w", domain.ErrTransport)
	}

	if resp.IsError() {
		return nil, classifyStatus(resp.StatusCode(), resp.Body())
	}

	if err := tm.setSession(authResp.Data); err != nil {
		return nil, err
	}

	user := authResp.Data.User

	return &user, nil
}

// Refresh exchanges the stored refresh token for a new session. Concurrent
// callers share a single in-flight exchange; everyone observes the same new
// access token or the same failure. On failure the whole session is cleared
// because the backend invalidates refresh tokens on first use.
func (tm *TokenManager) Refresh(ctx context.Context) (string, error) {
	token, err, _ := tm.group.Do("refresh", func() (any, error) {
		tm.mu.RLock()
		refreshToken := tm.session.RefreshToken
		tm.mu.RUnlock()

		if refreshToken == "" {
			return "", domain.ErrUnauthorized
		}

		var authResp response.AuthResponse

		resp, err := tm.http.R().
			SetContext(ctx).
			SetBody(request.RefreshRequest{RefreshToken: refreshToken}).
			SetResult(&authResp).
			Post("/api/auth/refresh")

		if err != nil {
			return "", fmt.Errorf("refresh request: %w", domain.ErrTransport)
		}

		if resp.IsError() {
			tm.Clear()
			return "", domain.ErrUnauthorized
		}

		if err := tm.setSession(authResp.Data); err != nil {
			return "", err
		}

		return authResp.Data.AccessToken, nil
	})

	if err != nil {
		return "", err
	}

	return token.(string), nil
}

func (tm *TokenManager) Logout(ctx context.Context) error {
	accessToken := tm.AccessToken()

	defer tm.Clear()

	if accessToken == "" {
		return nil
	}

	resp, err := tm.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/api/auth/logout")

	if err != nil {
		return fmt.Errorf("logout request: %w", domain.ErrTransport)
	}

	if resp.IsError() && resp.StatusCode() != http.StatusUnauthorized {
		return classifyStatus(resp.StatusCode(), resp.Body())
	}

	return nil
}

func (tm *TokenManager) Profile(ctx context.Context) (*domain.PublicUser, error) {
	var profileResp response.ProfileResponse

	resp, err := tm.http.R().
		SetContext(ctx).
		SetAuthToken(tm.AccessToken()).
		SetResult(&profileResp).
		Get("/api/profile")

	if err != nil {
		return nil, fmt.Errorf("profile request: %w", domain.ErrTransport)
	}

	if resp.IsError() {
		return nil, classifyStatus(resp.StatusCode(), resp.Body())
	}

	tm.mu.Lock()
	user := profileResp.Data
	tm.session.User = &user
	tm.mu.Unlock()

	if err := tm.save(); err != nil {
		return nil, err
	}

	return &user, nil
}

// classifyStatus folds an HTTP failure into the error taxonomy callers
// branch on. They never see raw status codes.
func classifyStatus(status int, body []byte) error {
	var wire response.ErrorResponse

	message := ""
	if err := json.Unmarshal(body, &wire); err == nil {
		message = wire.Message
		if message == "" {
			message = wire.Error
		}
	}

	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrUnauthorized
	case status >= 400 && status < 500:
		if message != "" {
			return fmt.Errorf("%s: %w", message, domain.ErrValidation)
		}
		return domain.ErrValidation
	default:
		return domain.ErrTransport
	}
}
