package cache

import (
	"context"
	"errors"
	"strconv"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
	"memoapp/pkg/auth"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	cache port.CacheRepository
}

// NewSessionRepository stores refresh sessions on top of whichever cache
// backend is configured (redis in production, in-process otherwise).
func NewSessionRepository(cache port.CacheRepository) port.SessionRepository {
	return &sessionRepository{cache: cache}
}

func (sr *sessionRepository) Put(ctx context.Context, sessionID string, userID int) error {
	value := []byte(strconv.Itoa(userID))

	return sr.cache.Set(ctx, sessionKeyPrefix+sessionID, value, auth.RefreshTokenTTL)
}

// Take consumes the session: a refresh token can be redeemed once.
func (sr *sessionRepository) Take(ctx context.Context, sessionID string) (int, bool, error) {
	key := sessionKeyPrefix + sessionID

	value, err := sr.cache.Get(ctx, key)

	if errors.Is(err, domain.ErrNotFound) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	if err := sr.cache.Delete(ctx, key); err != nil {
		return 0, false, err
	}

	userID, err := strconv.Atoi(string(value))

	if err != nil {
		return 0, false, err
	}

	return userID, true, nil
}

func (sr *sessionRepository) Revoke(ctx context.Context, sessionID string) error {
	return sr.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
