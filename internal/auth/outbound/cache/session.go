package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

func sessionKey(tokenHash string) string {
	return sessionKeyPrefix + tokenHash
}

func sessionUserKey(userID int64) string {
	return sessionUserKeyPrefix + strconv.FormatInt(userID, 10)
}

// CreateSession stores the session keyed by its token hash and indexes it
// under the owning user, so one user can hold many live sessions. The index
// set keeps the longest remaining session TTL.
func (c *Cache) CreateSession(ctx context.Context, session entity.Session) (err error) {
	ctx, span := c.startSpan(ctx, "CreateSession")
	defer func() { c.endSpan(span, err) }()

	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := session.ExpiresAt.Sub(c.clock.Now())
	if ttl <= 0 {
		return goerror.NewBusiness("session already expired", goerror.CodeInvalidInput)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.TokenHash), raw, ttl)
		pipe.SAdd(ctx, sessionUserKey(session.UserID), session.TokenHash)
		pipe.Expire(ctx, sessionUserKey(session.UserID), ttl)
		return nil
	})
	return err
}

// FindActiveSession returns the session for the token hash only while it is
// both unrevoked and unexpired.
func (c *Cache) FindActiveSession(ctx context.Context, tokenHash string) (out entity.Session, err error) {
	ctx, span := c.startSpan(ctx, "FindActiveSession")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		return entity.Session{}, c.mapError(err)
	}

	if err = json.Unmarshal(raw, &out); err != nil {
		return entity.Session{}, err
	}

	if !out.Usable(c.clock.Now()) {
		return entity.Session{}, goerror.ErrNotFound
	}

	return out, nil
}

// DeactivateSession revokes the session while leaving the record (and its
// TTL) in place. A missing or already revoked session is a no-op.
func (c *Cache) DeactivateSession(ctx context.Context, tokenHash string) (err error) {
	ctx, span := c.startSpan(ctx, "DeactivateSession")
	defer func() { c.endSpan(span, err) }()

	key := sessionKey(tokenHash)

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	var session entity.Session
	if err = json.Unmarshal(raw, &session); err != nil {
		return err
	}

	if !session.Active {
		return nil
	}

	session.Active = false

	updated, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = c.client.Set(ctx, key, updated, redis.KeepTTL).Err()
	return err
}

// DeactivateUserSessions revokes every live session the user holds.
func (c *Cache) DeactivateUserSessions(ctx context.Context, userID int64) (err error) {
	ctx, span := c.startSpan(ctx, "DeactivateUserSessions")
	defer func() { c.endSpan(span, err) }()

	hashes, err := c.client.SMembers(ctx, sessionUserKey(userID)).Result()
	if err != nil {
		return c.mapError(err)
	}

	for _, hash := range lo.Uniq(hashes) {
		if err = c.DeactivateSession(ctx, hash); err != nil {
			return err
		}
	}

	err = c.client.Del(ctx, sessionUserKey(userID)).Err()
	return err
}
