package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

func challengeKey(purpose entity.ChallengePurpose, email string) string {
	return challengeKeyPrefix + purpose.String() + ":" + email
}

// UpsertChallenge writes the challenge, replacing any previous one for the
// same (email, purpose). A replaced challenge starts over: fresh code, fresh
// TTL, attempt count back to zero.
func (c *Cache) UpsertChallenge(ctx context.Context, ch entity.Challenge, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "UpsertChallenge")
	defer func() { c.endSpan(span, err) }()

	ch.Attempts = 0

	raw, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	err = c.mapError(c.client.Set(ctx, challengeKey(ch.Purpose, ch.Email), raw, ttl).Err())
	return err
}

// FindChallenge returns the stored challenge as-is, including one past its
// embedded expiry instant. Callers decide how a lapsed challenge is reported.
func (c *Cache) FindChallenge(ctx context.Context, purpose entity.ChallengePurpose, email string) (out entity.Challenge, err error) {
	ctx, span := c.startSpan(ctx, "FindChallenge")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, challengeKey(purpose, email)).Bytes()
	if err != nil {
		return entity.Challenge{}, c.mapError(err)
	}

	if err = json.Unmarshal(raw, &out); err != nil {
		return entity.Challenge{}, err
	}

	return out, nil
}

// RecordFailedAttempt increments the challenge's attempt counter and returns
// the new count. The increment is a compare-and-set over the whole record:
// a concurrent writer invalidates the transaction and the update is retried,
// so two racing failures never collapse into one.
func (c *Cache) RecordFailedAttempt(ctx context.Context, purpose entity.ChallengePurpose, email string) (attempts int, err error) {
	ctx, span := c.startSpan(ctx, "RecordFailedAttempt")
	defer func() { c.endSpan(span, err) }()

	key := challengeKey(purpose, email)

	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(5*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		txErr := c.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, getErr := tx.Get(ctx, key).Bytes()
			if getErr != nil {
				return getErr
			}

			var ch entity.Challenge
			if getErr = json.Unmarshal(raw, &ch); getErr != nil {
				return getErr
			}

			ch.Attempts++
			attempts = ch.Attempts

			updated, getErr := json.Marshal(ch)
			if getErr != nil {
				return getErr
			}

			_, getErr = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, redis.KeepTTL)
				return nil
			})
			return getErr
		}, key)

		if errors.Is(txErr, redis.TxFailedErr) {
			return retry.RetryableError(txErr)
		}
		return txErr
	})
	if err != nil {
		return 0, c.mapError(err)
	}

	return attempts, nil
}

// InvalidateChallenge destroys the challenge. Deleting a missing key is not
// an error, so invalidation is idempotent.
func (c *Cache) InvalidateChallenge(ctx context.Context, purpose entity.ChallengePurpose, email string) (err error) {
	ctx, span := c.startSpan(ctx, "InvalidateChallenge")
	defer func() { c.endSpan(span, err) }()

	err = c.client.Del(ctx, challengeKey(purpose, email)).Err()
	return err
}
