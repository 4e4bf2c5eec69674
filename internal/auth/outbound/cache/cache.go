// Package cache is the Redis-backed store for short-lived auth state:
// pending verification challenges and refresh-token sessions. Both kinds of
// record carry a Redis TTL so abandoned state cleans itself up.
package cache

import (
	"context"
	"errors"

	"github.com/intelliverse/intelliverse/internal/pkg/clock"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	challengeKeyPrefix   = "auth:otp:"
	sessionKeyPrefix     = "auth:session:"
	sessionUserKeyPrefix = "auth:sessions:user:"
)

type Cache struct {
	client *redis.Client
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, clk clock.Clocker, ins instrument.Instrumentation) *Cache {
	return &Cache{
		client: client,
		clock:  clk,
		ins:    ins,
	}
}

func (c *Cache) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return goerror.ErrNotFound
	}

	return err
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("auth.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
