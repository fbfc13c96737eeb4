// Package facade decorates the ERP and label registry clients with a TTL
// cache, in-flight de-duplication and jittered retries of transient
// failures.
package facade

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shopfloor/internal/pkg/cache"
	"shopfloor/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const tracerName = "shopfloor/adapters/out/facade"

// Policy is how long a resource is cached and how often a transient
// failure is retried. Timeout bounds the shared fetch, retries included;
// zero leaves it to the client's per-call timeout.
type Policy struct {
	TTL     time.Duration
	Retries uint64
	Timeout time.Duration
}

// RetryConfig shapes the exponential backoff between retries.
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{InitialInterval: 200 * time.Millisecond, MaxInterval: 2 * time.Second}
}

// loader is shared by the ERP and label registry decorators.
type loader struct {
	system string
	store  cache.Store
	group  singleflight.Group
	retry  RetryConfig
	tracer trace.Tracer
	log    zerolog.Logger
}

func newLoader(system string, store cache.Store, retry RetryConfig, log zerolog.Logger) *loader {
	if retry.InitialInterval <= 0 {
		retry = DefaultRetryConfig()
	}
	return &loader{
		system: system,
		store:  store,
		retry:  retry,
		tracer: otel.Tracer(tracerName),
		log:    log.With().Str("component", "facade").Str("system", system).Logger(),
	}
}

// load returns the cached value for key or calls fetch once per key across
// concurrent callers, retrying transient failures according to p.
//
// The shared fetch runs detached from any single caller's cancellation, so a
// caller that gives up only stops waiting; the others still get the result.
func load[T any](ctx context.Context, l *loader, operation, key string, p Policy, fetch func(context.Context) (T, error)) (T, error) {
	ctx, span := l.tracer.Start(ctx, l.system+"."+operation, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	var zero T
	if v, ok := lookup[T](ctx, l, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return v, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	results := l.group.DoChan(key, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if p.Timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, p.Timeout)
			defer cancel()
		}

		v, err := l.fetchWithRetry(fetchCtx, operation, p.Retries, func(ctx context.Context) (any, error) {
			return fetch(ctx)
		})
		if err != nil {
			return nil, err
		}
		l.remember(fetchCtx, key, v, p.TTL)
		return v, nil
	})

	select {
	case <-ctx.Done():
		err := ctx.Err()
		span.RecordError(err)
		span.SetStatus(codes.Error, operation+" abandoned")
		return zero, err
	case res := <-results:
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, operation+" failed")
			return zero, res.Err
		}
		span.SetAttributes(attribute.Bool("shared", res.Shared))
		return res.Val.(T), nil
	}
}

func lookup[T any](ctx context.Context, l *loader, key string) (T, bool) {
	var v T
	raw, err := l.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("cache entry is corrupt")
		return v, false
	}
	return v, true
}

func (l *loader) remember(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := l.store.Set(ctx, key, raw, ttl); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (l *loader) fetchWithRetry(ctx context.Context, operation string, retries uint64, fetch func(context.Context) (any, error)) (any, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = l.retry.InitialInterval
	policy.MaxInterval = l.retry.MaxInterval
	policy.MaxElapsedTime = 0

	attempt := 0
	return backoff.RetryWithData(func() (any, error) {
		attempt++
		v, err := fetch(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, errs.ErrExternalTransient) {
			return nil, backoff.Permanent(err)
		}
		l.log.Debug().Err(err).Str("operation", operation).Int("attempt", attempt).Msg("transient failure")
		return nil, err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx))
}
