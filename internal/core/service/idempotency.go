package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/usertask-service/internal/core/ports"
)

const (
	scopeUser = "user"
	scopeTask = "task"
)

// idempotencyGuard wraps an optional IdempotencyStore. Store failures are
// logged and treated as a miss so they never fail the create itself.
type idempotencyGuard struct {
	store ports.IdempotencyStore
	log   zerolog.Logger
}

func (g idempotencyGuard) lookup(ctx context.Context, scope, key string) (string, bool) {
	if g.store == nil || key == "" {
		return "", false
	}
	id, found, err := g.store.Lookup(ctx, scope, key)
	if err != nil {
		g.log.Warn().Err(err).Str("scope", scope).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return "", false
	}
	return id, found
}

func (g idempotencyGuard) remember(ctx context.Context, scope, key, id string) {
	if g.store == nil || key == "" {
		return
	}
	if err := g.store.Remember(ctx, scope, key, id); err != nil {
		g.log.Warn().Err(err).Str("scope", scope).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}
