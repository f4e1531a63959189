package ports

import "context"

// IdempotencyStore remembers which entity a client-supplied Idempotency-Key
// produced, so a retried create returns the original entity.
type IdempotencyStore interface {
	// Lookup returns the entity ID remembered for scope/key, if any.
	Lookup(ctx context.Context, scope, key string) (id string, found bool, err error)
	Remember(ctx context.Context, scope, key, id string) error
}
