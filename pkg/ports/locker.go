package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a previously acquired session lock.
type UnlockFunc func(ctx context.Context) error

// SessionLocker coordinates exclusive access to a session across
// processes, so two simulators cannot interleave writes to the same
// saved machine state.
type SessionLocker interface {
	// Lock acquires the lock for the given session ID. It blocks until
	// the lock is acquired or the context is canceled. The TTL bounds
	// how long a crashed holder can keep the lock. The returned
	// UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, sessionID string, ttl time.Duration) (UnlockFunc, error)
}
