package ports

import "context"

// UnitOfWork runs a function inside one transaction scope. The function
// receives a derived context that repositories recognize; returning nil
// commits, returning an error rolls back.
//
// ExecuteWithRetry reruns the whole transaction on transient conflicts
// (deadlocks, serialization failures, dropped connections), up to
// maxRetries extra attempts. The function must be safe to rerun from
// scratch: every prior attempt was rolled back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error
	ExecuteWithRetry(ctx context.Context, maxRetries int, fn func(txCtx context.Context) error) error
}
