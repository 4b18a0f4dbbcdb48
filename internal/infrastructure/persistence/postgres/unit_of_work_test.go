package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopTx satisfies pgx.Tx so retry logic can run without a database: a
// context carrying it makes Execute join the "existing transaction" path.
type noopTx struct{}

func (noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return noopTx{}, nil }
func (noopTx) Commit(ctx context.Context) error          { return nil }
func (noopTx) Rollback(ctx context.Context) error        { return nil }
func (noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (noopTx) Conn() *pgx.Conn                                               { return nil }

func txContext() context.Context {
	return injectTx(context.Background(), noopTx{})
}

func TestExecuteWithRetry_RetriesSerializationFailures(t *testing.T) {
	uow := NewUnitOfWork(nil)

	attempts := 0
	err := uow.ExecuteWithRetry(txContext(), 3, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: pgSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_StopsOnNonRetryableError(t *testing.T) {
	uow := NewUnitOfWork(nil)
	wantErr := &pgconn.PgError{Code: pgUniqueViolation}

	attempts := 0
	err := uow.ExecuteWithRetry(txContext(), 3, func(context.Context) error {
		attempts++
		return wantErr
	})

	assert.Equal(t, 1, attempts, "constraint violations must not be retried")
	assert.Equal(t, error(wantErr), err)
}

func TestExecuteWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	uow := NewUnitOfWork(nil)

	attempts := 0
	err := uow.ExecuteWithRetry(txContext(), 2, func(context.Context) error {
		attempts++
		return &pgconn.PgError{Code: pgDeadlockDetected}
	})

	assert.Equal(t, 3, attempts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
}

func TestExecuteWithRetry_ZeroMeansSingleAttempt(t *testing.T) {
	uow := NewUnitOfWork(nil)

	attempts := 0
	err := uow.ExecuteWithRetry(txContext(), 0, func(context.Context) error {
		attempts++
		return &pgconn.PgError{Code: pgSerializationFailure}
	})

	assert.Equal(t, 1, attempts)
	require.Error(t, err)
}

func TestIsRetryableError_Classification(t *testing.T) {
	assert.True(t, isRetryableError(&pgconn.PgError{Code: pgSerializationFailure}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: pgDeadlockDetected}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "08006"}), "connection failures are retryable")
	assert.True(t,
		isRetryableError(fmt.Errorf("failed to exec: %w", &pgconn.PgError{Code: pgDeadlockDetected})),
		"classification must see through error wrapping")

	assert.False(t, isRetryableError(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isRetryableError(errors.New("plain error")))
	assert.False(t, isRetryableError(nil))
}
