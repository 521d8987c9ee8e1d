package postgres_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/phonetics-backend/internal/adapter/postgres"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO words`).
		WithArgs("hello").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, mock)
		_, execErr := q.Exec(ctx, `INSERT INTO words (text_normalized) VALUES ($1)`, "hello")
		return execErr
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := postgres.NewTxManager(mock)
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(_ context.Context) error {
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := postgres.NewTxManager(mock)

	defer func() {
		r := recover()
		require.Equal(t, "test panic", r)
		assert.NoError(t, mock.ExpectationsWereMet())
	}()

	_ = tm.RunInTx(context.Background(), func(_ context.Context) error {
		panic("test panic")
	})
}

func TestRunInTx_BeginFailure(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	tm := postgres.NewTxManager(mock)

	called := false
	err := tm.RunInTx(context.Background(), func(_ context.Context) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}

func TestRunInTx_CommitFailure(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	tm := postgres.NewTxManager(mock)

	err := tm.RunInTx(context.Background(), func(_ context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit transaction")
}

func TestQuerierFromCtx_NoTxReturnsHandle(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)

	q := postgres.QuerierFromCtx(context.Background(), mock)

	assert.Equal(t, postgres.Querier(mock), q)
}
