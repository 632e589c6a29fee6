package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("free key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX("idem:order:a@x.com:k1", pendingMarker, IdempotencyTTL).SetVal(true)

		id, reserved, err := NewIdempotencyStore(db).Reserve(ctx, "a@x.com:k1")
		require.NoError(t, err)
		assert.True(t, reserved)
		assert.Empty(t, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completed key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX("idem:order:a@x.com:k1", pendingMarker, IdempotencyTTL).SetVal(false)
		mock.ExpectGet("idem:order:a@x.com:k1").SetVal("64b000000000000000000001")

		id, reserved, err := NewIdempotencyStore(db).Reserve(ctx, "a@x.com:k1")
		require.NoError(t, err)
		assert.False(t, reserved)
		assert.Equal(t, "64b000000000000000000001", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("key in flight", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX("idem:order:k", pendingMarker, IdempotencyTTL).SetVal(false)
		mock.ExpectGet("idem:order:k").SetVal(pendingMarker)

		id, reserved, err := NewIdempotencyStore(db).Reserve(ctx, "k")
		require.NoError(t, err)
		assert.False(t, reserved)
		assert.Empty(t, id)
	})

	t.Run("expired between calls", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX("idem:order:k", pendingMarker, IdempotencyTTL).SetVal(false)
		mock.ExpectGet("idem:order:k").RedisNil()

		id, reserved, err := NewIdempotencyStore(db).Reserve(ctx, "k")
		require.NoError(t, err)
		assert.False(t, reserved)
		assert.Empty(t, id)
	})

	t.Run("server error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		boom := errors.New("connection refused")
		mock.ExpectSetNX("idem:order:k", pendingMarker, IdempotencyTTL).SetErr(boom)

		_, _, err := NewIdempotencyStore(db).Reserve(ctx, "k")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}

func TestIdempotencyStore_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites the reservation", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSet("idem:order:k", "order-1", IdempotencyTTL).SetVal("OK")

		require.NoError(t, NewIdempotencyStore(db).Complete(ctx, "k", "order-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("server error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSet("idem:order:k", "order-1", IdempotencyTTL).SetErr(errors.New("READONLY"))

		assert.Error(t, NewIdempotencyStore(db).Complete(ctx, "k", "order-1"))
	})
}

func TestIdempotencyStore_Release(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel("idem:order:k").SetVal(1)

	require.NoError(t, NewIdempotencyStore(db).Release(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Addr: "localhost:6379"}.Enabled())
}
