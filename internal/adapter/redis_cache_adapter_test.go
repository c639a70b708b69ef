package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"careerpath/internal/domain"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "careerpath:interpretation:result:attempt-1"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal("payload")
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, "payload", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectGet(key).SetErr(redisErr)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "careerpath:section:catalog:all"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(key, "payload", 5*time.Minute).SetVal("OK")
		err := adapter.Set(ctx, key, "payload", 5*time.Minute)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectSet(key, "payload", 5*time.Minute).SetErr(redisErr)
		err := adapter.Set(ctx, key, "payload", 5*time.Minute)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "careerpath:interpretation:result:attempt-1"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		assert.NoError(t, adapter.Delete(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyAbsentIsNotAnError", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(0)
		assert.NoError(t, adapter.Delete(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
