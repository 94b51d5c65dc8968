package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/captainbook/internal/adapter/repository/redis"
)

func TestTokenBlacklist_Revoke(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	blacklist := redis.NewTokenBlacklist(db)

	mockRedis.ExpectSet("blacklist:token:abc", 1, time.Hour).SetVal("OK")

	err := blacklist.Revoke(context.Background(), "abc", time.Hour)

	assert.NoError(t, err)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestTokenBlacklist_IsRevoked(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	blacklist := redis.NewTokenBlacklist(db)

	mockRedis.ExpectExists("blacklist:token:abc").SetVal(1)
	mockRedis.ExpectExists("blacklist:token:def").SetVal(0)

	revoked, err := blacklist.IsRevoked(context.Background(), "abc")
	assert.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsRevoked(context.Background(), "def")
	assert.NoError(t, err)
	assert.False(t, revoked)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestTokenBlacklist_IsRevoked_RedisDown(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	blacklist := redis.NewTokenBlacklist(db)

	mockRedis.ExpectExists("blacklist:token:abc").SetErr(errors.New("connection refused"))

	_, err := blacklist.IsRevoked(context.Background(), "abc")

	assert.Error(t, err)
}
