package main

import (
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/captainbook/internal/adapter/notify"
	"github.com/srgjo27/captainbook/internal/platform/config"
)

func TestNewNotifier_Local(t *testing.T) {
	hub := notify.NewHub(zerolog.Nop(), 8)

	notifier, relay := newNotifier(config.App{NotifyBackend: config.NotifyBackendLocal}, hub, nil, zerolog.Nop())

	assert.Nil(t, relay)
	assert.Same(t, hub, notifier)
}

func TestNewNotifier_Redis(t *testing.T) {
	hub := notify.NewHub(zerolog.Nop(), 8)
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { client.Close() })

	notifier, relay := newNotifier(config.App{NotifyBackend: config.NotifyBackendRedis}, hub, client, zerolog.Nop())

	if assert.NotNil(t, relay) {
		assert.Same(t, relay, notifier)
	}
}
