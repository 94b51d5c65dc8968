package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

const DefaultRelayChannel = "captainbook:rooms"

var ErrRelayClosed = errors.New("relay subscription closed")

type relayEnvelope struct {
	Room  domain.Room `json:"room"`
	Frame Frame       `json:"frame"`
}

// RedisRelay fans events out to every instance through Redis Pub/Sub. Pub/Sub
// keeps no backlog, so a subscriber that is not connected misses the event.
type RedisRelay struct {
	client  *redis.Client
	hub     *Hub
	channel string
	log     zerolog.Logger
}

func NewRedisRelay(client *redis.Client, hub *Hub, channel string, log zerolog.Logger) *RedisRelay {
	if channel == "" {
		channel = DefaultRelayChannel
	}
	return &RedisRelay{
		client:  client,
		hub:     hub,
		channel: channel,
		log:     log.With().Str("component", "notification_relay").Logger(),
	}
}

func encodeEnvelope(room domain.Room, event domain.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.Kind(), err)
	}
	return json.Marshal(relayEnvelope{Room: room, Frame: Frame{Event: event.Kind(), Data: data}})
}

func (r *RedisRelay) Publish(ctx context.Context, room domain.Room, event domain.Event) error {
	payload, err := encodeEnvelope(room, event)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Run relays messages from the channel into the local hub until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	r.log.Info().Str("channel", r.channel).Msg("relay subscribed")

	return r.consume(ctx, sub.Channel())
}

// consume returns nil once ctx is done and ErrRelayClosed if msgs closes first.
func (r *RedisRelay) consume(ctx context.Context, msgs <-chan *redis.Message) error {
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("relay stopped")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				r.log.Error().Str("channel", r.channel).Msg("relay subscription closed")
				return ErrRelayClosed
			}
			r.handle(msg.Payload)
		}
	}
}

func (r *RedisRelay) handle(payload string) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.log.Warn().Err(err).Msg("skipping malformed relay message")
		return
	}
	frame, err := json.Marshal(env.Frame)
	if err != nil {
		r.log.Warn().Err(err).Msg("skipping unencodable relay frame")
		return
	}
	r.hub.Deliver(env.Room, frame)
}
