package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"livestock/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "livestock.events"

// RedisPublisher sends each event as a JSON message on a pub/sub channel.
// Subscribers that are not connected miss the message.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// NewRedisClient opens a client for addr. The connection is established lazily.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (p *RedisPublisher) Channel() string { return p.channel }

// Publish keeps going after a failed event and returns every failure joined.
func (p *RedisPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errList []error
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			errList = append(errList, fmt.Errorf("encode %s: %w", e.EventName(), err))
			continue
		}
		if err = p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			errList = append(errList, fmt.Errorf("publish %s: %w", e.EventName(), err))
		}
	}
	return errors.Join(errList...)
}
