// Package redisbus fans day invalidations out to every API instance over Redis pub/sub.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
	"github.com/redis/go-redis/v9"
)

// Channel carries JSON encoded timesheet.DayInvalidated messages
const Channel = "timesheet:invalidations"

type Bus struct {
	client *redis.Client
}

// New connects to Redis and checks the connection.
func New(ctx context.Context, cfg config.RedisConfig) (*Bus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return &Bus{client: client}, nil
}

// Publish implements timesheet.InvalidationBus.
func (b *Bus) Publish(ctx context.Context, msg timesheet.DayInvalidated) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode invalidation: %w", err)
	}
	if err := b.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}
	return nil
}

// Listen delivers every message on Channel to apply until ctx is done.
func (b *Bus) Listen(ctx context.Context, apply func(timesheet.DayInvalidated)) {
	sub := b.client.Subscribe(ctx, Channel)
	defer sub.Close()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-messages:
			if !ok {
				return
			}
			msg, err := Decode(m.Payload)
			if err != nil {
				slog.Warn("Dropping malformed invalidation", "payload", m.Payload, "error", err)
				continue
			}
			apply(msg)
		}
	}
}

// Decode parses one channel payload.
func Decode(payload string) (timesheet.DayInvalidated, error) {
	var msg timesheet.DayInvalidated
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return timesheet.DayInvalidated{}, err
	}
	return msg, nil
}

func (b *Bus) Close() error {
	return b.client.Close()
}
