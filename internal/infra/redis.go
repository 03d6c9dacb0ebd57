package infra

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// NotificacionesChannel is the pub/sub channel the real-time delivery sidecar
// subscribes to.
const NotificacionesChannel = "notificaciones:events"

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// PublishJSON marshals payload and publishes it on the given channel.
func PublishJSON(ctx context.Context, rdb *redis.Client, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, channel, data).Err()
}
