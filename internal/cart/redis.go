package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Les paniers dorment 30 jours dans Redis avant d'expirer, comme un panier
// abandonné en boutique.
const cartTTL = 30 * 24 * time.Hour

// RedisKV branche le panier sur Redis : la clé porte le tableau JSON, le
// canal pub/sub du même nom porte les signaux "updated"/"cleared" que les
// autres onglets écoutent via le WebSocket.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // clé absente = panier jamais sauvegardé
	}
	return data, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, cartTTL).Err()
}

func (r *RedisKV) Publish(ctx context.Context, key, payload string) error {
	return r.client.Publish(ctx, key, payload).Err()
}

func (r *RedisKV) Subscribe(ctx context.Context, key string) (<-chan string, func()) {
	pubsub := r.client.Subscribe(ctx, key)
	out := make(chan string)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { pubsub.Close() }
}
