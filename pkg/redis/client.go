package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps the Redis connection.
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis with retry.
func NewClient(addr string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err == nil {
			cancel()
			log.Println("Connected to Redis")
			return &Client{rdb: rdb}, nil
		}
		cancel()
		log.Printf("Waiting for Redis... (%d/20)", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("redis: failed to connect after 20 attempts")
}

// Allow implements a fixed-window rate limit: at most limit calls per window
// for the given key. The first call in a window sets the expiry.
func (c *Client) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close tears down the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }
