// Package kvclient wraps the Redis connection backing the transaction
// store (spec.md §4.2).
package kvclient

import (
	"context"
	"time"

	"acs/pkg/logger"
	"acs/pkg/model"
	"acs/pkg/trace"

	"github.com/redis/go-redis/v9"
)

// StatusProbe reports the health of the backing store.
type StatusProbe struct {
	Name          string
	Healthy       bool
	Message       string
	LastCheckedTS time.Time
}

// Client holds the kv object
type Client struct {
	RedisClient *redis.Client
	cfg         *model.Cfg
	log         *logger.Log
	tp          *trace.Tracer

	nextCheck      time.Time
	previousResult *StatusProbe
}

// New creates a new instance of kv
func New(ctx context.Context, cfg *model.Cfg, tracer *trace.Tracer, log *logger.Log) (*Client, error) {
	c := &Client{
		cfg: cfg,
		log: log,
		tp:  tracer,
	}

	c.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Common.KeyValue.Addr,
		Password: cfg.Common.KeyValue.Password,
		DB:       cfg.Common.KeyValue.DB,
		PoolSize: cfg.Common.KeyValue.PoolSize,
	})

	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	c.log.Info("Started")

	return c, nil
}

// Status returns the status of the database, caching the result for 10s.
func (c *Client) Status(ctx context.Context) *StatusProbe {
	if time.Now().Before(c.nextCheck) {
		return c.previousResult
	}
	probe := &StatusProbe{
		Name:          "kv",
		Healthy:       true,
		Message:       "OK",
		LastCheckedTS: time.Now(),
	}

	if _, err := c.RedisClient.Ping(ctx).Result(); err != nil {
		probe.Message = err.Error()
		probe.Healthy = false
	}
	c.previousResult = probe
	c.nextCheck = time.Now().Add(time.Second * 10)

	return probe
}

// Close closes the connection to the database
func (c *Client) Close(ctx context.Context) error {
	return c.RedisClient.Close()
}
