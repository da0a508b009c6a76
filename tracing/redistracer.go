package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracer publishes every entry to a Redis channel and keeps the latest
// step of each sign in a hash, so that tools outside the simulation can
// follow the ICs.
//
// Keys and channels are namespaced:
//
//	{namespace}:ic_events     channel, one JSON entry per message
//	{namespace}:ic:{location} hash with the latest kind, ic, tick and detail
type RedisTracer struct {
	rdb       *redis.Client
	namespace string
	timeout   time.Duration
	logger    *log.Logger

	mu       sync.Mutex
	failures uint64
}

// NewRedisTracer connects a tracer to Redis. The namespace must not be
// empty.
func NewRedisTracer(
	opts *redis.Options,
	namespace string,
	logger *log.Logger,
) (*RedisTracer, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}

	if logger == nil {
		logger = log.New(os.Stderr, "[redis] ", log.LstdFlags)
	}

	t := &RedisTracer{
		rdb:       redis.NewClient(opts),
		namespace: namespace,
		timeout:   time.Second,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if err := t.rdb.Ping(ctx).Err(); err != nil {
		t.rdb.Close()
		return nil, fmt.Errorf("failed to reach Redis at %s: %w", opts.Addr, err)
	}

	return t, nil
}

// Channel returns the channel the entries are published to.
func (t *RedisTracer) Channel() string {
	return t.namespace + ":ic_events"
}

// StateKey returns the hash that holds the latest step at a location.
func (t *RedisTracer) StateKey(location string) string {
	return t.namespace + ":ic:" + location
}

// Collect publishes the entry. Failures are logged and counted, and never
// stop the simulation.
func (t *RedisTracer) Collect(entry Entry) {
	if err := t.publish(entry); err != nil {
		t.mu.Lock()
		t.failures++
		t.mu.Unlock()

		t.logger.Printf("failed to publish %s at %s: %v",
			entry.Kind, entry.Location, err)
	}
}

func (t *RedisTracer) publish(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if entry.Location != "" {
		err = t.rdb.HSet(ctx, t.StateKey(entry.Location), map[string]any{
			"kind":   entry.Kind,
			"ic":     entry.IC,
			"tick":   strconv.FormatUint(uint64(entry.Tick), 10),
			"detail": entry.Detail,
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to write state: %w", err)
		}
	}

	if err := t.rdb.Publish(ctx, t.Channel(), data).Err(); err != nil {
		return fmt.Errorf("failed to publish entry: %w", err)
	}

	return nil
}

// Failures returns how many entries could not be published.
func (t *RedisTracer) Failures() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.failures
}

// Close closes the connection.
func (t *RedisTracer) Close() error {
	return t.rdb.Close()
}
