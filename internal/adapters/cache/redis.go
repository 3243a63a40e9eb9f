package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis connection defaults.
const (
	redisDialTimeout  = 5 * time.Second
	redisReadTimeout  = 3 * time.Second
	redisWriteTimeout = 3 * time.Second
	redisPingTimeout  = 5 * time.Second
)

// RedisStore shares fetched rows between dashboard replicas.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a client and pings it so a bad address fails at startup.
func NewRedisClient(ctx context.Context, o RedisOptions) (*redis.Client, error) {
	if o.Addr == "" {
		return nil, errors.New("no Redis address provided")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisReadTimeout,
		WriteTimeout: redisWriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", o.Addr, err)
	}
	return rdb, nil
}

// NewRedisStore stores rows under prefix + "rows:" + spreadsheet + ":" + range.
func NewRedisStore(client redis.UniversalClient, prefix, spreadsheetID, rangeName string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    RowsKey(prefix, spreadsheetID, rangeName),
		ttl:    ttl,
	}
}

// RowsKey builds the Redis key for one spreadsheet range.
func RowsKey(prefix, spreadsheetID, rangeName string) string {
	return prefix + "rows:" + spreadsheetID + ":" + rangeName
}

// Name implements Store.
func (s *RedisStore) Name() string { return "redis" }

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context) ([][]string, bool, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheRead, err)
	}
	var rows [][]string
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, false, fmt.Errorf("%w: decode %s: %w", ErrCacheRead, s.key, err)
	}
	return rows, true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, rows [][]string) error {
	if rows == nil {
		rows = [][]string{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrCacheWrite, err)
	}
	if err := s.client.Set(ctx, s.key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
