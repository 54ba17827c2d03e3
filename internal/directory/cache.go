package directory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sps2604/Prosearch-sub001/internal/search"
)

const cacheKeyPrefix = "prosearch:directory:"

// Cached answers repeated queries from Redis for ttl. Failed lookups are
// never stored. Redis errors fall through to the wrapped directory.
type Cached struct {
	next search.Directory
	rdb  *redis.Client
	ttl  time.Duration
	log  *slog.Logger
}

func NewCached(next search.Directory, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Cached {
	if log == nil {
		log = slog.Default()
	}
	return &Cached{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  log.With(slog.String("component", "directory.cache")),
	}
}

// NewRedisClient parses a redis:// or rediss:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (c *Cached) Find(ctx context.Context, q search.Query) ([]search.ProfessionalSummary, error) {
	key, err := cacheKey(q)
	if err != nil {
		return c.next.Find(ctx, q)
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rows []search.ProfessionalSummary
		if json.Unmarshal(raw, &rows) == nil {
			return rows, nil
		}
	case !errors.Is(err, redis.Nil) && ctx.Err() == nil:
		c.log.Warn("cache read failed", slog.String("error", err.Error()))
	}

	rows, err := c.next.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(rows); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil && ctx.Err() == nil {
			c.log.Warn("cache write failed", slog.String("error", err.Error()))
		}
	}
	return rows, nil
}

func cacheKey(q search.Query) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
