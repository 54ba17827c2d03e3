package directory

import (
	"log/slog"

	"github.com/sps2604/Prosearch-sub001/internal/config"
	"github.com/sps2604/Prosearch-sub001/internal/search"
	"gorm.io/gorm"
)

// Open builds the configured directory backend, wrapped in the Redis cache
// when cfg.CacheEnabled. db is only used by the database backend. The
// returned func releases the cache connection.
func Open(cfg config.Config, db *gorm.DB, log *slog.Logger) (search.Directory, func() error, error) {
	var dir search.Directory
	switch cfg.DirectoryBackend {
	case config.BackendREST:
		dir = NewRESTClient(cfg.DirectoryURL, cfg.DirectoryTable, cfg.DirectoryAPIKey, log)
	default:
		dir = NewRepository(db, log)
	}

	if !cfg.CacheEnabled() {
		return dir, func() error { return nil }, nil
	}
	rdb, err := NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return NewCached(dir, rdb, cfg.SearchCacheTTL, log), rdb.Close, nil
}
