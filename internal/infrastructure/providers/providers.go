package providers

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/unmatchedlines/internal/config"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/database"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/gateway"
	"github.com/sahzadahmad246/unmatchedlines/internal/usecase"
)

// NewDatabase opens a Postgres connection using the configured DSN.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	return database.NewPostgres(conf.PostgresDsn)
}

// MigrateDatabase applies migrations for the application models.
func MigrateDatabase(db *gorm.DB) error {
	return database.MigratePostgres(db)
}

// NewRedis creates the pub/sub client for engagement events.
func NewRedis(conf config.Server) *redis.Client {
	return database.NewRedis(conf.RedisAddr, "", conf.RedisDB)
}

// NewMemcache creates the slug index cache client.
func NewMemcache(addr string) *memcache.Client {
	return database.NewMemcached(addr)
}

// NewContentMetaGateway wraps the metadata source in the curation cache.
func NewContentMetaGateway(source usecase.ContentMetaGateway) *gateway.ContentMetaGateway {
	return gateway.NewContentMetaGateway(source)
}
