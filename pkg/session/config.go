package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Backend kinds accepted by SESSION_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendS3       = "s3"
)

// Config holds session settings.
type Config struct {
	// Name is the session cookie name.
	Name string `env:"SESSION_NAME" envDefault:"_my_session_id"`

	// Duration is the session lifetime in seconds. Zero or less never expires.
	Duration int `env:"SESSION_DURATION" envDefault:"0"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	Backend  string `env:"SESSION_BACKEND" envDefault:"file"`
	FilePath string `env:"SESSION_FILE_PATH" envDefault:".db_UserSession.yaml"`

	RedisPrefix string        `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
	RedisKeyTTL time.Duration `env:"SESSION_REDIS_KEY_TTL" envDefault:"0s"`

	MongoCollection string `env:"SESSION_MONGO_COLLECTION" envDefault:"user_sessions"`

	RetryAttempts uint          `env:"SESSION_BACKEND_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"SESSION_BACKEND_RETRY_INTERVAL" envDefault:"50ms"`

	S3 S3Config
}

// TTL converts Duration to a time.Duration.
func (c Config) TTL() time.Duration {
	if c.Duration <= 0 {
		return 0
	}
	return time.Duration(c.Duration) * time.Second
}

// Clients carries the connections a backend may need. Only the one matching
// Config.Backend has to be set.
type Clients struct {
	Postgres *pgxpool.Pool
	Redis    redis.Cmdable
	Mongo    *mongo.Database
	S3       S3Client
}

// NewBackend builds the durable backend named by cfg.Backend.
func NewBackend(ctx context.Context, cfg Config, clients Clients) (Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileBackend(cfg.FilePath), nil
	case BackendPostgres:
		if clients.Postgres == nil {
			return nil, fmt.Errorf("%w: postgres", ErrBackendNotConfigured)
		}
		return NewPostgresBackend(clients.Postgres), nil
	case BackendRedis:
		if clients.Redis == nil {
			return nil, fmt.Errorf("%w: redis", ErrBackendNotConfigured)
		}
		return NewRedisBackend(clients.Redis, WithRedisPrefix(cfg.RedisPrefix), WithRedisKeyTTL(cfg.RedisKeyTTL)), nil
	case BackendMongo:
		if clients.Mongo == nil {
			return nil, fmt.Errorf("%w: mongo", ErrBackendNotConfigured)
		}
		return NewMongoBackend(ctx, clients.Mongo, cfg.MongoCollection)
	case BackendS3:
		if clients.S3 == nil {
			return nil, fmt.Errorf("%w: s3", ErrBackendNotConfigured)
		}
		return NewS3Backend(clients.S3, cfg.S3.Bucket, cfg.S3.Prefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// StoreOptions returns the retry and logging options implied by cfg.
func (c Config) StoreOptions(log *slog.Logger) []Option {
	return []Option{
		WithRetry(c.RetryAttempts, c.RetryInterval),
		WithLogger(log),
	}
}
