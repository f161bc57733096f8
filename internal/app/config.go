package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/ratelimit"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Strategy kinds accepted by AUTH_TYPE.
const (
	AuthNone       = "none"
	AuthBasic      = "basic"
	AuthSession    = "session"
	AuthSessionExp = "session_exp"
	AuthSessionDB  = "session_db"
)

// Directory kinds accepted by USER_DIRECTORY.
const (
	DirectoryMemory   = "memory"
	DirectoryPostgres = "postgres"
)

// Config is the process configuration. Connection settings for Postgres,
// Redis, Mongo and S3 are loaded only when the chosen components need them.
type Config struct {
	AuthType      string   `env:"AUTH_TYPE" envDefault:"session"`
	UserDirectory string   `env:"USER_DIRECTORY" envDefault:"memory"`
	ExcludedPaths []string `env:"AUTH_EXCLUDED_PATHS" envSeparator:","`
	AutoMigrate   bool     `env:"PG_AUTO_MIGRATE" envDefault:"false"`
	ProxyHeaders  []string `env:"CLIENT_IP_HEADERS" envSeparator:","`

	Session   session.Config
	Password  password.Config
	Log       logger.Config
	HTTP      httpserver.Config
	Email     email.Config
	RateLimit ratelimit.Config
}

// Validate normalises enum values and rejects unknown ones.
func (c *Config) Validate() error {
	c.AuthType = strings.ToLower(strings.TrimSpace(c.AuthType))
	if c.AuthType == "" {
		c.AuthType = AuthNone
	}
	if !slices.Contains([]string{AuthNone, AuthBasic, AuthSession, AuthSessionExp, AuthSessionDB}, c.AuthType) {
		return fmt.Errorf("%w: AUTH_TYPE %q", ErrInvalidConfig, c.AuthType)
	}

	c.UserDirectory = strings.ToLower(strings.TrimSpace(c.UserDirectory))
	if c.UserDirectory == "" {
		c.UserDirectory = DirectoryMemory
	}
	if c.UserDirectory != DirectoryMemory && c.UserDirectory != DirectoryPostgres {
		return fmt.Errorf("%w: USER_DIRECTORY %q", ErrInvalidConfig, c.UserDirectory)
	}

	if c.Session.Duration < 0 {
		c.Session.Duration = 0
	}
	return nil
}

// needsPostgres reports whether any component stores data in Postgres.
func (c Config) needsPostgres() bool {
	return c.UserDirectory == DirectoryPostgres ||
		(c.AuthType == AuthSessionDB && strings.EqualFold(c.Session.Backend, session.BackendPostgres))
}

func (c Config) backend() string {
	if c.AuthType != AuthSessionDB {
		return ""
	}
	return strings.ToLower(c.Session.Backend)
}
