package ratelimit

import "time"

// Config sets the login throttle. A zero Limit disables it.
type Config struct {
	Limit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	Window time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
	Prefix string        `env:"LOGIN_RATE_REDIS_PREFIX" envDefault:"ratelimit:"`
}

func (c Config) Enabled() bool {
	return c.Limit > 0 && c.Window > 0
}
