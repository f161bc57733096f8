package password

import (
	"fmt"
	"strings"
)

// Hasher hashes passwords and verifies them against stored hashes.
// Implementations are safe for concurrent use.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// Rehasher is implemented by hashers that can tell when a stored hash should be upgraded.
type Rehasher interface {
	NeedsRehash(hash string) bool
}

// Algorithm names accepted by Config.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Config selects and tunes the hashing algorithm.
type Config struct {
	Algorithm  string `env:"PASSWORD_HASHER" envDefault:"bcrypt"`
	BcryptCost int    `env:"PASSWORD_BCRYPT_COST" envDefault:"10"`

	Argon2Memory      uint32 `env:"PASSWORD_ARGON2_MEMORY_KB" envDefault:"65536"`
	Argon2Time        uint32 `env:"PASSWORD_ARGON2_TIME" envDefault:"3"`
	Argon2Parallelism uint8  `env:"PASSWORD_ARGON2_PARALLELISM" envDefault:"2"`
}

// New returns the Hasher named by cfg.Algorithm.
func New(cfg Config) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Algorithm)) {
	case "", AlgorithmBcrypt:
		return NewBcrypt(cfg.BcryptCost)
	case AlgorithmArgon2id:
		params := DefaultArgon2Params()
		if cfg.Argon2Memory > 0 {
			params.Memory = cfg.Argon2Memory
		}
		if cfg.Argon2Time > 0 {
			params.Time = cfg.Argon2Time
		}
		if cfg.Argon2Parallelism > 0 {
			params.Parallelism = cfg.Argon2Parallelism
		}
		return NewArgon2id(params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}
}
