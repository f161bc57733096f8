package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2ID = "argon2id"

	minArgon2Memory  uint32 = 8 * 1024
	minArgon2Time    uint32 = 1
	minArgon2Threads uint8  = 1
	minArgon2Salt    uint32 = 16
	minArgon2Key     uint32 = 16
)

// Argon2Params are the argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params follows the RFC 9106 second recommended option.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (p Argon2Params) validate() error {
	switch {
	case p.Memory < minArgon2Memory:
		return fmt.Errorf("%w: argon2 memory must be >= %d KiB", ErrInvalidConfig, minArgon2Memory)
	case p.Time < minArgon2Time:
		return fmt.Errorf("%w: argon2 time must be >= %d", ErrInvalidConfig, minArgon2Time)
	case p.Parallelism < minArgon2Threads:
		return fmt.Errorf("%w: argon2 parallelism must be >= %d", ErrInvalidConfig, minArgon2Threads)
	case p.SaltLength < minArgon2Salt:
		return fmt.Errorf("%w: argon2 salt length must be >= %d", ErrInvalidConfig, minArgon2Salt)
	case p.KeyLength < minArgon2Key:
		return fmt.Errorf("%w: argon2 key length must be >= %d", ErrInvalidConfig, minArgon2Key)
	}
	return nil
}

// Argon2id hashes passwords with argon2id and encodes them as PHC strings.
type Argon2id struct {
	params Argon2Params
}

// NewArgon2id validates params and returns a hasher.
func NewArgon2id(params Argon2Params) (*Argon2id, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Argon2id{params: params}, nil
}

// Hash derives a key from password and a fresh random salt.
func (a *Argon2id) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, a.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.params.Time, a.params.Memory, a.params.Parallelism, a.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2ID,
		argon2.Version,
		a.params.Memory,
		a.params.Time,
		a.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters stored in hash and compares
// in constant time. Malformed hashes never verify.
func (a *Argon2id) Verify(hash, password string) bool {
	decoded, err := decodeArgon2(hash)
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), decoded.salt, decoded.params.Time, decoded.params.Memory,
		decoded.params.Parallelism, decoded.params.KeyLength)

	return subtle.ConstantTimeCompare(key, decoded.key) == 1
}

// NeedsRehash reports whether hash uses weaker parameters than a, or cannot be parsed.
func (a *Argon2id) NeedsRehash(hash string) bool {
	decoded, err := decodeArgon2(hash)
	if err != nil {
		return true
	}
	p := decoded.params
	return p.Memory < a.params.Memory ||
		p.Time < a.params.Time ||
		p.Parallelism < a.params.Parallelism ||
		p.KeyLength != a.params.KeyLength
}

type decodedArgon2 struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2(encoded string) (*decodedArgon2, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2ID {
		return nil, ErrMalformedHash
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, ErrMalformedHash
	}
	if v, err := strconv.Atoi(version); err != nil || v != argon2.Version {
		return nil, ErrMalformedHash
	}

	var p Argon2Params
	seen := 0
	for _, kv := range strings.Split(parts[3], ",") {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, ErrMalformedHash
		}
		switch name {
		case "m":
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || uint32(v) < minArgon2Memory {
				return nil, ErrMalformedHash
			}
			p.Memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || uint32(v) < minArgon2Time {
				return nil, ErrMalformedHash
			}
			p.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(raw, 10, 8)
			if err != nil || uint8(v) < minArgon2Threads {
				return nil, ErrMalformedHash
			}
			p.Parallelism = uint8(v)
		default:
			return nil, ErrMalformedHash
		}
		seen++
	}
	if seen != 3 || p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 {
		return nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || uint32(len(salt)) < minArgon2Salt {
		return nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || uint32(len(key)) < minArgon2Key {
		return nil, ErrMalformedHash
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return &decodedArgon2{params: p, salt: salt, key: key}, nil
}
