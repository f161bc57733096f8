package user

import (
	"fmt"
	"maps"
	"slices"
)

// Updatable attributes. FieldSessionID and FieldResetToken accept nil to clear.
const (
	FieldEmail          = "email"
	FieldHashedPassword = "hashed_password"
	FieldSessionID      = "session_id"
	FieldResetToken     = "reset_token"
)

// Fields maps attribute names to new values.
type Fields map[string]any

// Keys returns the field names in a stable order.
func (f Fields) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// normalize validates every entry and returns a copy with values coerced to
// string (required attributes) or *string (optional attributes).
func (f Fields) normalize() (Fields, error) {
	out := make(Fields, len(f))
	for _, key := range f.Keys() {
		val := f[key]
		switch key {
		case FieldEmail:
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidFieldValue, key)
			}
			email, err := ValidateEmail(s)
			if err != nil {
				return nil, err
			}
			out[key] = email
		case FieldHashedPassword:
			s, ok := val.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidFieldValue, key)
			}
			out[key] = s
		case FieldSessionID, FieldResetToken:
			s, err := optionalString(val)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFieldValue, key, err)
			}
			out[key] = s
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
	}
	return out, nil
}

func optionalString(v any) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &s, nil
	case *string:
		return cloneString(s), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// apply writes already normalised fields onto u.
func (f Fields) apply(u *User) {
	for key, val := range f {
		switch key {
		case FieldEmail:
			u.Email = val.(string)
		case FieldHashedPassword:
			u.HashedPassword = val.(string)
		case FieldSessionID:
			u.SessionID = val.(*string)
		case FieldResetToken:
			u.ResetToken = val.(*string)
		}
	}
}
