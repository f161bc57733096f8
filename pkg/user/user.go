package user

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// User is an account known to a Directory.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	SessionID      *string   `json:"-"`
	ResetToken     *string   `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Clone returns a deep copy so callers cannot mutate directory state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.SessionID = cloneString(u.SessionID)
	c.ResetToken = cloneString(u.ResetToken)
	return &c
}

// Directory looks up and mutates user accounts.
type Directory interface {
	// Create stores a new account. The email must not already be registered.
	Create(ctx context.Context, email, hashedPassword string) (*User, error)
	// FindBy returns the single account matching p, or ErrNotFound.
	FindBy(ctx context.Context, p Predicate) (*User, error)
	// Update applies fields to the account with the given id.
	Update(ctx context.Context, id string, fields Fields) error
}

var emailFolder = cases.Fold()

// NormalizeEmail trims, NFC-normalises and case-folds an address.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = norm.NFC.String(email)
	return emailFolder.String(email)
}

// ValidateEmail normalises email and checks that it is a bare address.
func ValidateEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
