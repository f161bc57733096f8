package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDirectory is an in-process Directory. Returned users are copies.
type MemoryDirectory struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryDirectory returns an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (d *MemoryDirectory) Create(_ context.Context, email, hashedPassword string) (*User, error) {
	normalized, err := ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if hashedPassword == "" {
		return nil, fmt.Errorf("%w: empty hashed password", ErrInvalidFieldValue)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[normalized]; exists {
		return nil, ErrDuplicateEmail
	}

	u := &User{
		ID:             uuid.NewString(),
		Email:          normalized,
		HashedPassword: hashedPassword,
		CreatedAt:      d.now().UTC(),
	}
	d.users[u.ID] = u
	d.byEmail[normalized] = u.ID

	return u.Clone(), nil
}

func (d *MemoryDirectory) FindBy(_ context.Context, p Predicate) (*User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	switch p.Attr {
	case AttrID:
		if u, ok := d.users[p.Value]; ok {
			return u.Clone(), nil
		}
		return nil, ErrNotFound
	case AttrEmail:
		if id, ok := d.byEmail[NormalizeEmail(p.Value)]; ok {
			return d.users[id].Clone(), nil
		}
		return nil, ErrNotFound
	}

	for _, u := range d.users {
		if p.Match(u) {
			return u.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (d *MemoryDirectory) Update(_ context.Context, id string, fields Fields) error {
	normalized, err := fields.normalize()
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return ErrNotFound
	}

	if email, ok := normalized[FieldEmail].(string); ok && email != u.Email {
		if _, taken := d.byEmail[email]; taken {
			return ErrDuplicateEmail
		}
		delete(d.byEmail, u.Email)
		d.byEmail[email] = u.ID
	}

	normalized.apply(u)
	return nil
}
