package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/user"
)

func testHasher(t *testing.T) password.Hasher {
	t.Helper()
	h, err := password.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func seedUser(t *testing.T, dir user.Directory, h password.Hasher, email, pass string) *user.User {
	t.Helper()
	hash, err := h.Hash(pass)
	require.NoError(t, err)
	u, err := dir.Create(t.Context(), email, hash)
	require.NoError(t, err)
	return u
}

// MockDirectory is a testify mock of user.Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Create(ctx context.Context, email, hashedPassword string) (*user.User, error) {
	args := m.Called(ctx, email, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockDirectory) FindBy(ctx context.Context, p user.Predicate) (*user.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockDirectory) Update(ctx context.Context, id string, fields user.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
