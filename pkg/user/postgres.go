package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/authkit/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresDirectory.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDirectory stores users in the users table.
type PostgresDirectory struct {
	db DB
}

// NewPostgresDirectory wraps db. The schema comes from pg.Migrate.
func NewPostgresDirectory(db DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const userColumns = "id, email, hashed_password, session_id, reset_token, created_at"

func (d *PostgresDirectory) Create(ctx context.Context, email, hashedPassword string) (*User, error) {
	normalized, err := ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if hashedPassword == "" {
		return nil, fmt.Errorf("%w: empty hashed password", ErrInvalidFieldValue)
	}

	row := d.db.QueryRow(ctx,
		`INSERT INTO users (id, email, hashed_password) VALUES ($1, $2, $3) RETURNING `+userColumns,
		uuid.NewString(), normalized, hashedPassword,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("create user", err)
	}
	return u, nil
}

func (d *PostgresDirectory) FindBy(ctx context.Context, p Predicate) (*User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	value := p.Value
	if p.Attr == AttrEmail {
		value = NormalizeEmail(value)
	}
	if p.Attr == AttrID {
		if _, err := uuid.Parse(value); err != nil {
			return nil, ErrNotFound
		}
	}

	// p.Attr is one of the validated column names.
	row := d.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+p.Attr+` = $1 LIMIT 1`,
		value,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("find user", err)
	}
	return u, nil
}

func (d *PostgresDirectory) Update(ctx context.Context, id string, fields Fields) error {
	normalized, err := fields.normalize()
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	keys := normalized.Keys()
	if len(keys) == 0 {
		// Still report unknown ids.
		_, err := d.FindBy(ctx, ByID(id))
		return err
	}

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, key := range keys {
		sets = append(sets, fmt.Sprintf("%s = $%d", key, i+1))
		args = append(args, normalized[key])
	}
	args = append(args, id)

	tag, err := d.db.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...,
	)
	if err != nil {
		return classify("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.SessionID, &u.ResetToken, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func classify(op string, err error) error {
	switch {
	case pg.IsNotFoundError(err):
		return ErrNotFound
	case pg.IsDuplicateKeyError(err):
		return ErrDuplicateEmail
	case pg.IsUnavailableError(err), errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrStorageUnavailable, fmt.Errorf("%s: %w", op, err))
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
