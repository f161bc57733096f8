package session

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/authkit/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresBackend.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBackend stores records in the user_sessions table created by pg.Migrate.
type PostgresBackend struct {
	db DB
}

func NewPostgresBackend(db DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Save(ctx context.Context, rec Record) error {
	if !rec.valid() {
		return ErrInvalidRecord
	}
	_, err := b.db.Exec(ctx, `
		INSERT INTO user_sessions (session_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE
		SET user_id = EXCLUDED.user_id, created_at = EXCLUDED.created_at`,
		rec.ID, rec.UserID, rec.CreatedAt,
	)
	return err
}

func (b *PostgresBackend) Load(ctx context.Context, sessionID string) (*Record, error) {
	rec := Record{ID: sessionID}
	err := b.db.QueryRow(ctx,
		`SELECT user_id, created_at FROM user_sessions WHERE session_id = $1`,
		sessionID,
	).Scan(&rec.UserID, &rec.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func (b *PostgresBackend) Delete(ctx context.Context, sessionID string) (bool, error) {
	tag, err := b.db.Exec(ctx, `DELETE FROM user_sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
