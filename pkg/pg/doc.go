// Package pg wires PostgreSQL through pgx/v5.
//
// Connect opens a pool and pings it with exponential backoff, Migrate applies
// the embedded goose migrations that create the users and user_sessions
// tables, and Healthcheck returns a check for the HTTP health endpoint.
//
// Errors from queries can be classified with IsNotFoundError,
// IsDuplicateKeyError and IsUnavailableError, which are built on
// github.com/jackc/pgerrcode.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
