// Package user holds user accounts and the Directory contract used by the
// authentication layer to find and update them.
//
// A Directory is looked up with predicates (ByEmail, ByID, BySessionID,
// ByResetToken) and updated with a Fields map. A nil value in Fields clears an
// optional attribute. Emails are normalised before they are stored or
// compared, so lookups are case-insensitive.
//
// MemoryDirectory keeps accounts in process memory. PostgresDirectory stores
// them in the users table created by pg.Migrate and classifies driver errors
// into ErrDuplicateEmail, ErrNotFound and ErrStorageUnavailable.
package user
