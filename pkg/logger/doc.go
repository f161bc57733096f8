// Package logger builds the structured *slog.Logger used across authkit.
//
// New assembles a text or JSON slog handler from functional options, wraps it
// with NewContextHandler so request-scoped values stored in context (request
// id, user id) are attached to every record, and can mask personal data before
// it reaches the output:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "authd"),
//	    logger.WithRedactedKeys(logger.DefaultRedactedKeys...),
//	)
//	log.InfoContext(ctx, "user logged in",
//	    logger.UserID(u.ID),
//	    logger.Email(u.Email), // rendered as email=***
//	)
//
// Attribute helpers (Error, UserID, SessionID, Component, ...) keep key names
// consistent between packages. Error and Errors return an empty attribute for
// nil errors so they can be passed unconditionally.
//
// RedactString applies the same masking to free-form "key=value;" strings,
// for messages that were formatted before reaching the logger.
package logger
