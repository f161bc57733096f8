// Package api exposes the account and session endpoints over HTTP.
//
// Account mounts the cookie based account flow (/users, /sessions, /profile,
// /reset_password). V1 mounts the /api/v1 resources guarded by an
// auth.Strategy. Router composes both with request ids, access logging and
// health checks.
package api
