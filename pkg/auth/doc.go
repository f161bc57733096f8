// Package auth decides who is making a request.
//
// A Strategy answers three questions: does this path need authentication,
// what credentials did the client send, and which user do they belong to.
// Base implements path exclusion and header extraction and never resolves a
// user. BasicStrategy decodes an HTTP Basic header in separately callable
// stages and checks the password with a password.Hasher. SessionStrategy
// reads a session id through a session.Transport and resolves it through a
// session.Store, whichever layering of stores the application picked.
//
// Malformed or unknown credentials never produce an error; CurrentUser
// returns a nil user and the request is treated as anonymous. Only storage
// failures are reported, so the HTTP layer can answer 503 instead of 403.
//
// Middleware implements the request gate:
//
//	r.Use(auth.Middleware(strategy, []string{"/api/v1/status/", "/api/v1/auth_session/login/"}))
//
// Requests to excluded paths pass through. Otherwise a request with neither an
// Authorization header nor a session cookie gets 401, one whose credentials
// resolve to no user gets 403, and the resolved user is available to handlers
// through UserFromContext.
//
// Service implements the account operations behind the HTTP endpoints:
// registration, login, logout and the two-step password reset.
package auth
