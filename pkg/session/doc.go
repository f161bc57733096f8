// Package session maps opaque session ids to user ids.
//
// Store is the contract shared by every layer. MemoryStore keeps records in a
// mutex-guarded map and mints ids from 32 bytes of crypto/rand. ExpiringStore
// decorates any Store and rejects records older than a TTL without deleting
// them. PersistentStore decorates a Store with a durable Backend so sessions
// survive restarts:
//
//	mem := session.NewMemoryStore()
//	exp := session.NewExpiringStore(mem, time.Hour)
//	db := session.NewPersistentStore(exp, session.NewFileBackend(".sessions.yaml"), time.Hour)
//
//	id, err := db.Create(ctx, userID)
//	uid, err := db.Resolve(ctx, id)
//	ok, err := db.Destroy(ctx, id)
//
// Backends exist for a YAML file on disk, PostgreSQL, Redis, MongoDB and S3.
// Backend calls are retried with exponential backoff; exhausted retries
// surface as ErrStorageUnavailable.
//
// Transport moves the session id between client and server. CookieTransport
// uses a plain cookie named by SESSION_NAME, HeaderTransport a request header,
// and CompositeTransport tries several in order.
package session
