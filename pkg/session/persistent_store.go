package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// PersistentStore writes every session through to a Backend and reads it
// back from there, so sessions outlive the process.
type PersistentStore struct {
	inner   Store
	backend Backend
	ttl     time.Duration
	opts    options
}

// NewPersistentStore decorates inner with backend. A ttl of zero or less
// disables expiry.
func NewPersistentStore(inner Store, backend Backend, ttl time.Duration, opts ...Option) *PersistentStore {
	return &PersistentStore{
		inner:   inner,
		backend: backend,
		ttl:     ttl,
		opts:    applyOptions(opts),
	}
}

// Create mints a session in the inner store and saves it durably before
// returning the id. If the save fails the inner session is dropped.
func (s *PersistentStore) Create(ctx context.Context, userID string) (string, error) {
	id, err := s.inner.Create(ctx, userID)
	if err != nil {
		return "", err
	}

	rec, err := s.inner.Get(ctx, id)
	if err != nil {
		s.rollback(ctx, id)
		return "", err
	}

	_, err = retry(ctx, s.opts, "save", func() (struct{}, error) {
		return struct{}{}, s.backend.Save(ctx, *rec)
	})
	if err != nil {
		s.rollback(ctx, id)
		return "", err
	}

	return id, nil
}

func (s *PersistentStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	rec, err := retry(ctx, s.opts, "load", func() (*Record, error) {
		return s.backend.Load(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}
	if rec.Expired(s.opts.now(), s.ttl) {
		return nil, ErrSessionExpired
	}
	return rec, nil
}

func (s *PersistentStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return rec.UserID, nil
}

// Destroy deletes the durable record and the inner one. The result reflects
// the backend.
func (s *PersistentStore) Destroy(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	existed, err := retry(ctx, s.opts, "delete", func() (bool, error) {
		return s.backend.Delete(ctx, sessionID)
	})
	if err != nil {
		return false, err
	}

	if _, err := s.inner.Destroy(ctx, sessionID); err != nil {
		s.opts.logger.WarnContext(ctx, "failed to drop in-memory session",
			logger.Component("session"), logger.Error(err))
	}
	return existed, nil
}

func (s *PersistentStore) rollback(ctx context.Context, id string) {
	if _, err := s.inner.Destroy(context.WithoutCancel(ctx), id); err != nil {
		s.opts.logger.ErrorContext(ctx, "failed to roll back session",
			logger.Component("session"), logger.Error(err))
	}
}

// retry runs op with exponential backoff. ErrSessionNotFound is final;
// anything else left after the last attempt becomes ErrStorageUnavailable.
func retry[T any](ctx context.Context, o options, op string, fn func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.retryInterval

	attempt := 0
	res, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := fn()
		if errors.Is(err, ErrSessionNotFound) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(o.retryAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			o.logger.WarnContext(ctx, "session backend call failed, retrying",
				logger.Component("session"),
				slog.String("op", op),
				logger.RetryCount(attempt),
				logger.Duration(next),
				logger.Error(err),
			)
		}),
	)
	if err == nil {
		return res, nil
	}

	var zero T
	if errors.Is(err, ErrSessionNotFound) {
		return zero, ErrSessionNotFound
	}

	o.logger.ErrorContext(ctx, "session backend unavailable",
		logger.Component("session"),
		slog.String("op", op),
		logger.RetryCount(attempt),
		logger.Error(err),
	)
	return zero, errors.Join(ErrStorageUnavailable, err)
}
