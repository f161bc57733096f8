package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/authkit/internal/api"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	mongokit "github.com/dmitrymomot/authkit/pkg/mongo"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/ratelimit"
	rediskit "github.com/dmitrymomot/authkit/pkg/redis"
	"github.com/dmitrymomot/authkit/pkg/requestid"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/user"
)

// App is a fully wired service.
type App struct {
	Config   Config
	Logger   *slog.Logger
	Users    user.Directory
	Hasher   password.Hasher
	Sessions session.Store
	Service  *auth.Service
	Strategy auth.Strategy
	Handler  http.Handler

	checks  []httpserver.Check
	closers []func()
}

// Option injects pre-built dependencies, mostly for tests.
type Option func(*deps)

type deps struct {
	clients session.Clients
	sender  email.EmailSender
}

func WithPostgres(pool *pgxpool.Pool) Option {
	return func(d *deps) { d.clients.Postgres = pool }
}

func WithRedis(client goredis.Cmdable) Option {
	return func(d *deps) { d.clients.Redis = client }
}

func WithMongo(db *mongo.Database) Option {
	return func(d *deps) { d.clients.Mongo = db }
}

func WithS3(client session.S3Client) Option {
	return func(d *deps) { d.clients.S3 = client }
}

func WithEmailSender(s email.EmailSender) Option {
	return func(d *deps) { d.sender = s }
}

// NewLogger builds the process logger with request and user ids attached to
// every record written with a request context.
func NewLogger(cfg Config) *slog.Logger {
	return logger.NewFromConfig(cfg.Log,
		logger.WithContextExtractors(requestid.LogAttr, clientip.LogAttr, auth.UserLogAttr))
}

// New validates cfg and wires the service. Call Close when done.
func New(ctx context.Context, cfg Config, log *slog.Logger, opts ...Option) (_ *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	var d deps
	for _, opt := range opts {
		opt(&d)
	}

	a := &App{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if err := a.connect(ctx, &d.clients); err != nil {
		return nil, err
	}

	if a.Hasher, err = password.New(cfg.Password); err != nil {
		return nil, err
	}

	switch cfg.UserDirectory {
	case DirectoryPostgres:
		a.Users = user.NewPostgresDirectory(d.clients.Postgres)
	default:
		a.Users = user.NewMemoryDirectory()
	}

	if a.Sessions, err = buildStore(ctx, cfg, d.clients, log); err != nil {
		return nil, err
	}

	sender := d.sender
	if sender == nil {
		if sender, err = email.NewSender(cfg.Email, log); err != nil {
			return nil, err
		}
	}
	notifier := email.NewResetNotifier(sender, cfg.Email.ResetURL)

	authOpts := []auth.Option{
		auth.WithLogger(log),
		auth.WithSessionTTL(cfg.Session.TTL()),
	}
	a.Service = auth.NewService(a.Users, a.Hasher, a.Sessions,
		append(authOpts, auth.WithAfterResetRequest(notifier.Notify))...)

	throttle, err := loginThrottle(cfg.RateLimit, d.clients.Redis, log)
	if err != nil {
		return nil, err
	}

	v1 := api.V1Options{
		Users:         a.Users,
		Hasher:        a.Hasher,
		ExcludedPaths: cfg.ExcludedPaths,
		Logger:        log,
		Throttle:      throttle,
	}
	switch cfg.AuthType {
	case AuthBasic:
		a.Strategy = auth.NewBasicStrategy(a.Users, a.Hasher, authOpts...)
	case AuthSession, AuthSessionExp, AuthSessionDB:
		transport := session.NewCookieTransport(cfg.Session.Name, session.WithSecureCookie(cfg.Session.SecureCookies))
		ss := auth.NewSessionStrategy(a.Sessions, transport, a.Users, authOpts...)
		a.Strategy = ss
		v1.Sessions = ss
	}
	v1.Strategy = a.Strategy

	a.Handler = api.Router(api.RouterOptions{
		Account:      api.NewAccount(a.Service, nil, log, api.WithThrottle(throttle)),
		V1:           api.NewV1(v1),
		Checks:       a.checks,
		Logger:       log,
		ProxyHeaders: cfg.ProxyHeaders,
	})

	log.InfoContext(ctx, "service wired",
		logger.Component("app"),
		logger.Strategy(cfg.AuthType),
		slog.String("user_directory", cfg.UserDirectory),
		logger.Backend(backendName(cfg)),
	)
	return a, nil
}

func backendName(cfg Config) string {
	if b := cfg.backend(); b != "" {
		return b
	}
	return "memory"
}

// loginThrottle limits credential checks per client address. Counters live in
// Redis when a client is available. Nil when disabled.
func loginThrottle(cfg ratelimit.Config, rdb goredis.Cmdable, log *slog.Logger) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var store ratelimit.Store = ratelimit.NewMemoryStore(nil)
	if rdb != nil {
		store = ratelimit.NewRedisStore(rdb, cfg.Prefix)
	}
	limiter, err := ratelimit.NewLimiter(store, cfg.Limit, cfg.Window)
	if err != nil {
		return nil, err
	}
	return ratelimit.Middleware(limiter,
		ratelimit.WithLimitHandler(api.TooManyRequests),
		ratelimit.WithLogger(log),
	), nil
}

// connect opens the storage clients the configuration needs and that were not
// injected.
func (a *App) connect(ctx context.Context, c *session.Clients) error {
	cfg := a.Config
	backend := cfg.backend()

	if cfg.needsPostgres() {
		var pgCfg pg.Config
		if c.Postgres == nil {
			if err := config.Load(&pgCfg); err != nil {
				return fmt.Errorf("postgres config: %w", err)
			}
			pool, err := pg.Connect(ctx, pgCfg)
			if err != nil {
				return err
			}
			c.Postgres = pool
			a.closers = append(a.closers, pool.Close)
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, c.Postgres, pgCfg, a.Logger); err != nil {
				return err
			}
		}
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(c.Postgres)})
	}

	switch backend {
	case session.BackendRedis:
		if c.Redis == nil {
			var rCfg rediskit.Config
			if err := config.Load(&rCfg); err != nil {
				return fmt.Errorf("redis config: %w", err)
			}
			client, err := rediskit.Connect(ctx, rCfg)
			if err != nil {
				return err
			}
			c.Redis = client
			a.closers = append(a.closers, func() { _ = client.Close() })
		}
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: rediskit.Healthcheck(c.Redis)})
	case session.BackendMongo:
		if c.Mongo == nil {
			var mCfg mongokit.Config
			if err := config.Load(&mCfg); err != nil {
				return fmt.Errorf("mongo config: %w", err)
			}
			db, err := mongokit.NewWithDatabase(ctx, mCfg)
			if err != nil {
				return err
			}
			c.Mongo = db
			a.closers = append(a.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		}
		a.checks = append(a.checks, httpserver.Check{Name: "mongo", Fn: mongokit.Healthcheck(c.Mongo.Client())})
	case session.BackendS3:
		if c.S3 == nil {
			client, err := session.NewS3Client(ctx, cfg.Session.S3)
			if err != nil {
				return err
			}
			c.S3 = client
		}
	}
	return nil
}

func buildStore(ctx context.Context, cfg Config, clients session.Clients, log *slog.Logger) (session.Store, error) {
	opts := cfg.Session.StoreOptions(log)
	mem := session.NewMemoryStore(opts...)

	switch cfg.AuthType {
	case AuthSessionExp:
		return session.NewExpiringStore(mem, cfg.Session.TTL(), opts...), nil
	case AuthSessionDB:
		backend, err := session.NewBackend(ctx, cfg.Session, clients)
		if err != nil {
			return nil, err
		}
		exp := session.NewExpiringStore(mem, cfg.Session.TTL(), opts...)
		return session.NewPersistentStore(exp, backend, cfg.Session.TTL(), opts...), nil
	default:
		return mem, nil
	}
}

// Run serves the router until ctx is cancelled or a termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	srv := httpserver.NewFromConfig(a.Config.HTTP, httpserver.WithLogger(a.Logger))
	return srv.Run(ctx, a.Handler)
}

// Close releases storage clients in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// LoadConfig reads Config from the environment and optional env files.
func LoadConfig(envFiles ...string) (Config, error) {
	var cfg Config
	if err := config.LoadEnv(envFiles...); err != nil {
		return cfg, err
	}
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	err := cfg.Validate()
	return cfg, err
}
