package commands

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authkit/internal/app"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides HTTP_ADDR." placeholder:":8080"`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := app.LoadConfig(globals.EnvFiles...)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.HTTP.Addr = s.Addr
	}

	log := app.NewLogger(cfg)
	slog.SetDefault(log)
	log.InfoContext(ctx, "starting authd",
		slog.String("version", globals.Version),
		slog.String("auth_type", cfg.AuthType))

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
