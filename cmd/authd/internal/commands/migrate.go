package commands

import (
	"context"

	"github.com/dmitrymomot/authkit/internal/app"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/pg"
)

type MigrateCmd struct {
	Path string `help:"Directory with SQL migrations. Defaults to the embedded set."`
}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := app.LoadConfig(globals.EnvFiles...)
	if err != nil {
		return err
	}
	log := app.NewLogger(cfg)

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return err
	}
	if m.Path != "" {
		pgCfg.MigrationsPath = m.Path
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return pg.Migrate(ctx, pool, pgCfg, log)
}
