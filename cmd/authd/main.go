package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/dmitrymomot/authkit/cmd/authd/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		EnvFile []string         `help:"Extra .env files to load before reading the environment."`
		Version kong.VersionFlag `help:"Print version and exit."`

		Serve        commands.ServeCmd        `cmd:"" default:"1" help:"Start the HTTP API."`
		Migrate      commands.MigrateCmd      `cmd:"" help:"Apply Postgres migrations."`
		HashPassword commands.HashPasswordCmd `cmd:"" name:"hash-password" help:"Hash a password with the configured algorithm."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("authd"),
		kong.Description("Authentication service with pluggable strategies and session stores."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{EnvFiles: cli.EnvFile, Version: version})
	cmd.FatalIfErrorf(err)
}
