package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrymomot/authkit/internal/app"
	"github.com/dmitrymomot/authkit/pkg/password"
)

type HashPasswordCmd struct {
	Password string `arg:"" optional:"" help:"Password to hash. Read from stdin when omitted."`
}

func (h *HashPasswordCmd) Run(_ context.Context, globals *Globals) error {
	cfg, err := app.LoadConfig(globals.EnvFiles...)
	if err != nil {
		return err
	}

	hasher, err := password.New(cfg.Password)
	if err != nil {
		return err
	}

	plain := h.Password
	if plain == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return errors.Join(password.ErrEmptyPassword, err)
		}
		plain = strings.TrimRight(line, "\r\n")
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, hash)
	return err
}
