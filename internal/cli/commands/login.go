package commands

import (
	"FileKeeper/internal/cli/api"
	"FileKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store session token" }
func (loginCmd) Usage() string       { return "login <email> [password]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	password, err := passwordArg(args)
	if err != nil {
		return err
	}
	return connect(ctx, cfg, args[0], password)
}

func connect(ctx context.Context, cfg *config.Config, email, password string) error {
	token, err := anonClient(cfg).Connect(ctx, email, password)
	if api.IsStatus(err, http.StatusUnauthorized) {
		return errors.New("invalid email or password")
	}
	if err != nil {
		return err
	}
	store := tokenStore(cfg)
	if err := store.Save(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	_ = store.SaveLogin(email)
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "End session and forget token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, err := authedClient(cfg)
	if err != nil {
		return err
	}
	// сессия могла уже истечь: токен удаляем в любом случае
	if err := client.Disconnect(ctx); err != nil && !api.IsStatus(err, http.StatusUnauthorized) {
		return err
	}
	if err := tokenStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
