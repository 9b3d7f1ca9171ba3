package commands

import (
	"FileKeeper/internal/config"
	"context"
	"fmt"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show server health and counters" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client := anonClient(cfg)
	st, err := client.Status(ctx)
	if err != nil {
		return err
	}
	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "server:  %s\n", cfg.ServerURL())
	fmt.Fprintf(Out, "cache:   %t\n", st.Cache)
	fmt.Fprintf(Out, "db:      %t\n", st.DB)
	fmt.Fprintf(Out, "users:   %d\n", stats.Users)
	fmt.Fprintf(Out, "files:   %d\n", stats.Files)
	if stats.ThumbnailRejected > 0 {
		fmt.Fprintf(Out, "thumbnail jobs rejected: %d\n", stats.ThumbnailRejected)
	}
	if login, err := tokenStore(cfg).LoadLogin(); err == nil {
		fmt.Fprintf(Out, "last login: %s\n", login)
	}
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show current user" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, err := authedClient(cfg)
	if err != nil {
		return err
	}
	u, err := client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s (id %d)\n", u.Email, u.ID)
	return nil
}

func init() {
	RegisterCmd(statusCmd{})
	RegisterCmd(whoamiCmd{})
}
