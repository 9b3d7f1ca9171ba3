package commands

import (
	"FileKeeper/internal/cli/api"
	"FileKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create account and login" }
func (registerCmd) Usage() string       { return "register <email> [password]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	password, err := passwordArg(args)
	if err != nil {
		return err
	}
	email := args[0]
	u, err := anonClient(cfg).Register(ctx, email, password)
	if err != nil {
		// 400 несёт причину: "Already exist", "Missing email"...
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return errors.New(apiErr.Message)
		}
		return err
	}
	fmt.Fprintf(Out, "Registered %s (id %d)\n", u.Email, u.ID)
	return connect(ctx, cfg, email, password)
}

func init() { RegisterCmd(registerCmd{}) }
