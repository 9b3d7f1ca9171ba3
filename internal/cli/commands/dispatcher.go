package commands

import (
	"FileKeeper/internal/cli/api"
	"FileKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Коды завершения fkcli.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errSessionExpired заменяет ответ 401 сервера на подсказку войти заново.
var errSessionExpired = errors.New("session expired or invalid, login again")

// Dispatch выполняет команду из args и возвращает код завершения процесса.
// args уже без глобальных флагов (flag.Args()).
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return exitOK
		}
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" { // fkcli help [command]
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	err := describe(c.Run(ctx, cfg, args[1:]))
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitUsage
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return exitError
	}
}

func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitOK
	}
	name := strings.ToLower(args[0])
	if c, ok := Get(name); ok {
		fmt.Fprintf(Out, "Usage: %s\n%s\n", c.Usage(), c.Description())
		return exitOK
	}
	fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
	fmt.Fprint(Out, FormatGlobalUsage())
	return exitUsage
}

// describe переводит ответы сервера в сообщения для пользователя.
func describe(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusUnauthorized:
		return errSessionExpired
	case http.StatusNotFound:
		return errors.New("not found")
	case http.StatusRequestEntityTooLarge:
		return errors.New("file is too large for the server")
	}
	if apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return err
}
