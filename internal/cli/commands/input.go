package commands

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// подменяется в тестах, чтобы не трогать терминал
var readPassword = term.ReadPassword

// passwordArg берёт пароль из аргументов, а если его нет, спрашивает без эха.
func passwordArg(args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	fmt.Fprint(Out, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(Out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(pw) == 0 {
		return "", errors.New("empty password")
	}
	return string(pw), nil
}
