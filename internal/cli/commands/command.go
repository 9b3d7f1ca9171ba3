package commands

import (
	"FileKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage возвращается командой при неверных аргументах; Dispatch печатает Usage.
var ErrUsage = errors.New("usage")

// Command подкоманда fkcli.
type Command interface {
	// Name имя команды в нижнем регистре, например "upload".
	Name() string
	Description() string
	// Usage строка вызова, например "login <email> [password]".
	Usage() string
	// Run получает аргументы без имени команды. Ответы сервера возвращаются
	// как есть (*api.Error), понятное сообщение из них делает Dispatch.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd добавляет команду в реестр; вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[strings.ToLower(cmd.Name())] = cmd
}

// Get ищет команду без учёта регистра.
func Get(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// List команды по алфавиту.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage общая справка: флаги, переменные окружения и команды.
func FormatGlobalUsage() string {
	lines := []string{
		"FileKeeper CLI",
		"",
		"Usage:",
		"  fkcli [-a <host:port>] [-https] [-token-file <path>] <command> [args]",
		"",
		"Environment:",
		"  BASE_URL      server address (host:port)",
		"  ENABLE_HTTPS  use https",
		"  TOKEN_FILE    where the session token is kept",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-36s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}
