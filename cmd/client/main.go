package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"FileKeeper/internal/cli/commands"
	"FileKeeper/internal/config"
)

// заполняются через -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// те же env и флаги, что у сервера: BASE_URL/-a, ENABLE_HTTPS/-https, TOKEN_FILE/-token-file
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion(os.Stdout, cfg)
		return
	}

	// Ctrl+C прерывает долгую загрузку или скачивание
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	os.Exit(code)
}

func printVersion(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "FileKeeper CLI\nVersion: %s\nBuild date: %s\nServer: %s\n", version, buildDate, cfg.ServerURL())
}
