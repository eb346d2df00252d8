package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/prefs"
	"github.com/Makepad-fr/tada/internal/remote"
	"github.com/Makepad-fr/tada/internal/tui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", os.Getenv("TADA_CONFIG"), "config file (default ./tada.yml if present)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	os.Exit(run(args, *configPath))
}

func run(args []string, configPath string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	todos, err := remote.NewTodos(cfg.TodosURL, remote.WithLogger(log))
	if err != nil {
		log.Error("todos client", zap.Error(err))
		return 1
	}
	users, err := remote.NewUsers(cfg.UsersURL, remote.WithLogger(log))
	if err != nil {
		log.Error("users client", zap.Error(err))
		return 1
	}
	store, err := prefs.NewStore(cfg.PrefsPath)
	if err != nil {
		log.Error("prefs", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, args, &cli.Env{
		Todos:      todos,
		Users:      users,
		Prefs:      store,
		Log:        log,
		MaxVisible: cfg.MaxVisible,
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		TUI:        tui.Run,
	})
}
