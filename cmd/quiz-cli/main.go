package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"quiz-history/internal/cli"
	"quiz-history/internal/config"
	"quiz-history/internal/quiz"
	"quiz-history/internal/quiz/sqlite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := "play"
	if len(args) > 0 && (args[0] == "play" || args[0] == "history") {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load("quiz-cli "+command, args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := sqlite.NewSQLiteStore(cfg.DatabasePath)
	defer store.Close()

	if command == "history" {
		return cli.RunHistory(ctx, store, cfg.Player, os.Stdout)
	}

	return cli.Run(ctx, cli.Options{
		Questions: quiz.DefaultQuestions(),
		TimeLimit: cfg.TimeLimit,
		Tick:      cfg.Tick,
	}, store, os.Stdin, os.Stdout)
}
