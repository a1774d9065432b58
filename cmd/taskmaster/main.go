package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/storage"
	"taskmaster/internal/todo"
	"taskmaster/internal/ui"
)

var Version = "dev"

// clock is swapped out by tests.
var clock todo.Clock = time.Now

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:           "taskmaster",
		Short:         "Task Master - a to-do list for the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := ui.Run(a.store, a.cfg, a.logger, a.firstLaunch); err != nil {
				return fmt.Errorf("error running program: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir)")

	rootCmd.AddCommand(addCmd(&configPath))
	rootCmd.AddCommand(listCmd(&configPath))
	rootCmd.AddCommand(clearCmd(&configPath))
	rootCmd.AddCommand(exportCmd(&configPath))
	rootCmd.AddCommand(importCmd(&configPath))

	return rootCmd
}

type app struct {
	cfg         config.Config
	logger      *log.Logger
	store       *todo.Store
	firstLaunch bool
	closers     []io.Closer
}

// openApp loads config, opens the log and database, hydrates the task store
// and runs the daily recurrence check.
func openApp(configPath string) (*app, error) {
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := logging.OpenFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, firstLaunch: firstLaunch, closers: []io.Closer{logFile}}

	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append([]io.Closer{kv}, a.closers...)

	a.store, err = todo.Open(kv,
		todo.WithClock(clock),
		todo.WithLogger(logger),
		todo.WithFilter(cfg.Filter()),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	if _, err := todo.NewRecurrenceResetter(a.store).Run(); err != nil {
		logger.Error("recurrence check failed", "err", err)
	}
	logger.Debug("started", "config", configPath, "db", cfg.DBPath, "first_launch", firstLaunch)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
}
