// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taibuivan/shortwave/internal/platform/constants"
	"github.com/taibuivan/shortwave/internal/tui"
	"github.com/taibuivan/shortwave/internal/tui/client"
	"github.com/taibuivan/shortwave/internal/tui/clientconfig"
)

func newRootCommand() *cobra.Command {
	var apiFlag string

	launch := func(cmd *cobra.Command, start tui.Screen, filmID string) error {
		return run(cmd, strings.TrimSpace(apiFlag), tui.Options{Start: start, FilmID: filmID})
	}

	rootCmd := &cobra.Command{
		Use:           "shortwave",
		Short:         "Browse and upload short films from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, tui.ScreenBrowse, "")
		},
	}
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "Catalogue API base URL (overrides SHORTWAVE_API_URL)")

	screens := []struct {
		use    string
		short  string
		screen tui.Screen
	}{
		{"browse", "Open the film grid", tui.ScreenBrowse},
		{"upload", "Open the upload wizard", tui.ScreenUpload},
		{"login", "Log in to an existing account", tui.ScreenLogin},
		{"signup", "Create an account", tui.ScreenSignup},
	}
	for _, s := range screens {
		screen := s.screen
		rootCmd.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return launch(cmd, screen, "")
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "film <id>",
		Short: "Open a film page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, tui.ScreenDetail, strings.TrimSpace(args[0]))
		},
	})

	return rootCmd
}

func run(cmd *cobra.Command, apiURL string, opts tui.Options) error {
	cfg, err := clientconfig.Load()
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	backend, err := client.New(client.Config{
		BaseURL:   cfg.APIURL,
		UserAgent: "shortwave-tui/" + constants.AppVersion,
	})
	if err != nil {
		return err
	}

	opts.FadeOut, opts.FadeIn = cfg.Fades()
	opts.Logger = logger

	logger.Info("client_started", slog.String("api_url", cfg.APIURL))

	program := tea.NewProgram(tui.New(backend, opts),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// newLogger writes text logs to path, or discards them when path is empty.
// The alternate screen owns stdout, so logs never go there.
func newLogger(path string) (*slog.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With(slog.String(constants.FieldApp, "shortwave-tui"))
	return logger, func() { _ = file.Close() }, nil
}
