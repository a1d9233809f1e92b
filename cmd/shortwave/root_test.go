// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"browse", "upload", "login", "signup", "film"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("api"))
}

func TestRootCommand_FilmArgs(t *testing.T) {
	root := newRootCommand()
	film, _, err := root.Find([]string{"film"})
	require.NoError(t, err)

	assert.Error(t, film.Args(film, nil))
	assert.Error(t, film.Args(film, []string{"a", "b"}))
	assert.NoError(t, film.Args(film, []string{"01890f4e-7c3a-7b1e-9f00-000000000000"}))
}

func TestNewLogger(t *testing.T) {
	logger, closeLog, err := newLogger("")
	require.NoError(t, err)
	logger.Info("discarded")
	closeLog()

	path := filepath.Join(t.TempDir(), "client.log")
	logger, closeLog, err = newLogger(path)
	require.NoError(t, err)
	logger.Info("client_started")
	closeLog()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "msg=client_started")
	assert.Contains(t, string(contents), "app=shortwave-tui")

	_, _, err = newLogger(filepath.Join(t.TempDir(), "missing", "client.log"))
	assert.Error(t, err)
}
