package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd(t *testing.T) {
	ws := t.TempDir()
	workDir = ws
	defer func() { workDir = "" }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runInit(cmd, nil))

	for _, rel := range []string{".staffdesk/config.yaml", ".staffdesk/logs", ".staffdesk/exports"} {
		if _, err := os.Stat(filepath.Join(ws, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}
	assert.Contains(t, out.String(), "Initialized")

	// Running init again keeps the existing config.
	custom := []byte("version: 1\ncharts:\n  histogram_bins: 4\n")
	require.NoError(t, os.WriteFile(filepath.Join(ws, ".staffdesk", "config.yaml"), custom, 0o644))
	require.NoError(t, runInit(cmd, nil))
	data, err := os.ReadFile(filepath.Join(ws, ".staffdesk", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestResolveDir(t *testing.T) {
	ws := t.TempDir()
	workDir = ws
	defer func() { workDir = "" }()

	dir, err := resolveDir()
	require.NoError(t, err)
	assert.Equal(t, ws, dir)

	workDir = filepath.Join(ws, "missing")
	_, err = resolveDir()
	assert.Error(t, err)

	file := filepath.Join(ws, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	workDir = file
	_, err = resolveDir()
	assert.Error(t, err)
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["init"])
	for _, flag := range []string{"dir", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("no-alt-screen"))
}
