// cmd/staffdesk/main.go
//
// This is the entry point for the staffdesk CLI.
// When you run `staffdesk` from any directory, this is what executes.
//
// Flow:
// 1. Make sure .staffdesk/ exists in the working directory
// 2. Load config.yaml and open the diagnostic log
// 3. Start the config watcher and launch the TUI

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/staffdesk/internal/config"
	"github.com/kingrea/staffdesk/internal/logging"
	"github.com/kingrea/staffdesk/internal/tui"
)

var (
	// Global flags
	workDir     string
	verbose     bool
	noAltScreen bool
)

// rootCmd launches the interactive TUI
var rootCmd = &cobra.Command{
	Use:   "staffdesk",
	Short: "staffdesk - staff productivity records in your terminal",
	Long: `staffdesk records staff productivity metrics (research papers, grants,
training hours and task categories), scores every entry, and lets you search,
chart and export the records of the current session.

Records live in memory only. Export them before quitting to keep them.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// initCmd scaffolds .staffdesk/ without starting the TUI
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .staffdesk/ with the default config",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", "", "Working directory (default: current)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "Render inline instead of the alternate screen")

	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveDir returns the absolute working directory from --dir or the cwd.
func resolveDir() (string, error) {
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", workDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("working directory %s is not a directory", abs)
	}
	return abs, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}
	if err := config.InitDataDir(dir); err != nil {
		return err
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", cfg.DataPath)
	fmt.Fprintf(cmd.OutOrStdout(), "  config:  %s\n", cfg.ConfigPath())
	fmt.Fprintf(cmd.OutOrStdout(), "  exports: %s\n", cfg.ExportDir())
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}
	if err := config.InitDataDir(dir); err != nil {
		return err
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(cfg.LogsDir(), level)
	if err != nil {
		return err
	}
	defer logger.Close()

	// Live reload is optional; the TUI still works without a watcher.
	watcher, err := cfg.Watch()
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
		watcher = nil
	}
	defer watcher.Close()

	app, err := tui.NewApp(cfg,
		tui.WithLogger(logger),
		tui.WithConfigWatcher(watcher),
	)
	if err != nil {
		return err
	}

	var opts []tea.ProgramOption
	if !noAltScreen {
		opts = append(opts, tea.WithAltScreen()) // Use alternate screen buffer (like vim does)
	}
	// Run blocks until the user quits
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		logger.Error("tui exited with error", zap.Error(err))
		return fmt.Errorf("run TUI: %w", err)
	}
	logger.Info("session closed")
	return nil
}
