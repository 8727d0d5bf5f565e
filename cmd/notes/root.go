package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/internal/config"
	"github.com/aretw0/notes/pkg/core"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	cfgFile   string
	storeFile string

	cfg *config.Config
)

var errNoCommand = errors.New("a command is required")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Take notes from the terminal",
	Long: `notes keeps a list of tagged notes in a single local file.
Create, list, search and remove notes, or browse them in a local web page.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := cfg.LogLevel()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		slog.Debug("configuration loaded", "file", cfg.File, "config", cfgFile)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errNoCommand
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore builds the note service for the configured store file.
func openStore(readOnly bool) (*core.Service, error) {
	svc, err := notes.New(cfg.File,
		notes.WithLogger(slog.Default()),
		notes.WithReadOnly(readOnly),
		notes.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher failed", "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", cfg.File, err)
	}
	return svc, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (json, yaml or toml)")
	rootCmd.PersistentFlags().StringVarP(&storeFile, "file", "f", "", "Store file (default notes.json; .json, .yaml or .csv)")
}
