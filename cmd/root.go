package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberhygiene/internal/config"
	"github.com/abhisek/cyberhygiene/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cyberhygiene",
	Short: "Cyber hygiene quiz in your terminal",
	Long: `Cyber Hygiene: practice spotting phishing, everyday risks, workplace
mistakes and fake news with AI-generated scenarios.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CYBERHYGIENE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of the default")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file named by --config, if any.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CYBERHYGIENE_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, file config.File) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("CYBERHYGIENE_DB") == "" && file.Database != "" {
		return file.Database, store.EnsureDir(file.Database)
	}
	return store.DefaultDBPath()
}

// setupLogging installs the default slog logger. Output goes to --log-file,
// then the config file's log.file, then fallback; an empty fallback means
// stderr. The returned func closes the log file.
func setupLogging(cmd *cobra.Command, file config.File, fallback string) (func(), error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	if levelName == "" {
		levelName = file.Log.Level
	}
	level := slog.LevelInfo
	if levelName != "" {
		if err := level.UnmarshalText([]byte(levelName)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
	}

	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		path = file.Log.File
	}
	if path == "" {
		path = fallback
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}
