package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberhygiene/internal/app"
	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/config"
	"github.com/abhisek/cyberhygiene/internal/feedback"
	"github.com/abhisek/cyberhygiene/internal/llm"
	"github.com/abhisek/cyberhygiene/internal/scenario"
	"github.com/abhisek/cyberhygiene/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The screen owns stderr, so the TUI logs to a file.
	dir, err := store.DataDir()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cmd, file, filepath.Join(dir, "cyberhygiene.log"))
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cmd, file)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := buildEngine(ctx, file, st.EventRepo())
	if err != nil {
		return err
	}

	return app.Run(app.Options{Engine: engine})
}

func openStore(cmd *cobra.Command, file config.File) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, file)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// buildEngine resolves the LLM configuration, builds the provider and wires
// the scenario generator and explainer to it. A nil eventRepo disables the
// audit log. Missing credentials surface as *llm.StartupConfigError.
func buildEngine(ctx context.Context, file config.File, eventRepo store.EventRepo) (*challenge.Engine, error) {
	cfg, err := llm.Resolve(file.ApplyLLM(llm.DefaultConfig()))
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, err
	}
	slog.Info("llm provider ready", "provider", cfg.Provider, "model", provider.ModelID())

	return challenge.NewEngine(
		scenario.New(provider, scenario.DefaultConfig()),
		feedback.New(provider, feedback.DefaultConfig()),
	), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
