package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberhygiene/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the challenge API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cmd, file, "")
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cmd, file)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := buildEngine(ctx, file, st.EventRepo())
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if !cmd.Flags().Changed("addr") && file.Server.Addr != "" {
		addr = file.Server.Addr
	}
	ttl := file.Server.SessionTTL
	if ttl == 0 {
		ttl = httpapi.DefaultSessionTTL
	}

	api := httpapi.NewServer(engine, httpapi.Options{
		SessionTTL:     ttl,
		AllowedOrigins: file.Server.AllowedOrigins,
	})
	go api.Registry().Run(ctx, time.Minute)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
