package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wellcrafted/reawaken/internal/config"
	"github.com/wellcrafted/reawaken/internal/loader"
	"github.com/wellcrafted/reawaken/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8000", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	analysisCfg, err := config.LoadAnalysisConfig()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:     viper.GetString("server.addr"),
		Analysis: analysisCfg,
	}, loader.NewCSVLoader())

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", viper.GetString("server.addr"))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-cmd.Context().Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
