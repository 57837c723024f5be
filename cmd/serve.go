package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/killallgit/podradio/api"
	"github.com/killallgit/podradio/api/types"
	"github.com/killallgit/podradio/internal/logging"
	"github.com/killallgit/podradio/internal/registry"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the podradio API server with the configured settings.

Example:
  podradio serve
  podradio serve --port 9090
  podradio serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	// Use config values if flags not provided
	host, port := serverHost, serverPort
	if host == "" {
		host = appConfig.Server.Host
	}
	if port == 0 {
		port = appConfig.Server.Port
	}

	if appConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg, db, err := newRegistry(appConfig)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	if ttl := appConfig.Registry.CacheTTL; ttl > 0 {
		cached := registry.NewCachedAccessor(reg, ttl)
		defer cached.Close()
		reg = cached
	}

	srv := api.NewServer(fmt.Sprintf("%s:%d", host, port),
		api.WithTimeouts(appConfig.Server.ReadTimeout, appConfig.Server.WriteTimeout),
		api.WithMaxHeaderBytes(appConfig.Server.MaxHeaderBytes),
	)
	srv.SetDependencies(&types.Dependencies{
		Config:   appConfig,
		DB:       db,
		Sampler:  newSampler(appConfig, reg),
		Registry: reg,
		Build:    types.BuildInfo{Version: Version, Commit: GitCommit},
	})
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	logging.Info("starting podradio server",
		"addr", srv.Addr(),
		"registry", appConfig.Registry.Source,
		"default_lang", appConfig.Registry.DefaultLanguage)

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal, command cancellation or server error
	var runErr error
	select {
	case <-stop:
		logging.Info("shutting down server")
	case <-commandContext(cmd).Done():
		logging.Info("context cancelled, shutting down server")
	case runErr = <-serverErr:
		logging.Error("server failed, shutting down", "err", runErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("server forced to shutdown", "err", err)
		return err
	}

	logging.Info("server gracefully stopped")
	return runErr
}
