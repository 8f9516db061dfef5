package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homepanel/internal/config"
	"homepanel/internal/handlers"
	"homepanel/internal/logger"
	"homepanel/internal/metrics"
	"homepanel/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

var configPath string

var rootCmd = &cobra.Command{
	Use:           "homepanel",
	Short:         "Home control panel for climate units, switches and the media server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP panel (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to config.yml (default ./configs/config.yml)")
	flags.StringP("port", "p", "", "listen port or host:port")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("port", flags.Lookup("port"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, probeCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(viper.GetViper(), configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.Get(cfg.LogLevel), nil
}

func serve() error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error reading config: %w", err)
	}
	metrics.Init()

	a, err := buildApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if cfg.Auth.Username == "" || (cfg.Auth.Password == "" && cfg.Auth.PasswordHash == "") {
		log.Warnw("credentials not configured; every login will be rejected")
	}
	if cfg.StatusCake.APIKey == "" || cfg.StatusCake.TestID == "" {
		log.Warnw("statuscake not configured; uptime chart will be empty")
	}

	apiHandler := handlers.NewHandler(a.services, log.Named("http"), handlers.Options{
		AuthMode:     cfg.Auth.Mode,
		SecureCookie: cfg.Auth.SecureCookie,
		AppName:      cfg.App.Name,
		AppVersion:   cfg.App.Version,
		Switches:     a.switchIDs(),
	})

	srv := &server.Server{}
	errCh := runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started",
		"port", cfg.Port,
		"auth_mode", cfg.Auth.Mode,
		"climate_devices", len(a.registry.ClimateDevices()),
		"switches", len(a.registry.Switches()),
	)

	return waitForShutdown(srv, errCh, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Errorw("error starting server", "err", err)
			errCh <- err
		}
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a listener failure,
// then drains in-flight requests.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
