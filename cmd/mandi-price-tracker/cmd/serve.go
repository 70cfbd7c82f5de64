package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/khetdata/mandi-price-tracker/internal/api/handlers"
	mw "github.com/khetdata/mandi-price-tracker/internal/api/middleware"
	"github.com/khetdata/mandi-price-tracker/internal/config"
	"github.com/khetdata/mandi-price-tracker/internal/dataset"
	"github.com/khetdata/mandi-price-tracker/internal/govdata"
	"github.com/khetdata/mandi-price-tracker/internal/service"
	"github.com/khetdata/mandi-price-tracker/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Best effort: a missing .env is fine, the environment may already
	// be populated.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	loader := dataset.NewLoader(cfg.Dataset.Path, cfg.Dataset.SamplePath, log)

	opts := []service.ServiceOption{
		service.WithDisplayDivisor(cfg.Dataset.DisplayDivisor),
	}
	var limiter *govdata.RateLimiter
	if cfg.GovData.APIKey != "" {
		limiter = govdata.NewRateLimiter(
			cfg.GovData.RateLimit.PerSecond,
			cfg.GovData.RateLimit.Burst,
			cfg.GovData.RateLimit.DailyLimit,
		)
		fallback := govdata.NewClient(
			cfg.GovData.APIKey,
			govdata.WithBaseURL(cfg.GovData.BaseURL),
			govdata.WithLimit(cfg.GovData.Limit),
			govdata.WithHTTPClient(&http.Client{Timeout: cfg.GovData.Timeout}),
			govdata.WithRateLimiter(limiter),
		)
		opts = append(opts, service.WithFallback(fallback))
	} else {
		log.Warn("govdata.api_key not set, government API fallback disabled")
	}

	svc := service.NewPriceService(loader, log, opts...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	health := handlers.NewHealthHandler(loader)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Mandi Price Tracker API", Version))
	handlers.RegisterPriceRoutes(api, handlers.NewPricesHandler(svc))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(limiter))

	var refresher *dataset.Refresher
	if cfg.Dataset.RefreshInterval > 0 {
		refresher, err = dataset.NewRefresher(loader, cfg.Dataset.RefreshInterval, log)
		if err != nil {
			return fmt.Errorf("creating dataset refresher: %w", err)
		}
		refresher.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	if refresher != nil {
		<-refresher.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// loadConfig reads the configured YAML file, falling back to built-in
// defaults when the default config file simply does not exist. An
// explicit config path that cannot be read is still an error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("loading config: %w", err)
}
