package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fontpair/internal/controllers"
	"fontpair/internal/providers"
	"fontpair/internal/services"
	"fontpair/internal/storage/interfaces"
	"fontpair/internal/structures"
)

type App struct {
	WebServer *http.Server
	scheduler interfaces.SchedulerInterface
	license   services.LicenseServiceInterface
	conf      *structures.Config
	logger    providers.Logger
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, license services.LicenseServiceInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      NewHandler(healthController, conf, logger, router, metrics),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: conf.AI.Timeout + 30*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		license:   license,
		conf:      conf,
		logger:    logger,
	}
}

// NewHandler puts the API routes behind request metrics and logging, and
// the infrastructure endpoints beside them. CORS covers everything since
// the browser UI calls from its own origin.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	api := providers.NewMux(router,
		func(next http.Handler) http.Handler { return providers.MetricsMiddleware(metrics, next) },
		func(next http.Handler) http.Handler { return providers.RequestLogMiddleware(logger, next) },
	)

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: conf.Cors.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Webhook-Secret"},
		MaxAge:         300,
	}))
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Mount("/", api)
	return mux
}

// Run restores local state, refreshes the license tier and serves until
// SIGINT or SIGTERM. State is flushed after the server drains.
func (app *App) Run() error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	if err := app.scheduler.Restore(); err != nil {
		app.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	app.refreshLicense()

	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", app.conf.WebServer.Host, app.conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		app.scheduler.Stop()
		if perr := app.scheduler.Persist(); perr != nil {
			app.logger.Errorf(providers.TypeApp, "Persist error: %s", perr)
		}
		return fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := app.scheduler.Persist(); err != nil {
		return err
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// refreshLicense asks the backend whether this device is already licensed.
// Failures keep the cached tier.
func (app *App) refreshLicense() {
	if !app.license.Configured() {
		return
	}
	timeout := app.conf.License.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	result := app.license.CheckActivationStatus(ctx)
	app.logger.Infof(providers.TypeApp, "License activation check: %s", result.ResultCode())
}
