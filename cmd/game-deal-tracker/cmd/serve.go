package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rmarques/game-deal-tracker/internal/api/handlers"
	"github.com/rmarques/game-deal-tracker/internal/api/middleware"
	"github.com/rmarques/game-deal-tracker/internal/catalog"
	"github.com/rmarques/game-deal-tracker/internal/config"
	"github.com/rmarques/game-deal-tracker/internal/engine"
	"github.com/rmarques/game-deal-tracker/internal/epic"
	"github.com/rmarques/game-deal-tracker/internal/identity"
	"github.com/rmarques/game-deal-tracker/internal/notify"
	"github.com/rmarques/game-deal-tracker/internal/provider"
	"github.com/rmarques/game-deal-tracker/internal/reviews"
	"github.com/rmarques/game-deal-tracker/internal/steam"
	"github.com/rmarques/game-deal-tracker/internal/store"
	"github.com/rmarques/game-deal-tracker/pkg/llm"
	"github.com/rmarques/game-deal-tracker/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and discount scan scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(),
		store.WithPoolSize(int32(cfg.Database.PoolSize)),
	)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	steamClient := steam.NewHTTPClient(
		steam.WithSearchURL(cfg.Providers.Steam.SearchURL),
		steam.WithDetailsURL(cfg.Providers.Steam.DetailsURL),
		steam.WithCountry(cfg.Providers.Steam.Country),
		steam.WithRateLimiter(newRateLimiter(cfg.Providers.Steam.RateLimit)),
	)
	epicClient := epic.NewGraphQLClient(
		epic.WithEndpoint(cfg.Providers.Epic.Endpoint),
		epic.WithLocale(cfg.Providers.Epic.Locale, countryFromLocale(cfg.Providers.Epic.Locale)),
		epic.WithRateLimiter(newRateLimiter(cfg.Providers.Epic.RateLimit)),
	)

	catalogSvc := catalog.NewService(steamClient, epicClient, st, catalog.WithLogger(log))

	backend, err := buildLLMBackend(&cfg.LLM)
	if err != nil {
		return err
	}
	if backend != nil {
		log.Info("review generation enabled", "backend", backend.Name())
	}
	reviewSvc := reviews.NewService(st, backend, reviews.WithLogger(log))

	var notifier notify.Notifier
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
		log.Info("discord notifications enabled")
	} else {
		notifier = notify.NewNoOpNotifier(log)
	}

	eng := engine.NewEngine(st, catalogSvc, identity.NewStoreProvider(st), notifier,
		engine.WithLogger(log),
		engine.WithUserWorkers(cfg.Schedule.UserWorkers),
		engine.WithEntryWorkers(cfg.Schedule.EntryWorkers),
	)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.ScanInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := newRouter(st, catalogSvc, reviewSvc, eng, log)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func newRouter(
	st store.Store,
	catalogSvc *catalog.Service,
	reviewSvc *reviews.Service,
	eng *engine.Engine,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.UserContext())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	games := handlers.NewGameHandler(catalogSvc)
	api.GET("/games", games.Search)
	api.GET("/games/:identifier", games.Get)

	wishlist := handlers.NewWishlistHandler(st, catalogSvc)
	wl := api.Group("/wishlist", middleware.RequireUser())
	wl.GET("", wishlist.List)
	wl.POST("", wishlist.Add)
	wl.DELETE("", wishlist.Remove)

	rev := handlers.NewReviewHandler(reviewSvc)
	api.GET("/reviews/:game", rev.Get)
	api.POST("/reviews", rev.Create)
	api.POST("/reviews/generate", rev.Generate)
	api.PUT("/reviews/:id", rev.Update)
	api.DELETE("/reviews/:id", rev.Delete)

	scan := handlers.NewScanHandler(eng)
	api.POST("/scan", scan.Trigger)

	return e
}

func buildLLMBackend(cfg *config.LLMConfig) (llm.Backend, error) {
	hc := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case "none", "":
		return nil, nil
	case "ollama":
		return llm.NewOllamaBackend(cfg.Ollama.Endpoint, cfg.Ollama.Model,
			llm.WithOllamaHTTPClient(hc),
		), nil
	case "anthropic":
		opts := []llm.AnthropicOption{llm.WithAnthropicHTTPClient(hc)}
		if cfg.Anthropic.Model != "" {
			opts = append(opts, llm.WithAnthropicModel(cfg.Anthropic.Model))
		}
		return llm.NewAnthropicBackend(opts...), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
	}
}

func newRateLimiter(cfg config.RateLimitConfig) *provider.RateLimiter {
	return provider.NewRateLimiter(cfg.PerSecond, cfg.Burst, cfg.DailyLimit)
}

// countryFromLocale derives the storefront country from a BCP 47 locale,
// e.g. "pt-BR" yields "BR".
func countryFromLocale(locale string) string {
	if _, country, ok := strings.Cut(locale, "-"); ok {
		return country
	}
	return strings.ToUpper(locale)
}
