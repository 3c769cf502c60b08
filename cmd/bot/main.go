package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"babycarebot/internal/bot"
	"babycarebot/internal/cache"
	"babycarebot/internal/config"
	"babycarebot/internal/db"
	"babycarebot/internal/export"
	"babycarebot/internal/reminder"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	// .env is optional; the YAML config may reference its variables.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BABYBOT_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Telegram.BotToken == "" || cfg.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		logger.Fatal().Msg("set telegram.bot_token in config")
	}

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer database.Close()

	var rdb *redis.Client
	var familyCache *cache.FamilyCache
	if cfg.Redis.Enabled && cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		familyCache = cache.New(rdb, cfg.FamilyCacheTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *reminder.Metrics
	if cfg.Monitoring.PrometheusEnabled {
		metrics = reminder.NewMetrics("babycarebot")
	}

	engineCfg := reminder.DefaultConfig()
	engineCfg.ScanInterval = cfg.ScanInterval()
	engineCfg.DrainInterval = cfg.DrainInterval()
	engineCfg.CooldownWindow = cfg.CooldownWindow()
	engineCfg.LedgerRetention = cfg.LedgerRetention()
	if cfg.Reminders.SendRatePerSecond > 0 {
		engineCfg.SendRate = float64(cfg.Reminders.SendRatePerSecond)
	}
	engine := reminder.NewEngine(engineCfg, database, metrics, logger)

	sheetsSvc, err := export.NewSheetsService(ctx, cfg.Export.Credentials, cfg.Export.SheetsID, logger)
	if err != nil {
		logger.Error().Err(err).Msg("sheets export disabled")
	}
	if sheetsSvc != nil {
		go sheetsSvc.Run(ctx, 5*time.Minute, cfg.Location())
	}

	b, err := bot.New(cfg.Telegram.BotToken, database, engine, bot.Options{
		Cache:        familyCache,
		Sheets:       sheetsSvc,
		Admins:       cfg.Admins,
		Location:     cfg.Location(),
		HistoryLimit: cfg.Export.HistoryLimit,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create bot error")
	}
	engine.SetChannel(b.Channel())

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, database, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	engine.Start(ctx)
	defer engine.Stop()

	logger.Info().Msg("baby care bot started")
	b.Start(ctx)
}

func startHealthServer(ctx context.Context, port int, database *db.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := database.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
