package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"huonganh/internal/bot"
	"huonganh/internal/config"
	"huonganh/internal/database"
	"huonganh/internal/events"
	"huonganh/internal/logging"
	"huonganh/internal/metrics"
	"huonganh/internal/models"
	"huonganh/internal/notify"
	"huonganh/internal/repository"
	"huonganh/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, seed, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Msg("database init failed")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	contextRepo := initContextRepository(ctx, cfg, &logger)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("bot api init failed")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	var smsSender notify.SMSSender
	if cfg.SMS.Enabled {
		smsSender = notify.NewSMSClient(cfg.SMS, &logger)
	}
	telegramSink := notify.NewTelegramSink(botAPI, &logger)
	notifier := notify.NewNotifier(telegramSink, smsSender, cfg.Telegram.AdminChatID, cfg.Contact.Hotline, &logger)

	eventBus := events.NewEventBus()

	bookingService := service.NewBookingService(db, notifier, eventBus, &logger)
	catalogService := service.NewCatalogService(db, &logger)
	statsService := service.NewStatsService(db)

	if err := catalogService.SeedServices(ctx, seed); err != nil {
		logger.Error().Err(err).Msg("catalog seed failed")
		return err
	}

	exporter := bot.NewExporter(db, cfg.Exports.Path, &logger)
	handler := bot.NewHandler(
		botAPI, bookingService, db, contextRepo, statsService, exporter,
		cfg.Telegram.AdminChatID,
		cfg.Bot.RateLimitMessages,
		time.Duration(cfg.Bot.RateLimitWindow)*time.Second,
		&logger,
	)

	telegramBot := bot.NewBot(botAPI, handler, &logger)

	logger.Info().Msg("bot started")
	telegramBot.Start(ctx)

	logger.Info().Msg("shutdown complete")
	return nil
}

func loadConfigAndLogger() (*config.Config, []models.Service, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}
	logger := logging.Component(baseLogger, "bot-main")

	seed, err := loadServicesSeed(&logger)
	if err != nil {
		return nil, nil, zerolog.Logger{}, closer, err
	}

	return cfg, seed, logger, closer, nil
}

// loadServicesSeed reads the catalog seed used on first start, when the
// services table is still empty.
func loadServicesSeed(logger *zerolog.Logger) ([]models.Service, error) {
	servicesPath := os.Getenv("SERVICES_PATH")
	if servicesPath == "" {
		servicesPath = "configs/services.yaml"
	}

	data, err := os.ReadFile(servicesPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", servicesPath).Msg("services seed file missing, skipping")
			return nil, nil
		}
		logger.Error().Err(err).Msgf("failed to read %s", servicesPath)
		return nil, err
	}

	var seedConfig struct {
		Services []models.Service `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &seedConfig); err != nil {
		logger.Error().Err(err).Msg("failed to parse services.yaml")
		return nil, err
	}

	if err := config.ValidateServices(seedConfig.Services); err != nil {
		logger.Error().Err(err).Msg("services seed validation failed")
		return nil, err
	}

	return seedConfig.Services, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("failed to create database directory")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("failed to create exports directory")
		return err
	}
	return nil
}

func initContextRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *repository.FailoverContextRepository {
	var primary *repository.RedisContextRepository
	if cfg.Redis.Address != "" {
		client := repository.NewRedisClient(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unavailable")
		}
		primary = repository.NewRedisContextRepository(client)
	} else {
		primary = repository.NewRedisContextRepository(nil)
	}

	fallback := repository.NewMemoryContextRepository()
	return repository.NewFailoverContextRepository(primary, fallback, logger)
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
