package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundilink/internal/api"
	"fundilink/internal/config"
	"fundilink/internal/domain"
	"fundilink/internal/events"
	"fundilink/internal/export"
	"fundilink/internal/logging"
	"fundilink/internal/metrics"
	"fundilink/internal/models"
	"fundilink/internal/notify"
	"fundilink/internal/repository"
	"fundilink/internal/store"
	"fundilink/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go serveMetrics(cfg.Monitoring.PrometheusPort, &logger)
	}

	tasks := worker.NewTasks(time.Duration(cfg.API.TimeoutSeconds)*time.Second, &logger)
	defer tasks.Wait()

	notifier, err := buildNotifier(cfg, &logger)
	if err != nil {
		return err
	}

	drafts := buildDraftRepository(ctx, cfg, &logger)
	client := api.NewClient(cfg.API, &logger)
	bus := events.NewEventBus()

	notifications := store.NewNotificationStore(client, notifier, bus, tasks, &logger)
	bookings := store.NewBookingStore(store.BookingStoreDeps{
		Backend:  client,
		Notifier: notifier,
		Unread:   notifications,
		Bus:      bus,
		Tasks:    tasks,
		Drafts:   drafts,
		UserID:   cfg.Account.UserID,
		Logger:   &logger,
	})

	exportWorker := buildExportWorker(ctx, cfg, &logger)

	dash := &dashboard{
		cfg:           cfg,
		bookings:      bookings,
		notifications: notifications,
		exportWorker:  exportWorker,
		out:           os.Stdout,
		logger:        logger,
	}
	dash.subscribe(bus)

	return dash.loop(ctx)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "dashboard").Logger()

	return cfg, logger, closer, nil
}

func buildNotifier(cfg *config.Config, logger *zerolog.Logger) (domain.Notifier, error) {
	console := notify.NewConsoleNotifier(os.Stdout, logger)
	if !cfg.Telegram.Enabled {
		return console, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	telegram := notify.NewTelegramNotifier(bot, cfg.Telegram.ChatID, logger)
	return notify.Multi{console, telegram}, nil
}

// buildDraftRepository wires Redis-backed drafts with in-memory failover, or
// memory only when Redis is not configured.
func buildDraftRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.DraftRepository {
	ttl := time.Duration(cfg.Dashboard.DraftTTLSeconds) * time.Second
	memory := repository.NewMemoryDraftRepository(ttl)

	if cfg.Redis.Address == "" {
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, drafts stay in memory")
	}
	primary := repository.NewRedisDraftRepository(client, ttl)
	return repository.NewFailoverDraftRepository(primary, memory, logger)
}

// buildExportWorker starts the earnings-sheet sync when Google credentials
// are configured; returns nil otherwise.
func buildExportWorker(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *worker.ExportWorker {
	if cfg.Google.CredentialsFile == "" || cfg.Google.EarningsSpreadsheetID == "" {
		return nil
	}

	writer, err := export.NewSheetsWriter(ctx, cfg.Google.CredentialsFile, cfg.Google.EarningsSpreadsheetID, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Sheets export disabled")
		return nil
	}

	w := worker.NewExportWorker(writer, worker.RetryPolicy{}, logger)
	go w.Start(ctx)
	return w
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

// loop drives the fetch/render cycle. Each cycle cancels the previous
// in-flight fetches the way a page remounting its effects would, so a slow
// response can never clobber a newer one.
func (d *dashboard) loop(ctx context.Context) error {
	interval := time.Duration(d.cfg.Dashboard.RefreshSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var cancelPrev context.CancelFunc
	refresh := func() {
		if cancelPrev != nil {
			cancelPrev()
		}
		fetchCtx, cancel := context.WithCancel(ctx)
		cancelPrev = cancel

		go func() {
			d.bookings.FetchBookings(fetchCtx, models.BookingQuery{
				Page:  1,
				Limit: d.cfg.Dashboard.PageLimit,
			})
			d.bookings.FetchStats(fetchCtx)
			d.notifications.FetchNotifications(fetchCtx, models.NotificationQuery{
				Page:  1,
				Limit: d.cfg.Dashboard.NotificationsPageLimit,
			})
			d.enqueueEarningsExport()
		}()
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			if cancelPrev != nil {
				cancelPrev()
			}
			d.logger.Info().Msg("dashboard stopped")
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}
