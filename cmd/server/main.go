package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentlite/internal/app"
	"rentlite/internal/domain/schedule"
	"rentlite/internal/infra/akahu"
	"rentlite/internal/infra/config"
	idb "rentlite/internal/infra/database"
	"rentlite/internal/infra/email"
	"rentlite/internal/infra/httpapi"
	"rentlite/internal/infra/logger"
	"rentlite/internal/infra/scheduler"
	"rentlite/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Get().WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	// Initialize Repositories
	propertyRepo := idb.NewPostgresPropertyRepository(db)
	checkRepo := idb.NewPostgresRentCheckRepository(db)
	userRepo := idb.NewPostgresUserRepository(db)
	mainLogger.Info("Repositories initialized.")

	// Aggregator client factory and notification sender
	bankFactory := akahu.NewFactory(userRepo, cfg.AkahuBaseURL)
	emailSender := email.NewSender(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom,
		logger.Get().WithField("component", "email"),
	)

	// Core check service
	calc := schedule.NewCalculator(cfg.DueCutoffHour)
	checkService := app.NewRentCheckService(
		propertyRepo, checkRepo, userRepo, bankFactory, emailSender, calc,
		cfg.SearchWindowDays,
		logger.Get().WithField("component", "check_service"),
	)
	mainLogger.Info("Rent check service initialized.")

	// Optional Telegram channel: alert mirroring plus manual triggers.
	var bot *telebot.Bot
	if cfg.TelegramToken != "" {
		pref := telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) { // Global error handler
				entry := logger.Get().WithField("component", "telebot").WithError(err)
				if c != nil && c.Sender() != nil {
					entry = entry.WithField("sender_id", c.Sender().ID)
				}
				entry.Error("Telegram handler error")
			},
		}
		bot, err = telebot.NewBot(pref)
		if err != nil {
			mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
		}

		checkService.SetMirror(telegram.NewNotifier(bot, cfg.AdminTelegramID, logger.Get().WithField("component", "telegram")))
		telegram.RegisterHandlers(bot, checkService, cfg.AdminTelegramID, logger.Get().WithField("component", "telegram"))
		go bot.Start()
		mainLogger.Info("Telegram alert channel enabled.")
	}

	// Daily batch scheduler
	checkScheduler := scheduler.NewRentCheckScheduler(
		checkService,
		logger.Get().WithField("component", "scheduler"),
		cfg.CheckCronSpec,
	)
	checkScheduler.Start()

	// HTTP trigger API
	server := httpapi.NewServer(
		cfg.HTTPAddr, cfg.CronSecret, checkService,
		logger.Get().WithField("component", "httpapi"),
	)
	go func() {
		if err := server.Start(); err != nil {
			mainLogger.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	mainLogger.Info("Application setup complete. Scheduler and trigger API are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	checkScheduler.Stop()
	if bot != nil {
		bot.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Error("HTTP server shutdown error")
	}
	mainLogger.Info("Application shut down gracefully.")
}
