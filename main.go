package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/assistant"
	"github.com/Zikrig/health/internal/config"
	"github.com/Zikrig/health/internal/daily"
	"github.com/Zikrig/health/internal/handlers"
	"github.com/Zikrig/health/internal/logger"
	"github.com/Zikrig/health/internal/safety"
	"github.com/Zikrig/health/internal/scheduler"
	"github.com/Zikrig/health/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("конфигурация: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("логгер: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Connect(ctx, cfg.DBURL)
	if err != nil {
		zl.Fatal("подключение к базе", zap.Error(err))
	}
	defer store.Close()

	catalog, err := daily.Load(cfg.DailyMessages)
	if err != nil {
		zl.Fatal("каталог ежедневных сообщений", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		zl.Fatal("подключение к Telegram", zap.Error(err))
	}
	zl.Info("бот авторизован", zap.String("username", bot.Self.UserName))

	filter := safety.Default()
	assist := assistant.New(assistant.Config{
		URL:    cfg.DeepSeekURL,
		APIKey: cfg.DeepSeekAPIKey,
	}, filter, zl)

	h := handlers.New(bot, store, assist, filter, cfg.Admins, zl)

	sched, err := scheduler.Start(ctx, scheduler.New(store, catalog, h, zl))
	if err != nil {
		zl.Fatal("планировщик", zap.Error(err))
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	zl.Info("бот запущен")
	for {
		select {
		case <-ctx.Done():
			zl.Info("остановка")
			if err := sched.Shutdown(); err != nil {
				zl.Warn("остановка планировщика", zap.Error(err))
			}
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			go h.HandleUpdate(ctx, upd)
		}
	}
}
