package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/daily"
	"github.com/Zikrig/health/internal/storage"
)

// Sender отправляет текст в чат. Реализуется обработчиками бота.
type Sender interface {
	SendText(chatID int64, text string) error
}

// Dispatcher рассылает утреннее сообщение подписанным пользователям.
type Dispatcher struct {
	Store   storage.Store
	Catalog *daily.Catalog
	Sender  Sender
	Log     *zap.Logger
}

func New(store storage.Store, catalog *daily.Catalog, sender Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{Store: store, Catalog: catalog, Sender: sender, Log: log}
}

// SendDaily отправляет сообщение дня всем подписанным. Все получатели
// одного дня получают один и тот же текст; ошибка доставки одному не
// прерывает рассылку.
func (d *Dispatcher) SendDaily(ctx context.Context, now time.Time) (sent, failed int) {
	ids, err := d.Store.DailySupportUserIDs(ctx)
	if err != nil {
		d.Log.Error("не удалось получить список подписчиков", zap.Error(err))
		return 0, 0
	}

	text := d.Catalog.MessageFor(now)
	for _, id := range ids {
		if err := d.Sender.SendText(id, text); err != nil {
			failed++
			d.Log.Warn("не удалось доставить сообщение дня",
				zap.Int64("user_id", id), zap.Error(err))
			continue
		}
		sent++
	}

	d.Log.Info("рассылка дня завершена",
		zap.Int("sent", sent), zap.Int("failed", failed))
	return sent, failed
}

// Start регистрирует ежедневную задачу на 09:00 локального времени
// процесса и запускает планировщик.
func Start(ctx context.Context, d *Dispatcher) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("создание планировщика: %w", err)
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0))),
		gocron.NewTask(func() {
			d.SendDaily(ctx, time.Now())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("регистрация задачи: %w", err)
	}

	s.Start()
	return s, nil
}
