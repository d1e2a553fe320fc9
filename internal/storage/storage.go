package storage

import (
	"context"
	"errors"

	"github.com/Zikrig/health/internal/models"
)

// ErrUnavailable — соединение с хранилищем не удалось получить.
var ErrUnavailable = errors.New("storage: connection unavailable")

// Store — операции хранилища диалогов. Все методы безопасны для
// конкурентных вызовов по разным пользователям; ошибка вызова прерывает
// обработку только текущего события.
type Store interface {
	// UpsertUser создаёт пользователя при первом появлении; при конфликте
	// перезаписывается только имя (повторная регистрация не трогает период
	// и счётчики).
	UpsertUser(ctx context.Context, userID int64, username, fullName, name string) error
	SetPeriod(ctx context.Context, userID int64, period string) error
	// IncrementQuestionCount атомарно увеличивает счётчик и возвращает
	// новое значение.
	IncrementQuestionCount(ctx context.Context, userID int64) (int, error)
	// GetProfile возвращает nil без ошибки, если пользователь не найден.
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	SetDailySupport(ctx context.Context, userID int64, enabled bool) error
	DailySupportEnabled(ctx context.Context, userID int64) (bool, error)
	AppendHistory(ctx context.Context, userID int64, role, content string) error
	// RecentHistory возвращает последние limit реплик от старых к новым.
	RecentHistory(ctx context.Context, userID int64, limit int) ([]models.HistoryMessage, error)
	DailySupportUserIDs(ctx context.Context) ([]int64, error)
	AllUserIDs(ctx context.Context) ([]int64, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Close()
}
