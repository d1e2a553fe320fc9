package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/models"
	"github.com/Zikrig/health/internal/safety"
	"github.com/Zikrig/health/internal/session"
	"github.com/Zikrig/health/internal/storage"
)

// Bot — узкий срез *tgbotapi.BotAPI, достаточный обработчикам.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Assistant — шлюз к модели.
type Assistant interface {
	Ask(ctx context.Context, question, name, period string, history []models.HistoryMessage) (string, error)
}

// Handler связывает транспорт, хранилище, сессии и шлюз модели.
type Handler struct {
	Bot      Bot
	Store    storage.Store
	Sessions *session.Manager
	Assist   Assistant
	Filter   *safety.Filter
	Admins   []int64
	Log      *zap.Logger
}

func New(bot Bot, store storage.Store, assist Assistant, filter *safety.Filter, admins []int64, log *zap.Logger) *Handler {
	return &Handler{
		Bot:      bot,
		Store:    store,
		Sessions: session.NewManager(),
		Assist:   assist,
		Filter:   filter,
		Admins:   admins,
		Log:      log,
	}
}

// HandleUpdate — вход одного события. Обработка событий одного
// пользователя сериализована его мьютексом, поэтому вызовы из разных
// горутин безопасны.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		msg := upd.Message
		if msg.From == nil {
			return
		}
		unlock := h.Sessions.Lock(msg.From.ID)
		defer unlock()

		if msg.IsCommand() {
			h.HandleCommand(ctx, msg)
			return
		}
		h.HandleMessage(ctx, msg)

	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		unlock := h.Sessions.Lock(cq.From.ID)
		defer unlock()
		h.HandleCallback(ctx, cq)
	}
}

func (h *Handler) isAdmin(userID int64) bool {
	for _, id := range h.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// SendText реализует scheduler.Sender.
func (h *Handler) SendText(chatID int64, text string) error {
	_, err := h.Bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.Log.Warn("не удалось отправить сообщение",
			zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("не удалось отправить сообщение",
			zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendUrgent — баннер о срочной помощи; клавиатура убирается.
func (h *Handler) sendUrgent(chatID int64) {
	h.sendWithMarkup(chatID, textUrgent, tgbotapi.NewRemoveKeyboard(true))
}

// notifyAdmins рассылает служебное уведомление. Ошибка доставки одному
// администратору не мешает остальным и не влияет на ответ пользователю.
func (h *Handler) notifyAdmins(text string) {
	for _, id := range h.Admins {
		if _, err := h.Bot.Send(tgbotapi.NewMessage(id, text)); err != nil {
			h.Log.Warn("не удалось уведомить администратора",
				zap.Int64("admin_id", id), zap.Error(err))
		}
	}
}

func fullName(u *tgbotapi.User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
