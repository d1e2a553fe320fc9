package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/models"
)

// HandleCommand — /start, /daily и административные /stats, /broadcast.
func (h *Handler) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "daily":
		h.handleDaily(ctx, msg)
	case "stats":
		h.handleStats(ctx, msg)
	case "broadcast":
		h.handleBroadcastCommand(ctx, msg)
	default:
		h.send(msg.Chat.ID, textStartHint)
	}
}

// handleStart: существующий профиль сразу возвращается в главное меню,
// регистрация не повторяется; новый пользователь начинает с имени.
func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	profile, err := h.Store.GetProfile(ctx, userID)
	if err != nil {
		h.Log.Error("не удалось прочитать профиль", zap.Int64("user_id", userID), zap.Error(err))
		h.send(chatID, textTryLater)
		return
	}

	s := h.Sessions.Ensure(userID)
	if profile != nil {
		s.State = models.StateMainMenu
		s.Name = profile.Name
		s.Period = profile.Period
		h.sendWithMarkup(chatID, fmt.Sprintf(textWelcomeBackFmt, profile.Name), mainMenuKeyboard())
		return
	}

	s.State = models.StateCollectingName
	h.sendWithMarkup(chatID, textGreeting, tgbotapi.NewRemoveKeyboard(true))
}

// handleDaily показывает переключатель ежедневной поддержки.
func (h *Handler) handleDaily(ctx context.Context, msg *tgbotapi.Message) {
	enabled, err := h.Store.DailySupportEnabled(ctx, msg.From.ID)
	if err != nil {
		h.Log.Error("не удалось прочитать флаг поддержки",
			zap.Int64("user_id", msg.From.ID), zap.Error(err))
		h.send(msg.Chat.ID, textTryLater)
		return
	}
	h.sendWithMarkup(msg.Chat.ID, textSupportAsk, supportKeyboard(enabled))
}

func (h *Handler) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	if !h.isAdmin(msg.From.ID) {
		return
	}

	st, err := h.Store.Stats(ctx)
	if err != nil {
		h.Log.Error("не удалось собрать статистику", zap.Error(err))
		h.send(msg.Chat.ID, textTryLater)
		return
	}

	lines := []string{
		"📊 Статистика бота:",
		fmt.Sprintf("Всего пользователей: %d", st.UserCount),
		fmt.Sprintf("Задано вопросов: %d", st.QuestionCount),
		"",
		"📈 Распределение по периодам:",
	}
	for _, ps := range st.Periods {
		lines = append(lines, fmt.Sprintf("• %s: %d пользователей, %d вопросов",
			ps.Period, ps.UserCount, ps.QuestionCount))
	}
	h.send(msg.Chat.ID, strings.Join(lines, "\n"))
}

// handleBroadcastCommand переводит администратора в режим рассылки:
// следующее его сообщение любого типа уйдёт всем пользователям.
// Состояние пер-пользовательское — чужие сообщения им не захватываются.
func (h *Handler) handleBroadcastCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !h.isAdmin(msg.From.ID) {
		return
	}

	s := h.Sessions.Ensure(msg.From.ID)
	s.State = models.StateAdminBroadcast
	h.sendWithMarkup(msg.Chat.ID, textBroadcastAsk, cancelBroadcastKB)
}
