package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/models"
)

// HandleCallback — нажатие inline-кнопки. Callback подтверждается всегда,
// иначе клиент показывает бесконечный спиннер.
func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := h.Bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.Log.Debug("не удалось подтвердить callback", zap.Error(err))
	}
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	userID := cq.From.ID

	switch cq.Data {
	case cbFeedback:
		s := h.Sessions.Ensure(userID)
		s.State = models.StateAwaitingFeedback
		// Кнопка одноразовая: убираем её из сообщения.
		edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cq.Message.MessageID, emptyInlineKB)
		if _, err := h.Bot.Request(edit); err != nil {
			h.Log.Debug("не удалось убрать клавиатуру", zap.Error(err))
		}
		h.send(chatID, textFeedbackAsk)

	case cbDailyOn:
		if err := h.Store.SetDailySupport(ctx, userID, true); err != nil {
			h.Log.Error("не удалось включить поддержку",
				zap.Int64("user_id", userID), zap.Error(err))
			h.send(chatID, textTryLater)
			return
		}
		h.send(chatID, textSupportOn)

	case cbDailyOff:
		if err := h.Store.SetDailySupport(ctx, userID, false); err != nil {
			h.Log.Error("не удалось выключить поддержку",
				zap.Int64("user_id", userID), zap.Error(err))
			h.send(chatID, textTryLater)
			return
		}
		h.send(chatID, textSupportOff)

	case cbCancelBroadcast:
		s := h.Sessions.Get(userID)
		if s != nil && s.State == models.StateAdminBroadcast {
			s.State = models.StateMainMenu
		}
		h.sendWithMarkup(chatID, textBroadcastCancelled, mainMenuKeyboard())
	}
}
