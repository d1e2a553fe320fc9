package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/assistant"
	"github.com/Zikrig/health/internal/models"
	"github.com/Zikrig/health/internal/session"
)

const historyLimit = 10

// feedbackMilestones — номера вопросов, после которых предлагаем оставить отзыв.
var feedbackMilestones = map[int]bool{1: true, 3: true, 30: true}

// HandleMessage — текстовое сообщение вне команд. Потерянная сессия
// (рестарт процесса) восстанавливается из профиля без повторной
// регистрации.
func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	s := h.Sessions.Get(userID)
	if s == nil || s.State == models.StateNone {
		profile, err := h.Store.GetProfile(ctx, userID)
		if err != nil {
			h.Log.Error("не удалось восстановить сессию",
				zap.Int64("user_id", userID), zap.Error(err))
			h.send(chatID, textTryLater)
			return
		}
		if profile == nil {
			h.send(chatID, textStartHint)
			return
		}
		s = h.Sessions.Ensure(userID)
		s.State = models.StateMainMenu
		s.Name = profile.Name
		s.Period = profile.Period
	}

	switch s.State {
	case models.StateCollectingName:
		h.handleName(ctx, msg, s)
	case models.StateCollectingPeriod:
		h.handlePeriod(ctx, msg, s)
	case models.StateMainMenu:
		h.handleMain(ctx, msg, s)
	case models.StateAwaitingQuestion:
		h.handleAwaitingQuestion(ctx, msg, s)
	case models.StateAwaitingFeedback:
		h.handleFeedback(ctx, msg, s)
	case models.StateAdminBroadcast:
		h.handleBroadcastPayload(ctx, msg, s)
	default:
		h.send(chatID, textStartHint)
	}
}

func (h *Handler) handleName(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		h.send(msg.Chat.ID, textResendAsText)
		return
	}

	err := h.Store.UpsertUser(ctx, msg.From.ID, msg.From.UserName, fullName(msg.From), name)
	if err != nil {
		h.Log.Error("не удалось сохранить пользователя",
			zap.Int64("user_id", msg.From.ID), zap.Error(err))
		h.send(msg.Chat.ID, textTryLater)
		return
	}

	s.Name = name
	s.State = models.StateCollectingPeriod
	h.sendWithMarkup(msg.Chat.ID, fmt.Sprintf(textAskPeriodFmt, name), periodKeyboard())
}

// handlePeriod сохраняет период как есть: нераспознанный текст становится
// свободной меткой, приветствие для него не подбирается.
func (h *Handler) handlePeriod(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	period := strings.TrimSpace(msg.Text)
	if period == "" {
		h.send(msg.Chat.ID, textResendAsText)
		return
	}

	if err := h.Store.SetPeriod(ctx, msg.From.ID, period); err != nil {
		h.Log.Error("не удалось сохранить период",
			zap.Int64("user_id", msg.From.ID), zap.Error(err))
		h.send(msg.Chat.ID, textTryLater)
		return
	}

	s.Period = period
	s.State = models.StateMainMenu

	if welcome, ok := periodTexts[period]; ok {
		h.send(msg.Chat.ID, welcome)
	}
	h.sendWithMarkup(msg.Chat.ID, textMenuReady, mainMenuKeyboard())
}

// handleMain: кнопки меню обрабатываются по точному совпадению метки,
// любой другой текст считается вопросом.
func (h *Handler) handleMain(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	switch msg.Text {
	case btnAsk:
		s.State = models.StateAwaitingQuestion
		h.send(msg.Chat.ID, textQuestionHint)
	case btnMaterials:
		h.sendWithMarkup(msg.Chat.ID, textMaterials, materialsKB)
	case btnSupport:
		enabled, err := h.Store.DailySupportEnabled(ctx, msg.From.ID)
		if err != nil {
			h.Log.Error("не удалось прочитать флаг поддержки",
				zap.Int64("user_id", msg.From.ID), zap.Error(err))
			h.send(msg.Chat.ID, textTryLater)
			return
		}
		h.sendWithMarkup(msg.Chat.ID, textSupportAsk, supportKeyboard(enabled))
	default:
		h.answerQuestion(ctx, msg, s)
	}
}

// handleAwaitingQuestion: кнопка меню возвращает в меню, любой другой
// текст — вопрос. Состояние ожидания сохраняется, уточняющие вопросы
// не требуют повторного выбора пункта меню.
func (h *Handler) handleAwaitingQuestion(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	switch msg.Text {
	case btnAsk, btnMaterials, btnSupport:
		s.State = models.StateMainMenu
		h.handleMain(ctx, msg, s)
	default:
		h.answerQuestion(ctx, msg, s)
	}
}

// answerQuestion — полный конвейер ответа: проверка триггеров, счётчик,
// история, запрос к модели, уведомление администраторов.
func (h *Handler) answerQuestion(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	question := strings.TrimSpace(msg.Text)
	if question == "" {
		h.send(chatID, textResendAsText)
		return
	}

	// Тревожный симптом: счётчик не растёт, история не пишется.
	if h.Filter.Contains(question) {
		h.sendUrgent(chatID)
		return
	}

	count, err := h.Store.IncrementQuestionCount(ctx, userID)
	if err != nil {
		h.Log.Error("не удалось увеличить счётчик вопросов",
			zap.Int64("user_id", userID), zap.Error(err))
		h.send(chatID, textTryLater)
		return
	}

	history, err := h.Store.RecentHistory(ctx, userID, historyLimit)
	if err != nil {
		// Ответ без контекста лучше отказа.
		h.Log.Warn("не удалось прочитать историю",
			zap.Int64("user_id", userID), zap.Error(err))
		history = nil
	}

	if _, err := h.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.Log.Debug("не удалось отправить индикатор набора", zap.Error(err))
	}

	answer, err := h.Assist.Ask(ctx, question, s.Name, s.Period, history)
	if err != nil {
		if errors.Is(err, assistant.ErrFlagged) {
			h.sendUrgent(chatID)
			return
		}
		h.Log.Error("шлюз модели вернул ошибку",
			zap.Int64("user_id", userID), zap.Error(err))
		h.send(chatID, textTryLater)
		return
	}

	if err := h.Store.AppendHistory(ctx, userID, "user", question); err != nil {
		h.Log.Warn("не удалось сохранить реплику пользователя",
			zap.Int64("user_id", userID), zap.Error(err))
	}
	if err := h.Store.AppendHistory(ctx, userID, "assistant", answer); err != nil {
		h.Log.Warn("не удалось сохранить реплику ассистента",
			zap.Int64("user_id", userID), zap.Error(err))
	}

	s.LastQuestion = question
	s.LastAnswer = answer

	if feedbackMilestones[count] {
		h.sendWithMarkup(chatID, answer+textDisclaimer, feedbackKB)
	} else {
		h.sendWithMarkup(chatID, answer+textDisclaimer, mainMenuKeyboard())
	}

	h.notifyAdmins(fmt.Sprintf(
		"❓ Вопрос #%d\nОт: %s (@%s)\nПериод: %s\n\nВопрос: %s\n\nОтвет: %s",
		count, fullName(msg.From), msg.From.UserName, s.Period, question, answer))
}

func (h *Handler) handleFeedback(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	feedback := strings.TrimSpace(msg.Text)
	if feedback == "" {
		h.send(msg.Chat.ID, textResendAsText)
		return
	}

	note := fmt.Sprintf("💬 Отзыв от %s (@%s), период: %s\n%s",
		fullName(msg.From), msg.From.UserName, s.Period, feedback)
	if s.LastQuestion != "" {
		note += fmt.Sprintf("\n\nПоследний вопрос: %s\nПоследний ответ: %s",
			s.LastQuestion, s.LastAnswer)
	}
	h.notifyAdmins(note)

	s.State = models.StateMainMenu
	h.sendWithMarkup(msg.Chat.ID, textFeedbackThanks, mainMenuKeyboard())
}

// handleBroadcastPayload копирует сообщение администратора всем
// пользователям. Ошибка доставки одному получателю не прерывает рассылку.
func (h *Handler) handleBroadcastPayload(ctx context.Context, msg *tgbotapi.Message, s *session.Session) {
	s.State = models.StateMainMenu

	recipients, err := h.Store.AllUserIDs(ctx)
	if err != nil {
		h.Log.Error("не удалось получить список получателей", zap.Error(err))
		h.send(msg.Chat.ID, textTryLater)
		return
	}

	var delivered, failed int
	for _, id := range recipients {
		copyMsg := tgbotapi.NewCopyMessage(id, msg.Chat.ID, msg.MessageID)
		if _, err := h.Bot.Request(copyMsg); err != nil {
			failed++
			h.Log.Warn("не удалось доставить рассылку",
				zap.Int64("user_id", id), zap.Error(err))
			continue
		}
		delivered++
	}

	h.sendWithMarkup(msg.Chat.ID,
		fmt.Sprintf(textBroadcastTallyFmt, delivered, failed, len(recipients)),
		mainMenuKeyboard())
}
