package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/models"
	"github.com/Zikrig/health/internal/safety"
)

// ErrFlagged — вопрос задел триггерный стем; запрос к модели не выполнялся.
// Вызывающая сторона показывает баннер о срочной помощи вместо ответа.
var ErrFlagged = errors.New("assistant: question flagged by safety check")

// FallbackAnswer возвращается вместо ответа при любой транспортной ошибке
// шлюза. Осознанная деградация: пользователь видит извинение, не ошибку.
const FallbackAnswer = "Извини, у меня временные технические трудности. Попробуй спросить позже."

const (
	modelName   = "deepseek-chat"
	temperature = 0.3
	maxTokens   = 500
	historyCap  = 10
)

const systemPromptFmt = `Ты - дружелюбный ИИ-помощник для беременных женщин и молодых мам по имени Мила.

Важные правила:
- НЕ ставь диагнозы и НЕ давай конкретных медицинских рекомендаций
- При любых серьезных симптомах обязательно рекомендуй обратиться к врачу
- Всегда напоминай, что ты не заменяешь медицинского специалиста
- Отвечай дружелюбно, с поддержкой, как подруга
- Отвечай коротко, не здоровайся повторно: диалог уже идёт
- Если уместно, подсказывай кнопки "Полезные материалы" и "Задать вопрос"
- Если не уверен в ответе - честно признавайся и советуй консультацию с врачом

Пользователь: %s, период: %s`

type Config struct {
	URL    string
	APIKey string
}

// Client — шлюз к совместимому с DeepSeek chat-completion endpoint.
type Client struct {
	cfg    Config
	http   *http.Client
	filter *safety.Filter
	log    *zap.Logger
}

func New(cfg Config, filter *safety.Filter, log *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
		filter: filter,
		log:    log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask выполняет ровно один запрос к модели: системная инструкция с именем
// и периодом, затем до historyCap последних реплик в хронологическом
// порядке, затем текущий вопрос.
func (c *Client) Ask(ctx context.Context, question, name, period string, history []models.HistoryMessage) (string, error) {
	if c.filter.MatchesWordStart(question) {
		return "", ErrFlagged
	}

	if len(history) > historyCap {
		history = history[len(history)-historyCap:]
	}

	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{
		Role:    "system",
		Content: fmt.Sprintf(systemPromptFmt, name, period),
	})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: question})

	body, err := json.Marshal(chatRequest{
		Model:       modelName,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		c.log.Warn("не удалось собрать запрос к модели", zap.Error(err))
		return FallbackAnswer, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return FallbackAnswer, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("запрос к модели не прошёл", zap.Error(err))
		return FallbackAnswer, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("не удалось прочитать ответ модели", zap.Error(err))
		return FallbackAnswer, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("модель вернула ошибку",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return FallbackAnswer, nil
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
		c.log.Warn("некорректный ответ модели", zap.Error(err))
		return FallbackAnswer, nil
	}
	return parsed.Choices[0].Message.Content, nil
}
