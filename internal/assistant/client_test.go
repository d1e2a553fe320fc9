package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/models"
	"github.com/Zikrig/health/internal/safety"
)

func newTestClient(url string) *Client {
	return New(Config{URL: url, APIKey: "test-key"}, safety.Default(), zap.NewNop())
}

func okResponse(answer string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, answer)
}

func TestAsk_Success(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, okResponse("Всё хорошо, отдыхай побольше."))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	answer, err := c.Ask(context.Background(), "Как лучше спать в третьем триместре?", "Анна", "Беременна", nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Всё хорошо, отдыхай побольше." {
		t.Fatalf("answer = %q", answer)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != modelName || gotReq.Temperature != temperature || gotReq.MaxTokens != maxTokens {
		t.Errorf("параметры запроса: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("ожидались system + вопрос, получили %d сообщений", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("роли сообщений: %+v", gotReq.Messages)
	}
}

func TestAsk_HistoryBounded(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, okResponse("ок"))
	}))
	defer srv.Close()

	var history []models.HistoryMessage
	for i := 0; i < 12; i++ {
		history = append(history,
			models.HistoryMessage{Role: "user", Content: fmt.Sprintf("в%d", i)},
			models.HistoryMessage{Role: "assistant", Content: fmt.Sprintf("о%d", i)},
		)
	}

	c := newTestClient(srv.URL)
	if _, err := c.Ask(context.Background(), "вопрос", "Анна", "Беременна", history); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	// system + 10 последних реплик + вопрос
	if len(gotReq.Messages) != 12 {
		t.Fatalf("сообщений в запросе %d, ожидалось 12", len(gotReq.Messages))
	}
	// история обрезается с головы: первая реплика — хвост старой истории
	if gotReq.Messages[1].Content != "в7" {
		t.Errorf("история обрезана не с той стороны: %q", gotReq.Messages[1].Content)
	}
	if gotReq.Messages[10].Content != "о11" {
		t.Errorf("последняя реплика истории: %q", gotReq.Messages[10].Content)
	}
}

func TestAsk_FlaggedSkipsHTTP(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, okResponse("не должно дойти"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	answer, err := c.Ask(context.Background(), "у меня температура и рвота", "Анна", "Беременна", nil)
	if !errors.Is(err, ErrFlagged) {
		t.Fatalf("ожидался ErrFlagged, получили answer=%q err=%v", answer, err)
	}
	if calls.Load() != 0 {
		t.Fatal("при срабатывании фильтра HTTP-запрос выполняться не должен")
	}
}

func TestAsk_TransportFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // соединение гарантированно не установится

	c := newTestClient(srv.URL)
	answer, err := c.Ask(context.Background(), "обычный вопрос", "Анна", "Беременна", nil)
	if err != nil {
		t.Fatalf("транспортная ошибка не должна пробрасываться: %v", err)
	}
	if answer != FallbackAnswer {
		t.Fatalf("answer = %q, want fallback", answer)
	}
}

func TestAsk_BadStatusAndBadJSONFallBack(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"status 500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"обрезанный json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[`)
		},
		"пустой choices": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[]}`)
		},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			c := newTestClient(srv.URL)
			answer, err := c.Ask(context.Background(), "обычный вопрос", "Анна", "Беременна", nil)
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if answer != FallbackAnswer {
				t.Fatalf("answer = %q, want fallback", answer)
			}
		})
	}
}
