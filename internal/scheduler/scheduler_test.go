package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Zikrig/health/internal/daily"
	"github.com/Zikrig/health/internal/storage"
)

// subscriberStore реализует только выборку подписчиков; остальные методы
// не вызываются рассыльщиком.
type subscriberStore struct {
	storage.Store
	ids []int64
	err error
}

func (s *subscriberStore) DailySupportUserIDs(context.Context) ([]int64, error) {
	return s.ids, s.err
}

type recordingSender struct {
	sent   map[int64]string
	failID int64
}

func (r *recordingSender) SendText(chatID int64, text string) error {
	if chatID == r.failID {
		return errors.New("blocked")
	}
	r.sent[chatID] = text
	return nil
}

func testCatalog() *daily.Catalog {
	return &daily.Catalog{Themes: []daily.Theme{
		{Name: "Спокойствие", Messages: []string{"с1", "с2"}},
		{Name: "Забота", Messages: []string{"з1"}},
	}}
}

func TestSendDailyFanOut(t *testing.T) {
	store := &subscriberStore{ids: []int64{1, 2, 3}}
	sender := &recordingSender{sent: make(map[int64]string), failID: 2}
	d := New(store, testCatalog(), sender, zap.NewNop())

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sent, failed := d.SendDaily(context.Background(), now)

	if sent != 2 || failed != 1 {
		t.Fatalf("sent=%d failed=%d", sent, failed)
	}
	want := testCatalog().MessageFor(now)
	for _, id := range []int64{1, 3} {
		if sender.sent[id] != want {
			t.Fatalf("получатель %d получил %q, ожидалось %q", id, sender.sent[id], want)
		}
	}
	if _, ok := sender.sent[2]; ok {
		t.Fatal("заблокированный получатель не должен числиться доставленным")
	}
}

func TestSendDailySameTextForAll(t *testing.T) {
	store := &subscriberStore{ids: []int64{10, 20}}
	sender := &recordingSender{sent: make(map[int64]string)}
	d := New(store, testCatalog(), sender, zap.NewNop())

	d.SendDaily(context.Background(), time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))

	if sender.sent[10] != sender.sent[20] {
		t.Fatalf("тексты различаются: %q и %q", sender.sent[10], sender.sent[20])
	}
}

func TestSendDailyStoreFailure(t *testing.T) {
	store := &subscriberStore{err: errors.New("boom")}
	sender := &recordingSender{sent: make(map[int64]string)}
	d := New(store, testCatalog(), sender, zap.NewNop())

	sent, failed := d.SendDaily(context.Background(), time.Now())
	if sent != 0 || failed != 0 || len(sender.sent) != 0 {
		t.Fatal("при ошибке хранилища рассылка не выполняется")
	}
}
