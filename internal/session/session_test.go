package session

import (
	"sync"
	"testing"

	"github.com/Zikrig/health/internal/models"
)

func TestEnsureCreatesOnce(t *testing.T) {
	m := NewManager()

	s1 := m.Ensure(7)
	s1.State = models.StateMainMenu
	s2 := m.Ensure(7)

	if s1 != s2 {
		t.Fatal("Ensure должен возвращать ту же сессию")
	}
	if m.Get(7) != s1 {
		t.Fatal("Get должен видеть созданную сессию")
	}
}

func TestDropForgetsSession(t *testing.T) {
	m := NewManager()
	m.Ensure(7)
	m.Drop(7)

	if m.Get(7) != nil {
		t.Fatal("после Drop сессии быть не должно")
	}
}

func TestLockSerializesPerUser(t *testing.T) {
	m := NewManager()

	const n = 50
	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock(7)
			defer unlock()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("одновременно внутри секции было %d горутин", maxActive)
	}
}

func TestLockIndependentUsers(t *testing.T) {
	m := NewManager()

	unlockA := m.Lock(1)
	done := make(chan struct{})
	go func() {
		unlockB := m.Lock(2)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}
