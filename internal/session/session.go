package session

import (
	"sync"

	"github.com/Zikrig/health/internal/models"
)

// Session — транзиентное состояние диалога одного пользователя.
// Потеря сессии не фатальна: обработчики восстанавливают её из
// долговременного профиля.
type Session struct {
	State        models.State
	Name         string
	Period       string
	LastQuestion string
	LastAnswer   string
}

// Manager хранит сессии и пер-пользовательские мьютексы. Мьютекс
// сериализует обработку событий одного пользователя: инкремент счётчика
// вопросов и проверка порога обратной связи выполняются атомарно
// относительно других событий того же пользователя.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Lock захватывает мьютекс пользователя; возвращает функцию освобождения.
func (m *Manager) Lock(userID int64) func() {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Get возвращает сессию либо nil, если её нет.
func (m *Manager) Get(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Ensure возвращает сессию, создавая пустую при отсутствии.
func (m *Manager) Ensure(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{}
		m.sessions[userID] = s
	}
	return s
}

// Drop удаляет сессию (эквивалент потери состояния при рестарте).
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
