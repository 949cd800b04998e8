package states

import (
	"fmt"
	"sync"
	"time"

	"amele-bot/internal/telegram/flows"
)

type entry struct {
	state     State
	data      any
	expiresAt time.Time
}

// Manager управляет состояниями диалогов в памяти.
// Состояния живут не дольше ttl, просроченные убирает Sweep.
type Manager struct {
	mu      sync.RWMutex
	entries map[int64]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewManager создает новый менеджер состояний. ttl <= 0 отключает истечение.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		entries: make(map[int64]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetState получает текущее состояние чата
func (m *Manager) GetState(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.entries[chatID]
	if !exists || m.expired(e) {
		return StateNone
	}
	return e.state
}

// GetData получает данные флоу чата
func (m *Manager) GetData(chatID int64) any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.entries[chatID]
	if !exists || m.expired(e) {
		return nil
	}
	return e.data
}

// SetState устанавливает состояние чата. data == nil сохраняет прежние данные.
func (m *Manager) SetState(chatID int64, state State, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[chatID]
	if !exists || m.expired(e) {
		e = entry{}
	}
	e.state = state
	if data != nil {
		e.data = data
	}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[chatID] = e
}

// Clear очищает состояние чата
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, chatID)
}

// Sweep удаляет просроченные состояния и возвращает их количество.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for chatID, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, chatID)
			removed++
		}
	}
	return removed
}

// GetNewOrderData получает данные флоу оформления заказа
func (m *Manager) GetNewOrderData(chatID int64) (*flows.NewOrderFlowData, error) {
	data := m.GetData(chatID)
	if data == nil {
		return nil, fmt.Errorf("no data for chat %d", chatID)
	}

	flowData, ok := data.(*flows.NewOrderFlowData)
	if !ok {
		return nil, fmt.Errorf("invalid data type for chat %d", chatID)
	}
	return flowData, nil
}

// GetOrderAdminData получает данные админского флоу
func (m *Manager) GetOrderAdminData(chatID int64) (*flows.OrderAdminFlowData, error) {
	data := m.GetData(chatID)
	if data == nil {
		return nil, fmt.Errorf("no data for chat %d", chatID)
	}

	flowData, ok := data.(*flows.OrderAdminFlowData)
	if !ok {
		return nil, fmt.Errorf("invalid data type for chat %d", chatID)
	}
	return flowData, nil
}

func (m *Manager) expired(e entry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}
