package state

import "sync"

// Chat states
const (
	None            = "none"
	WaitingForValue = "waiting_for_value"
	WaitingForNotes = "waiting_for_notes"
)

// Temp data keys
const (
	KeyEventType = "tipo"
	KeyValue     = "valor"
)

// StateManager keeps the conversation state of each chat.
type StateManager interface {
	SetUserState(chatID int64, state string)
	GetUserState(chatID int64) string
	SetTempData(chatID int64, key string, value string)
	GetTempData(chatID int64, key string) (string, bool)
	ClearTempData(chatID int64)
}

// Manager manages chat states and temporary data in memory
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
	}
}

// SetUserState sets the state for a chat
func (m *Manager) SetUserState(chatID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[chatID] = state
}

// GetUserState gets the state for a chat
func (m *Manager) GetUserState(chatID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[chatID]
	if !exists {
		return None
	}
	return state
}

// SetTempData sets temporary data for a chat
func (m *Manager) SetTempData(chatID int64, key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[chatID] == nil {
		m.tempData[chatID] = make(map[string]string)
	}
	m.tempData[chatID][key] = value
}

// GetTempData gets temporary data for a chat
func (m *Manager) GetTempData(chatID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.tempData[chatID][key]
	return value, exists
}

// ClearTempData clears all temporary data for a chat
func (m *Manager) ClearTempData(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, chatID)
}

// Reset returns a chat to the idle state.
func Reset(m StateManager, chatID int64) {
	m.SetUserState(chatID, None)
	m.ClearTempData(chatID)
}
