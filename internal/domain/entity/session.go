package entity

// SessionState состояние сессии захвата скриншотов
type SessionState string

const (
	StateAwaitingReference SessionState = "awaiting_reference" // ждём эталонный скриншот
	StateAwaitingCandidate SessionState = "awaiting_candidate" // ждём скриншот для сравнения
	StateCompared          SessionState = "compared"           // сравнение выполнено
)

// Session пара скриншотов одного сценария (например, превью в выдаче и фото на карточке товара)
type Session struct {
	ID            string
	State         SessionState
	ReferencePath string
	CandidatePath string
	Result        *ComparisonResult
}

// NewSession создаёт сессию в начальном состоянии
func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateAwaitingReference,
	}
}

// SetState обновляет состояние сессии
func (s *Session) SetState(state SessionState) {
	s.State = state
}

// Reset очищает пути и результат, возвращая сессию в начало
func (s *Session) Reset() {
	s.ReferencePath = ""
	s.CandidatePath = ""
	s.Result = nil
	s.State = StateAwaitingReference
}
