package widgets

import (
	"sync"

	"linglong/internal/logger"
)

// SidebarKey - ключ состояния панели в хранилище.
const SidebarKey = "sidebarCollapsed"

// FlagStore хранит логические флаги.
type FlagStore interface {
	Bool(key string) (bool, error)
	SetBool(key string, value bool) error
}

// Sidebar - сворачиваемая панель. Состояние читается при создании и
// сохраняется при каждом переключении.
type Sidebar struct {
	mu        sync.Mutex
	flags     FlagStore
	log       *logger.Logger
	collapsed bool
}

// NewSidebar создаёт панель с сохранённым состоянием.
func NewSidebar(flags FlagStore, log *logger.Logger) *Sidebar {
	s := &Sidebar{flags: flags, log: log}
	if flags != nil {
		collapsed, err := flags.Bool(SidebarKey)
		if err != nil {
			log.Warn("не удалось прочитать состояние панели", "error", err)
		}
		s.collapsed = collapsed
	}
	return s
}

// Collapsed сообщает, свёрнута ли панель.
func (s *Sidebar) Collapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed
}

// Toggle сворачивает или разворачивает панель. Ошибка сохранения не
// отменяет переключение.
func (s *Sidebar) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collapsed = !s.collapsed
	if s.flags != nil {
		if err := s.flags.SetBool(SidebarKey, s.collapsed); err != nil {
			s.log.Warn("не удалось сохранить состояние панели", "error", err)
		}
	}
	return s.collapsed
}
