// Package notify предоставляет системные уведомления.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"

	"linglong/internal/i18n"
)

// maxMessage - длина текста уведомления в символах.
const maxMessage = 100

// Notifier отправляет системные уведомления.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Ready сообщает, что приложение запущено.
func (n *Notifier) Ready() {
	n.notify("", i18n.T("notify_ready"))
}

// Voice показывает ошибку голосового ответа.
func (n *Notifier) Voice(label string) {
	n.notify(i18n.T("voice_idle"), label)
}

// SignedIn сообщает об успешном входе.
func (n *Notifier) SignedIn(email string) {
	n.notify(i18n.T("sign_in_ok"), email)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	n.notify("", msg)
}

func (n *Notifier) notify(title, message string) {
	n.mu.Lock()
	enabled := n.enabled
	n.mu.Unlock()
	if !enabled {
		return
	}

	if r := []rune(message); len(r) > maxMessage {
		message = string(r[:maxMessage]) + "..."
	}

	appName := i18n.T("app_name")
	if title != "" {
		title = appName + ": " + title
	} else {
		title = appName
	}
	// Ошибки уведомлений не критичны
	_ = n.send(title, message)
}
