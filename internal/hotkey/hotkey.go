// Package hotkey - глобальная горячая клавиша голосового ответа.
package hotkey

import (
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"linglong/internal/config"
	"linglong/internal/logger"
)

// debounceInterval защищает от автоповтора клавиши.
const debounceInterval = 300 * time.Millisecond

// Handler вызывает onToggle при нажатии горячей клавиши.
type Handler struct {
	mu       sync.Mutex
	hk       *hotkey.Hotkey
	onToggle func()
	current  config.HotkeyConfig
	stopCh   chan struct{}
	log      *logger.Logger
}

// New создаёт обработчик горячей клавиши.
func New(onToggle func(), log *logger.Logger) *Handler {
	return &Handler{
		onToggle: onToggle,
		log:      log.With("component", "hotkey"),
	}
}

// Register регистрирует горячую клавишу, заменяя предыдущую.
func (h *Handler) Register(cfg config.HotkeyConfig) error {
	h.log.Info("регистрация горячей клавиши", "hotkey", cfg.String())

	h.mu.Lock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
	oldHk := h.hk
	h.hk = nil
	h.mu.Unlock()

	// Отменяем предыдущую регистрацию с таймаутом: на некоторых X11
	// Unregister может зависнуть
	if oldHk != nil {
		done := make(chan struct{})
		go func() {
			oldHk.Unregister()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			h.log.Warn("таймаут отмены горячей клавиши")
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	hk := hotkey.New(modifiers(cfg.Modifiers), key(cfg.Key))
	if err := hk.Register(); err != nil {
		h.log.Error("ошибка регистрации горячей клавиши", "hotkey", cfg.String(), "error", err)
		return err
	}

	h.hk = hk
	h.current = cfg
	h.stopCh = make(chan struct{})
	go h.listen(hk, h.stopCh)
	return nil
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var lastKeydown time.Time

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if h.onToggle != nil {
				h.onToggle()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Unregister отменяет регистрацию горячей клавиши.
func (h *Handler) Unregister() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}

	if h.hk != nil {
		err := h.hk.Unregister()
		h.hk = nil
		return err
	}
	return nil
}

// Current возвращает текущую зарегистрированную горячую клавишу.
func (h *Handler) Current() config.HotkeyConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

func modifiers(mods []config.Modifier) []hotkey.Modifier {
	out := make([]hotkey.Modifier, 0, len(mods))
	for _, m := range mods {
		if mod, ok := modifierMap[m]; ok {
			out = append(out, mod)
		}
	}
	return out
}

func key(k config.Key) hotkey.Key {
	if v, ok := keyMap[k]; ok {
		return v
	}
	return hotkey.KeySpace
}

// keyMap: клавиши конфигурации. modifierMap лежит в modifiers_<os>.go.
var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace:  hotkey.KeySpace,
	config.KeyReturn: hotkey.KeyReturn,
	config.KeyTab:    hotkey.KeyTab,
	config.KeyL:      hotkey.KeyL,
	config.KeyS:      hotkey.KeyS,
	config.KeyV:      hotkey.KeyV,
	config.KeyF8:     hotkey.KeyF8,
	config.KeyF9:     hotkey.KeyF9,
	config.KeyF10:    hotkey.KeyF10,
}
