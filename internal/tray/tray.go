// Package tray показывает урок в меню системного трея: прогресс, задание,
// варианты ответа и действия.
package tray

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/getlantern/systray"

	"linglong/internal/i18n"
	"linglong/internal/lesson"
	"linglong/internal/voice"
)

// MaxOptions - число пунктов меню под варианты ответа.
const MaxOptions = lesson.MaxOptions

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnSelect              func(step int, value string)
	OnCheck               func()
	OnSpeak               func()
	OnVoice               func()
	OnSignIn              func()
	OnSignUp              func()
	OnReelPrev            func()
	OnReelNext            func()
	OnReelOpen            func()
	OnReelQuiz            func()
	OnCompactToggle       func() bool
	OnNotificationsToggle func() bool
	OnHotkeyClick         func()
	OnOfflineModel        func()
	OnQuit                func()
}

// Tray управляет иконкой в системном трее. Реализует lesson.View и
// voice.Display. До Run состояние только запоминается.
type Tray struct {
	callbacks Callbacks

	mu    sync.Mutex
	ready bool
	view  viewState

	progress *systray.MenuItem
	mascot   *systray.MenuItem
	prompt   *systray.MenuItem
	options  [MaxOptions]*systray.MenuItem
	check    *systray.MenuItem
	speak    *systray.MenuItem
	voiceBtn *systray.MenuItem
	signIn   *systray.MenuItem
	signUp   *systray.MenuItem
	reels    *systray.MenuItem
	reelPrev *systray.MenuItem
	reelNext *systray.MenuItem
	reelOpen *systray.MenuItem
	reelQuiz *systray.MenuItem
	compact  *systray.MenuItem
	notifyOn *systray.MenuItem
	hotkey   *systray.MenuItem
	model    *systray.MenuItem
	quitBtn  *systray.MenuItem
}

// Options - начальные флажки меню.
type Options struct {
	Compact       bool
	Notifications bool
	OfflineModel  bool // показывать пункт загрузки модели
}

// New создаёт новый Tray.
func New(callbacks Callbacks, opts Options) *Tray {
	t := &Tray{callbacks: callbacks}
	t.view.compact = opts.Compact
	t.view.notifications = opts.Notifications
	t.view.offlineModel = opts.OfflineModel
	t.view.voiceLabel = i18n.T("voice_idle")
	return t
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.progress = systray.AddMenuItem("", "")
	t.progress.Disable()
	t.mascot = systray.AddMenuItem("", "")
	t.mascot.Disable()
	t.prompt = systray.AddMenuItem("", "")
	t.prompt.Disable()

	systray.AddSeparator()

	for i := range t.options {
		t.options[i] = systray.AddMenuItemCheckbox("", "", false)
		t.options[i].Hide()
	}

	systray.AddSeparator()

	t.check = systray.AddMenuItem(i18n.T("tray_check"), i18n.T("tray_check_hint"))
	t.speak = systray.AddMenuItem(i18n.T("tray_speak"), i18n.T("tray_speak_hint"))
	t.voiceBtn = systray.AddMenuItem(i18n.T("voice_idle"), "")

	systray.AddSeparator()

	t.reels = systray.AddMenuItem(i18n.T("tray_reels"), "")
	t.reelOpen = t.reels.AddSubMenuItem(i18n.T("tray_reel_open"), "")
	t.reelPrev = t.reels.AddSubMenuItem(i18n.T("tray_reel_prev"), "")
	t.reelNext = t.reels.AddSubMenuItem(i18n.T("tray_reel_next"), "")
	t.reelQuiz = t.reels.AddSubMenuItem(i18n.T("tray_reel_quiz"), "")

	t.signIn = systray.AddMenuItem(i18n.T("tray_sign_in"), i18n.T("tray_sign_in_hint"))
	t.signUp = systray.AddMenuItem(i18n.T("tray_sign_up"), i18n.T("tray_sign_up_hint"))

	systray.AddSeparator()

	t.compact = systray.AddMenuItemCheckbox(i18n.T("tray_compact"), i18n.T("tray_compact_hint"), false)
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), "", false)
	t.hotkey = systray.AddMenuItem(i18n.T("tray_hotkey"), i18n.T("tray_hotkey_hint"))
	t.model = systray.AddMenuItem(i18n.T("tray_offline_model"), "")

	systray.AddSeparator()

	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	t.mu.Lock()
	t.ready = true
	t.render()
	t.mu.Unlock()

	go t.handleMenuEvents()
	go t.handleOptionEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.check.ClickedCh:
			call(t.callbacks.OnCheck)
		case <-t.speak.ClickedCh:
			call(t.callbacks.OnSpeak)
		case <-t.voiceBtn.ClickedCh:
			call(t.callbacks.OnVoice)
		case <-t.signIn.ClickedCh:
			call(t.callbacks.OnSignIn)
		case <-t.signUp.ClickedCh:
			call(t.callbacks.OnSignUp)
		case <-t.reelPrev.ClickedCh:
			call(t.callbacks.OnReelPrev)
		case <-t.reelNext.ClickedCh:
			call(t.callbacks.OnReelNext)
		case <-t.reelOpen.ClickedCh:
			call(t.callbacks.OnReelOpen)
		case <-t.reelQuiz.ClickedCh:
			call(t.callbacks.OnReelQuiz)
		case <-t.hotkey.ClickedCh:
			call(t.callbacks.OnHotkeyClick)
		case <-t.model.ClickedCh:
			call(t.callbacks.OnOfflineModel)

		case <-t.compact.ClickedCh:
			if t.callbacks.OnCompactToggle != nil {
				compact := t.callbacks.OnCompactToggle()
				t.update(func(v *viewState) { v.compact = compact })
			}

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				enabled := t.callbacks.OnNotificationsToggle()
				t.update(func(v *viewState) { v.notifications = enabled })
			}

		case <-t.quitBtn.ClickedCh:
			call(t.callbacks.OnQuit)
			systray.Quit()
			return
		}
	}
}

// handleOptionEvents слушает пункты вариантов через reflect.Select:
// их число задаётся константой.
func (t *Tray) handleOptionEvents() {
	cases := make([]reflect.SelectCase, len(t.options))
	for i, item := range t.options {
		cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(item.ClickedCh)}
	}

	for {
		i, _, ok := reflect.Select(cases)
		if !ok {
			return
		}

		t.mu.Lock()
		step := t.view.step
		value := ""
		if i < len(t.view.values) {
			value = t.view.values[i]
		}
		t.mu.Unlock()

		if value != "" && t.callbacks.OnSelect != nil {
			t.callbacks.OnSelect(step, value)
		}
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (t *Tray) onExit() {}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

// ShowStep показывает шаг.
func (t *Tray) ShowStep(step lesson.Step, total int) {
	t.update(func(v *viewState) { v.showStep(step) })
}

// SetProgress обновляет строку прогресса.
func (t *Tray) SetProgress(p lesson.Progress) {
	t.update(func(v *viewState) { v.progress = p })
}

// MarkSelected отмечает выбранный вариант.
func (t *Tray) MarkSelected(step int, value string) {
	t.update(func(v *viewState) { v.markSelected(step, value) })
}

// SetMood меняет маскота.
func (t *Tray) SetMood(m lesson.Mood) {
	t.update(func(v *viewState) { v.mood = m })
}

// ShowWrong переводит меню в режим "неверный ответ". Сам диалог
// показывает вызывающий.
func (t *Tray) ShowWrong() {
	t.update(func(v *viewState) { v.wrong = true })
}

// HideWrong снимает режим "неверный ответ".
func (t *Tray) HideWrong() {
	t.update(func(v *viewState) { v.wrong = false })
}

// ShowComplete помечает уровень пройденным.
func (t *Tray) ShowComplete() {
	t.update(func(v *viewState) { v.complete = true })
}

// HideComplete ничего не меняет: окно закрывает вызывающий, а уровень
// остаётся пройденным.
func (t *Tray) HideComplete() {}

// SetVoiceStatus обновляет кнопку голосового ответа.
func (t *Tray) SetVoiceStatus(step int, state voice.State, label string) {
	t.update(func(v *viewState) {
		v.voiceState = state
		v.voiceLabel = label
	})
}

// SetSignedIn показывает, выполнен ли вход.
func (t *Tray) SetSignedIn(email string) {
	t.update(func(v *viewState) { v.user = email })
}

// SetReel показывает текущий ролик карусели.
func (t *Tray) SetReel(title string, index, total int) {
	t.update(func(v *viewState) {
		v.reelTitle = title
		v.reelIndex = index
		v.reelTotal = total
	})
}

// SetAnswered показывает счётчик отвеченных шагов ("2/5").
func (t *Tray) SetAnswered(count string) {
	t.update(func(v *viewState) { v.answered = count })
}

// SetReelQuiz включает пункт викторины по роликам.
func (t *Tray) SetReelQuiz(available bool) {
	t.update(func(v *viewState) { v.quiz = available })
}

// SetOfflineModel показывает или прячет пункт загрузки модели.
func (t *Tray) SetOfflineModel(visible bool) {
	t.update(func(v *viewState) { v.offlineModel = visible })
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return
	}
	systray.SetTooltip(i18n.T("app_tooltip"))
	t.check.SetTitle(i18n.T("tray_check"))
	t.speak.SetTitle(i18n.T("tray_speak"))
	t.reelOpen.SetTitle(i18n.T("tray_reel_open"))
	t.reelPrev.SetTitle(i18n.T("tray_reel_prev"))
	t.reelNext.SetTitle(i18n.T("tray_reel_next"))
	t.reelQuiz.SetTitle(i18n.T("tray_reel_quiz"))
	t.signUp.SetTitle(i18n.T("tray_sign_up"))
	t.compact.SetTitle(i18n.T("tray_compact"))
	t.notifyOn.SetTitle(i18n.T("tray_notifications"))
	t.hotkey.SetTitle(i18n.T("tray_hotkey"))
	t.model.SetTitle(i18n.T("tray_offline_model"))
	t.quitBtn.SetTitle(i18n.T("tray_quit"))
	t.render()
}

func (t *Tray) update(fn func(v *viewState)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.view)
	if t.ready {
		t.render()
	}
}

// render переносит состояние в меню. Вызывается под t.mu.
func (t *Tray) render() {
	v := &t.view

	systray.SetIcon(v.icon())
	systray.SetTooltip(i18n.T("app_name") + " - " + v.mascotText())

	t.progress.SetTitle(v.progressTitle())
	t.progress.SetTooltip(fmt.Sprintf("%.0f%%", v.progress.Percent()))
	t.mascot.SetTitle(v.mascotText())
	t.prompt.SetTitle(v.prompt)
	setVisible(t.prompt, !v.compact)

	for i, item := range t.options {
		if i >= len(v.titles) {
			item.Hide()
			continue
		}
		item.SetTitle(v.titles[i])
		item.Show()
		if v.values[i] == v.selected {
			item.Check()
		} else {
			item.Uncheck()
		}
		setEnabled(item, !v.complete)
	}

	setEnabled(t.check, v.selected != "" && !v.complete && !v.wrong)
	t.voiceBtn.SetTitle(v.voiceLabel)
	setEnabled(t.voiceBtn, !v.complete && v.voiceState != voice.StateConverting)

	if v.user != "" {
		t.signIn.SetTitle(i18n.T("tray_signed_in") + ": " + v.user)
	} else {
		t.signIn.SetTitle(i18n.T("tray_sign_in"))
	}

	setVisible(t.signUp, v.user == "")

	t.reels.SetTitle(v.reelsTitle())
	setEnabled(t.reelQuiz, v.quiz)
	setEnabled(t.reelOpen, v.reelTotal > 0)
	setEnabled(t.reelPrev, v.reelTotal > 1)
	setEnabled(t.reelNext, v.reelTotal > 1)

	setChecked(t.compact, v.compact)
	setChecked(t.notifyOn, v.notifications)
	setVisible(t.model, v.offlineModel)
}

func setVisible(item *systray.MenuItem, visible bool) {
	if visible {
		item.Show()
	} else {
		item.Hide()
	}
}

func setEnabled(item *systray.MenuItem, enabled bool) {
	if enabled {
		item.Enable()
	} else {
		item.Disable()
	}
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}
