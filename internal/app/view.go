package app

import (
	"linglong/internal/dialog"
	"linglong/internal/lesson"
	"linglong/internal/notify"
	"linglong/internal/tray"
	"linglong/internal/voice"
)

// lessonView отдаёт урок трею и показывает модальные сообщения.
// Методы вызываются под блокировкой контроллера, поэтому диалоги
// открываются в отдельных горутинах и закрываются через контроллер.
type lessonView struct {
	tray       *tray.Tray
	controller func() *lesson.Controller
}

func (v *lessonView) ShowStep(step lesson.Step, total int) { v.tray.ShowStep(step, total) }
func (v *lessonView) SetProgress(p lesson.Progress) { v.tray.SetProgress(p) }
func (v *lessonView) MarkSelected(step int, value string) { v.tray.MarkSelected(step, value) }
func (v *lessonView) SetMood(m lesson.Mood) { v.tray.SetMood(m) }
func (v *lessonView) HideWrong() { v.tray.HideWrong() }
func (v *lessonView) HideComplete() { v.tray.HideComplete() }

func (v *lessonView) ShowWrong() {
	v.tray.ShowWrong()
	go func() {
		dialog.ShowWrong()
		if c := v.controller(); c != nil {
			c.DismissWrong()
		}
	}()
}

func (v *lessonView) ShowComplete() {
	v.tray.ShowComplete()
	go func() {
		dialog.ShowComplete()
		if c := v.controller(); c != nil {
			c.DismissComplete()
		}
	}()
}

// voiceDisplay показывает состояние кнопки в трее, ошибки дублирует
// уведомлением.
type voiceDisplay struct {
	tray     *tray.Tray
	notifier *notify.Notifier
}

func (d *voiceDisplay) SetVoiceStatus(step int, state voice.State, label string) {
	d.tray.SetVoiceStatus(step, state, label)
	if state == voice.StateError {
		// Вызывается под блокировкой конвейера, а D-Bus может ответить не сразу
		go d.notifier.Voice(label)
	}
}
