package tray

import (
	"fmt"
	"math"
	"strings"

	"linglong/embedded"
	"linglong/internal/i18n"
	"linglong/internal/lesson"
	"linglong/internal/voice"
)

// viewState - всё, что показывает меню. Не зависит от systray.
type viewState struct {
	step     int
	prompt   string
	values   []string
	titles   []string
	selected string
	progress lesson.Progress
	mood     lesson.Mood
	wrong    bool
	complete bool
	answered string

	voiceState voice.State
	voiceLabel string

	user          string
	reelTitle     string
	reelIndex     int
	reelTotal     int
	quiz          bool
	compact       bool
	notifications bool
	offlineModel  bool
}

func (v *viewState) showStep(step lesson.Step) {
	v.step = step.Number
	v.prompt = step.Prompt
	v.values = v.values[:0]
	v.titles = v.titles[:0]
	for i, o := range step.Options {
		if i == MaxOptions {
			break
		}
		v.values = append(v.values, o.Value)
		v.titles = append(v.titles, o.Title())
	}
	v.selected = ""
}

func (v *viewState) markSelected(step int, value string) {
	if step == v.step {
		v.selected = value
	}
}

// progressTitle: "Level 1 · 2/5" или "Level 1 · Level complete".
func (v *viewState) progressTitle() string {
	if v.complete {
		return i18n.T("tray_level") + " · " + i18n.T("tray_level_complete")
	}
	title := i18n.T("tray_level") + " · " + progressBar(v.progress.Fraction()) + " " + v.progress.Text()
	if v.answered != "" {
		title += " · " + i18n.T("tray_steps_done") + " " + v.answered
	}
	return title
}

// barWidth - число делений полосы прогресса.
const barWidth = 5

// progressBar рисует полосу прогресса: "▰▰▱▱▱" для 0.4.
func progressBar(fraction float64) string {
	filled := int(math.Round(fraction * barWidth))
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", barWidth-filled)
}

func (v *viewState) mascotText() string {
	switch v.mood {
	case lesson.MoodHappy:
		return i18n.T("mascot_happy")
	case lesson.MoodSad:
		return i18n.T("mascot_sad")
	default:
		return i18n.T("mascot_neutral")
	}
}

func (v *viewState) reelsTitle() string {
	if v.reelTotal == 0 {
		return i18n.T("tray_reels") + ": " + i18n.T("tray_reels_empty")
	}
	return fmt.Sprintf("%s %d/%d: %s", i18n.T("tray_reels"), v.reelIndex+1, v.reelTotal, v.reelTitle)
}

// icon: запись и распознавание важнее настроения маскота.
func (v *viewState) icon() []byte {
	switch v.voiceState {
	case voice.StateRecording:
		return embedded.IconRecording
	case voice.StateConverting:
		return embedded.IconConverting
	}
	switch v.mood {
	case lesson.MoodHappy:
		return embedded.IconHappy
	case lesson.MoodSad:
		return embedded.IconSad
	default:
		return embedded.IconNeutral
	}
}
