package lesson

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session - состояние одного прохождения урока. Живёт, пока открыт урок.
type Session struct {
	ID             string
	CurrentStep    int
	SelectedByStep map[int]string
	TotalSteps     int
	StartedAt      time.Time
}

func newSession(total int) *Session {
	return &Session{
		ID:             uuid.New().String(),
		CurrentStep:    1,
		SelectedByStep: make(map[int]string),
		TotalSteps:     total,
		StartedAt:      time.Now(),
	}
}

func (s *Session) clone() *Session {
	c := *s
	c.SelectedByStep = make(map[int]string, len(s.SelectedByStep))
	for k, v := range s.SelectedByStep {
		c.SelectedByStep[k] = v
	}
	return &c
}

// Progress - индикатор прогресса n/total.
type Progress struct {
	Step  int
	Total int
}

// Text возвращает "n/total".
func (p Progress) Text() string {
	return fmt.Sprintf("%d/%d", p.Step, p.Total)
}

// Fraction возвращает долю пройденного (ширина полосы).
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Step) / float64(p.Total)
}

// Percent возвращает ширину полосы в процентах.
func (p Progress) Percent() float64 {
	return p.Fraction() * 100
}

// Mood - состояние маскота.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodHappy
	MoodSad
)

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodSad:
		return "sad"
	default:
		return "neutral"
	}
}

// State - состояние автомата урока.
type State int

const (
	// StateStep - пользователь отвечает на текущий шаг.
	StateStep State = iota
	// StateWrong - показано сообщение о неверном ответе (поверх шага).
	StateWrong
	// StateComplete - урок пройден, конечное состояние.
	StateComplete
	// StateAdvancing - ответ верный, переход на следующий шаг отложен.
	StateAdvancing
)

func (s State) String() string {
	switch s {
	case StateWrong:
		return "wrong"
	case StateComplete:
		return "complete"
	case StateAdvancing:
		return "advancing"
	default:
		return "step"
	}
}

// Outcome - результат проверки ответа.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeWrong
	OutcomeAdvanced
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWrong:
		return "wrong"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeCompleted:
		return "completed"
	default:
		return "ignored"
	}
}
