package lesson

import (
	"errors"
	"sync"
	"time"

	"linglong/internal/logger"
)

// CompletionKey - ключ флага завершения уровня в хранилище.
const CompletionKey = "linglong_level1_complete"

var (
	ErrInvalidStep   = errors.New("invalid step")
	ErrUnknownOption = errors.New("unknown option")
	ErrCompleted     = errors.New("lesson already completed")
)

// View отображает урок. Методы вызываются под блокировкой контроллера,
// поэтому не должны синхронно вызывать контроллер.
type View interface {
	// ShowStep делает шаг единственным активным.
	ShowStep(step Step, total int)
	SetProgress(p Progress)
	// MarkSelected выделяет вариант value и снимает выделение с остальных.
	MarkSelected(step int, value string)
	SetMood(m Mood)
	ShowWrong()
	HideWrong()
	ShowComplete()
	HideComplete()
}

// FlagStore - долговременное хранилище флагов.
type FlagStore interface {
	Bool(key string) (bool, error)
	SetBool(key string, value bool) error
}

// Timing задаёт задержки возврата маскота в нейтральное состояние.
type Timing struct {
	// AfterCorrect - сколько маскот радуется верному ответу до перехода
	// на следующий шаг.
	AfterCorrect time.Duration
	// AfterWrong - после закрытия сообщения о неверном ответе.
	AfterWrong time.Duration
}

// DefaultTiming возвращает задержки по умолчанию.
func DefaultTiming() Timing {
	return Timing{
		AfterCorrect: 600 * time.Millisecond,
		AfterWrong:   400 * time.Millisecond,
	}
}

// Controller ведёт сессию урока: навигация, выбор, проверка ответа.
type Controller struct {
	mu sync.Mutex

	steps   []Step
	view    View
	flags   FlagStore
	log     *logger.Logger
	timing  Timing
	session *Session
	state   State
	mood    Mood
	moodGen    int // защищает от устаревших отложенных сбросов маскота
	advanceGen int

	completed bool
}

// NewController создаёт контроллер и показывает первый шаг.
func NewController(l *Lesson, view View, flags FlagStore, log *logger.Logger, timing Timing) (*Controller, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		steps:   l.Steps,
		view:    view,
		flags:   flags,
		log:     log.With("lesson", l.ID),
		timing:  timing,
		session: newSession(len(l.Steps)),
	}

	done, err := flags.Bool(CompletionKey)
	if err != nil {
		c.log.Warn("не удалось прочитать флаг завершения", "error", err)
	}
	c.completed = done

	c.mu.Lock()
	c.goToStep(1)
	c.mu.Unlock()

	c.log.Info("сессия урока начата", "session", c.session.ID, "steps", len(l.Steps), "completed_before", done)
	return c, nil
}

// GoToStep переходит на шаг n (1..total).
func (c *Controller) GoToStep(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateComplete {
		return ErrCompleted
	}
	if n < 1 || n > len(c.steps) {
		return ErrInvalidStep
	}
	if c.state == StateAdvancing {
		c.advanceGen++
		c.state = StateStep
		c.setMood(MoodNeutral)
	}
	c.goToStep(n)
	return nil
}

func (c *Controller) goToStep(n int) {
	c.session.CurrentStep = n
	c.view.ShowStep(c.steps[n-1], len(c.steps))
	c.view.SetProgress(Progress{Step: n, Total: len(c.steps)})
}

// SelectOption запоминает выбранный вариант шага. Повторный выбор того же
// варианта только заново применяет выделение.
func (c *Controller) SelectOption(step int, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if step < 1 || step > len(c.steps) {
		return ErrInvalidStep
	}
	if !c.steps[step-1].HasOption(value) {
		return ErrUnknownOption
	}

	c.session.SelectedByStep[step] = value
	c.view.MarkSelected(step, value)
	return nil
}

// CheckAnswer проверяет выбранный вариант текущего шага.
func (c *Controller) CheckAnswer() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateComplete || c.state == StateAdvancing {
		return OutcomeIgnored
	}

	current := c.session.CurrentStep
	step := c.steps[current-1]

	selected, ok := c.session.SelectedByStep[current]
	if !ok {
		return OutcomeIgnored
	}

	if selected != step.Correct {
		c.state = StateWrong
		c.setMood(MoodSad)
		c.view.ShowWrong()
		c.log.Debug("неверный ответ", "step", current, "selected", selected)
		return OutcomeWrong
	}

	c.setMood(MoodHappy)

	if current >= len(c.steps) {
		if err := c.flags.SetBool(CompletionKey, true); err != nil {
			// Как и в браузере, ошибка хранилища не мешает завершению
			c.log.Warn("не удалось сохранить флаг завершения", "error", err)
		}
		c.completed = true
		c.state = StateComplete
		c.view.ShowComplete()
		c.log.Info("урок пройден", "session", c.session.ID, "took", time.Since(c.session.StartedAt).Round(time.Second))
		return OutcomeCompleted
	}

	c.advanceAfter(current, c.timing.AfterCorrect)
	return OutcomeAdvanced
}

// DismissWrong закрывает сообщение о неверном ответе. Шаг и выбор не меняются.
func (c *Controller) DismissWrong() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateWrong {
		return
	}
	c.state = StateStep
	c.view.HideWrong()
	c.resetMoodAfter(c.timing.AfterWrong)
}

// DismissComplete закрывает сообщение о завершении урока.
func (c *Controller) DismissComplete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateComplete {
		c.view.HideComplete()
	}
}

// setMood вызывается под c.mu.
func (c *Controller) setMood(m Mood) {
	c.moodGen++
	c.mood = m
	c.view.SetMood(m)
}

// resetMoodAfter возвращает маскота в нейтральное состояние через d,
// если за это время настроение не менялось. Вызывается под c.mu.
func (c *Controller) resetMoodAfter(d time.Duration) {
	if d <= 0 {
		c.setMood(MoodNeutral)
		return
	}

	gen := c.moodGen
	time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.moodGen == gen {
			c.setMood(MoodNeutral)
		}
	})
}

// advanceAfter через d возвращает маскота в нейтральное состояние и
// переходит на шаг после from. Вызывается под c.mu.
func (c *Controller) advanceAfter(from int, d time.Duration) {
	advance := func() {
		c.state = StateStep
		c.setMood(MoodNeutral)
		c.goToStep(from + 1)
	}
	if d <= 0 {
		advance()
		return
	}

	c.state = StateAdvancing
	c.advanceGen++
	gen := c.advanceGen
	time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// GoToStep за это время отменяет переход
		if c.advanceGen == gen && c.state == StateAdvancing {
			advance()
		}
	})
}

// CurrentStep возвращает номер активного шага.
func (c *Controller) CurrentStep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.CurrentStep
}

// Options возвращает токены вариантов шага в порядке объявления.
func (c *Controller) Options(step int) []string {
	if step < 1 || step > len(c.steps) {
		return nil
	}
	return c.steps[step-1].Values()
}

// Step возвращает шаг по номеру.
func (c *Controller) Step(n int) (Step, bool) {
	if n < 1 || n > len(c.steps) {
		return Step{}, false
	}
	return c.steps[n-1], true
}

// TotalSteps возвращает количество шагов.
func (c *Controller) TotalSteps() int {
	return len(c.steps)
}

// State возвращает состояние автомата.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mood возвращает текущее состояние маскота.
func (c *Controller) Mood() Mood {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mood
}

// Completed возвращает true если уровень пройден (сейчас или раньше).
func (c *Controller) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// Snapshot возвращает копию сессии.
func (c *Controller) Snapshot() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}
