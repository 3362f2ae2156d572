// Package lesson содержит модель урока и контроллер его прохождения.
package lesson

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TotalSteps - количество шагов в уроке уровня.
const TotalSteps = 5

// MaxOptions - сколько вариантов ответа помещается в меню шага.
const MaxOptions = 6

// Option - вариант ответа. Value - непрозрачный токен, по нему идёт сравнение.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label,omitempty"`
}

// Title возвращает подпись варианта (или сам токен).
func (o Option) Title() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Step - шаг урока. Неизменяем в течение сессии.
type Step struct {
	Number  int      `yaml:"number"`
	Prompt  string   `yaml:"prompt"`
	Speak   string   `yaml:"speak,omitempty"` // текст для озвучки, если отличается от Prompt
	Options []Option `yaml:"options"`
	Correct string   `yaml:"correct"`
}

// SpeechText возвращает текст для озвучки шага.
func (s Step) SpeechText() string {
	if s.Speak != "" {
		return s.Speak
	}
	return s.Prompt
}

// Values возвращает токены вариантов в порядке объявления.
func (s Step) Values() []string {
	values := make([]string, len(s.Options))
	for i, o := range s.Options {
		values[i] = o.Value
	}
	return values
}

// HasOption проверяет, объявлен ли токен в шаге.
func (s Step) HasOption(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Lesson - урок из файла.
type Lesson struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Language string `yaml:"language"`
	Steps    []Step `yaml:"steps"`
}

var ErrInvalidLesson = errors.New("invalid lesson")

// Parse разбирает урок из YAML и проверяет его.
func Parse(data []byte) (*Lesson, error) {
	var l Lesson
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLesson, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadFile читает урок из файла.
func LoadFile(path string) (*Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate проверяет нумерацию шагов и варианты ответов.
func (l *Lesson) Validate() error {
	if len(l.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidLesson)
	}

	for i, s := range l.Steps {
		if s.Number != i+1 {
			return fmt.Errorf("%w: step %d has number %d", ErrInvalidLesson, i+1, s.Number)
		}
		if len(s.Options) == 0 {
			return fmt.Errorf("%w: step %d has no options", ErrInvalidLesson, s.Number)
		}
		if len(s.Options) > MaxOptions {
			return fmt.Errorf("%w: step %d has %d options, at most %d fit", ErrInvalidLesson, s.Number, len(s.Options), MaxOptions)
		}

		seen := make(map[string]bool, len(s.Options))
		for _, o := range s.Options {
			if o.Value == "" {
				return fmt.Errorf("%w: step %d has an empty option", ErrInvalidLesson, s.Number)
			}
			if seen[o.Value] {
				return fmt.Errorf("%w: step %d repeats option %q", ErrInvalidLesson, s.Number, o.Value)
			}
			seen[o.Value] = true
		}

		if !seen[s.Correct] {
			return fmt.Errorf("%w: step %d correct answer %q is not an option", ErrInvalidLesson, s.Number, s.Correct)
		}
	}

	return nil
}
