package lesson

import (
	"errors"
	"testing"
)

const validLesson = `
id: level-1
title: Greetings
language: id
steps:
  - number: 1
    prompt: Hello
    options:
      - value: halo
      - value: selamat pagi
        label: Selamat pagi
    correct: halo
  - number: 2
    prompt: Good morning
    speak: Selamat pagi
    options:
      - value: halo
      - value: selamat pagi
    correct: selamat pagi
`

func TestParse(t *testing.T) {
	l, err := Parse([]byte(validLesson))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(l.Steps))
	}

	s := l.Steps[0]
	if got := s.Values(); len(got) != 2 || got[0] != "halo" || got[1] != "selamat pagi" {
		t.Fatalf("Values() = %v", got)
	}
	if s.Options[1].Title() != "Selamat pagi" || s.Options[0].Title() != "halo" {
		t.Fatalf("unexpected option titles: %q %q", s.Options[0].Title(), s.Options[1].Title())
	}
	if l.Steps[1].SpeechText() != "Selamat pagi" || s.SpeechText() != "Hello" {
		t.Fatalf("unexpected speech text")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no steps", data: "id: x\nsteps: []\n"},
		{name: "bad numbering", data: `
steps:
  - number: 2
    options: [{value: a}]
    correct: a
`},
		{name: "correct not an option", data: `
steps:
  - number: 1
    options: [{value: a}, {value: b}]
    correct: c
`},
		{name: "duplicate option", data: `
steps:
  - number: 1
    options: [{value: a}, {value: a}]
    correct: a
`},
		{name: "no options", data: `
steps:
  - number: 1
    correct: a
`},
		{name: "too many options", data: `
steps:
  - number: 1
    options: [{value: a}, {value: b}, {value: c}, {value: d}, {value: e}, {value: f}, {value: g}]
    correct: a
`},
		{name: "not yaml", data: "steps: [::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidLesson) {
				t.Fatalf("Parse() error = %v, want ErrInvalidLesson", err)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	p := Progress{Step: 2, Total: 5}
	if p.Text() != "2/5" {
		t.Fatalf("Text() = %q", p.Text())
	}
	if p.Fraction() != 0.4 {
		t.Fatalf("Fraction() = %v", p.Fraction())
	}
	if (Progress{}).Fraction() != 0 {
		t.Fatalf("zero total should give zero fraction")
	}
}
