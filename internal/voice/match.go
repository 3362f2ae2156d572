package voice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize приводит текст к виду для сравнения: NFC, нижний регистр,
// пробелы схлопнуты, края обрезаны.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	// Caser хранит состояние, поэтому создаём на каждый вызов
	s = cases.Lower(language.Indonesian).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Match ищет вариант, соответствующий распознанному тексту.
// Правила по убыванию приоритета: точное совпадение, текст содержит вариант,
// вариант содержит текст. Внутри правила побеждает первый объявленный
// вариант. Возвращает индекс варианта или -1.
func Match(transcript string, options []string) int {
	t := Normalize(transcript)
	if t == "" {
		return -1
	}

	normalized := make([]string, len(options))
	for i, o := range options {
		normalized[i] = Normalize(o)
	}

	rules := []func(o string) bool{
		func(o string) bool { return o == t },
		func(o string) bool { return strings.Contains(t, o) },
		func(o string) bool { return strings.Contains(o, t) },
	}

	for _, rule := range rules {
		for i, o := range normalized {
			if o != "" && rule(o) {
				return i
			}
		}
	}
	return -1
}

// truncate обрезает текст до limit символов (с многоточием).
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
