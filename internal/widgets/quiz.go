package widgets

import (
	"fmt"
	"strings"

	"linglong/internal/api"
	"linglong/internal/i18n"
)

// QuizQuestion - вопрос викторины после роликов. Без вариантов ответ
// вводится текстом.
type QuizQuestion struct {
	Prompt  string
	Options []string
	Answer  string
}

// QuizResult - итог викторины.
type QuizResult struct {
	Correct int
	Total   int
}

// Perfect сообщает, что все ответы верны.
func (r QuizResult) Perfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Text: "You got 2 out of 3 correct."
func (r QuizResult) Text() string {
	return fmt.Sprintf(i18n.T("reel_quiz_result"), r.Correct, r.Total)
}

// ScoreQuiz считает верные ответы. answers[i] - ответ на questions[i],
// недостающий ответ считается неверным. Выбор из вариантов сравнивается
// точно, текстовый ответ - без учёта регистра и пробелов по краям.
func ScoreQuiz(questions []QuizQuestion, answers []string) QuizResult {
	var r QuizResult
	for i, q := range questions {
		r.Total++
		if i >= len(answers) {
			continue
		}
		if len(q.Options) > 0 {
			if answers[i] == q.Answer {
				r.Correct++
			}
			continue
		}
		if strings.EqualFold(strings.TrimSpace(answers[i]), strings.TrimSpace(q.Answer)) {
			r.Correct++
		}
	}
	return r
}

// QuizFromBatches собирает вопросы пачек роликов в порядке пачек.
// Пачки без вопроса пропускаются.
func QuizFromBatches(batches []api.ReelBatch) []QuizQuestion {
	var out []QuizQuestion
	for _, b := range batches {
		q := b.Question
		if q == nil || strings.TrimSpace(q.Question) == "" {
			continue
		}
		out = append(out, QuizQuestion{
			Prompt:  q.Question,
			Options: q.Options,
			Answer:  q.CorrectAnswer,
		})
	}
	return out
}
