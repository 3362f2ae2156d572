package widgets

import (
	"testing"

	"linglong/internal/api"
	"linglong/internal/i18n"
)

func TestScoreQuiz(t *testing.T) {
	questions := []QuizQuestion{
		{Prompt: "Apa arti halo?", Options: []string{"hello", "bye"}, Answer: "hello"},
		{Prompt: "Apa arti pagi?", Options: []string{"morning", "night"}, Answer: "morning"},
		{Prompt: "Tulis: terima kasih", Answer: "Terima kasih"},
	}

	tests := []struct {
		name    string
		answers []string
		want    QuizResult
		perfect bool
	}{
		{"all correct", []string{"hello", "morning", "  terima KASIH "}, QuizResult{3, 3}, true},
		{"choice is exact", []string{"Hello", "morning", "terima kasih"}, QuizResult{2, 3}, false},
		{"missing answers", []string{"hello"}, QuizResult{1, 3}, false},
		{"none", nil, QuizResult{0, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuiz(questions, tt.answers)
			if got != tt.want {
				t.Fatalf("ScoreQuiz() = %+v, want %+v", got, tt.want)
			}
			if got.Perfect() != tt.perfect {
				t.Fatalf("Perfect() = %v", got.Perfect())
			}
		})
	}

	if (QuizResult{}).Perfect() {
		t.Fatalf("empty quiz must not be perfect")
	}
}

func TestQuizResultText(t *testing.T) {
	defer i18n.SetLanguage(i18n.GetLanguage())
	i18n.SetLanguage(i18n.EN)

	if got := (QuizResult{Correct: 2, Total: 3}).Text(); got != "You got 2 out of 3 correct." {
		t.Fatalf("Text() = %q", got)
	}
}

func TestQuizFromBatches(t *testing.T) {
	batches := []api.ReelBatch{
		{ID: "b1", Question: &api.BatchQuestion{Question: "Apa arti halo?", Options: []string{"hello", "bye"}, CorrectAnswer: "hello"}},
		{ID: "b2"},
		{ID: "b3", Question: &api.BatchQuestion{Question: "  "}},
		{ID: "b4", Question: &api.BatchQuestion{Question: "Tulis: pagi", CorrectAnswer: "pagi"}},
	}

	got := QuizFromBatches(batches)
	if len(got) != 2 {
		t.Fatalf("questions = %+v", got)
	}
	if got[0].Answer != "hello" || len(got[0].Options) != 2 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Prompt != "Tulis: pagi" || len(got[1].Options) != 0 {
		t.Fatalf("second = %+v", got[1])
	}
}
