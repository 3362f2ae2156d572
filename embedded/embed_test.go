package embedded

import (
	"bytes"
	"testing"

	"linglong/internal/lesson"
)

func TestIconsArePNG(t *testing.T) {
	icons := map[string][]byte{
		"neutral":    IconNeutral,
		"happy":      IconHappy,
		"sad":        IconSad,
		"recording":  IconRecording,
		"converting": IconConverting,
	}
	for name, data := range icons {
		if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
			t.Errorf("icon %s is not a PNG", name)
		}
	}
}

func TestLessonLevel1(t *testing.T) {
	l, err := lesson.Parse(LessonLevel1)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(l.Steps) != lesson.TotalSteps {
		t.Fatalf("steps = %d, want %d", len(l.Steps), lesson.TotalSteps)
	}
	if l.Language != "id" {
		t.Fatalf("language = %q", l.Language)
	}
}
