package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"linglong/internal/logger"
	"linglong/internal/models"
	"linglong/internal/voice"
)

type fakeSTT struct {
	audio string
	lang  string
}

func (f *fakeSTT) STT(_ context.Context, audio, language string) (string, error) {
	f.audio = audio
	f.lang = language
	return "halo", nil
}

type fakeRecognizer struct {
	mu     sync.Mutex
	path   string
	closed bool
}

func (r *fakeRecognizer) Transcribe(context.Context, voice.Payload, string) (string, error) {
	return "local:" + filepath.Base(r.path), nil
}

func (r *fakeRecognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *fakeRecognizer) Name() string { return "fake" }

func pcmPayload() voice.Payload {
	return voice.Assemble([][]byte{{0, 0, 1, 0}}, voice.Format{MIMEType: voice.MIMEPCM16, SampleRate: 16000, Channels: 1})
}

func TestRemoteSendsDataURI(t *testing.T) {
	stt := &fakeSTT{}
	text, err := NewRemote(stt).Transcribe(context.Background(), pcmPayload(), "id")
	if err != nil || text != "halo" {
		t.Fatalf("Transcribe() = %q, %v", text, err)
	}
	if !strings.HasPrefix(stt.audio, "data:audio/wav;base64,") || stt.lang != "id" {
		t.Fatalf("audio = %q, lang = %q", stt.audio, stt.lang)
	}
}

func TestFactoryNotLoaded(t *testing.T) {
	f := NewFactory(FactoryConfig{}, logger.Nop())
	if _, err := f.Transcribe(context.Background(), pcmPayload(), "id"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("error = %v, want ErrNotLoaded", err)
	}
}

func TestFactoryEngines(t *testing.T) {
	dir := t.TempDir()
	manager, err := models.NewManager(dir, logger.Nop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	info, _ := models.VoskModel("https://example.com/vosk-model-small-id.zip")

	var created *fakeRecognizer
	f := NewFactory(FactoryConfig{
		Client:    &fakeSTT{},
		Manager:   manager,
		VoskModel: info,
		NewVosk: func(path string) (Recognizer, error) {
			created = &fakeRecognizer{path: path}
			return created, nil
		},
	}, logger.Nop())

	if err := f.Load(EngineRemote); err != nil {
		t.Fatalf("Load(remote): %v", err)
	}
	if text, _ := f.Transcribe(context.Background(), pcmPayload(), "id"); text != "halo" {
		t.Fatalf("remote text = %q", text)
	}

	if err := f.Swap(EngineVosk); err == nil {
		t.Fatalf("vosk without a downloaded model must fail")
	}
	if f.CurrentEngine() != EngineRemote {
		t.Fatalf("failed swap must keep the current engine")
	}

	if err := os.MkdirAll(manager.Path(info), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := f.Load(EngineVosk); err != nil {
		t.Fatalf("Load(vosk): %v", err)
	}
	if text, _ := f.Transcribe(context.Background(), pcmPayload(), "id"); text != "local:vosk-model-small-id" {
		t.Fatalf("vosk text = %q", text)
	}

	if err := f.Load("whisper"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("error = %v, want ErrUnknownEngine", err)
	}

	f.Close()
	created.mu.Lock()
	closed := created.closed
	created.mu.Unlock()
	if !closed {
		t.Fatalf("Close must release the current engine")
	}
}
