// Package vosk - локальное распознавание речи через Vosk.
package vosk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"

	"linglong/internal/speech"
	"linglong/internal/voice"
)

// SampleRate - частота, с которой создаётся распознаватель.
const SampleRate = 16000

// ErrFormat - запись не в PCM16 16 kHz mono.
var ErrFormat = errors.New("vosk needs pcm16 16kHz mono")

// Recognizer реализует speech.Recognizer через Vosk.
type Recognizer struct {
	mu         sync.Mutex
	model      *vosk.VoskModel
	recognizer *vosk.VoskRecognizer
}

// voskResult структура для парсинга JSON результата от Vosk.
type voskResult struct {
	Text string `json:"text"`
}

// New создаёт Recognizer из пути к модели.
func New(modelPath string) (*Recognizer, error) {
	// Проверяем существование директории модели
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("модель Vosk не найдена: %s", modelPath)
	}

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки модели Vosk: %w", err)
	}

	rec, err := vosk.NewRecognizer(model, SampleRate)
	if err != nil {
		model.Free()
		return nil, err
	}

	return &Recognizer{
		model:      model,
		recognizer: rec,
	}, nil
}

// Constructor подходит для speech.FactoryConfig.NewVosk.
func Constructor(modelPath string) (speech.Recognizer, error) {
	return New(modelPath)
}

// Name возвращает название движка.
func (v *Recognizer) Name() string {
	return string(speech.EngineVosk)
}

// Transcribe распознаёт речь. Язык определяется моделью, lang не используется.
func (v *Recognizer) Transcribe(ctx context.Context, payload voice.Payload, lang string) (string, error) {
	f := payload.Format
	if f.MIMEType != voice.MIMEPCM16 || f.SampleRate != SampleRate || f.Channels != 1 {
		return "", ErrFormat
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.recognizer == nil {
		return "", speech.ErrNotLoaded
	}

	v.recognizer.AcceptWaveform(payload.PCM)
	resultJSON := v.recognizer.FinalResult()

	// Сбрасываем распознаватель для следующего использования
	v.recognizer.Reset()

	var result voskResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return "", err
	}

	return strings.TrimSpace(result.Text), nil
}

// Close освобождает ресурсы.
func (v *Recognizer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.recognizer != nil {
		v.recognizer.Free()
		v.recognizer = nil
	}

	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
}
