// Package voice реализует голосовой ответ на шаг урока: запись с микрофона,
// отправку на распознавание и выбор подходящего варианта по тексту.
package voice

import (
	"context"
	"errors"
	"time"
)

// Language - языковая подсказка для распознавания.
const Language = "id"

// ErrorLabelLimit - максимальная длина текста ошибки в подписи кнопки.
const ErrorLabelLimit = 42

var (
	ErrInsecureContext = errors.New("insecure context")
	ErrUnsupported     = errors.New("voice input unsupported")
	ErrNoDevice        = errors.New("no audio input device")
	ErrTooShort        = errors.New("recording too short")
)

// MIMEPCM16 - сырые 16-битные little-endian сэмплы.
const MIMEPCM16 = "audio/L16"

// Format описывает аудио, которое отдаёт поток.
type Format struct {
	MIMEType   string
	SampleRate int
	Channels   int
}

// Microphone открывает аудиовход.
type Microphone interface {
	// Open захватывает устройство. Если устройства нет - ErrNoDevice.
	Open(ctx context.Context) (Stream, error)
}

// Stream - открытый аудиовход.
type Stream interface {
	Format() Format
	// Close освобождает устройство.
	Close() error
}

// Recorder буферизует данные потока чанками.
type Recorder interface {
	// Start начинает запись. sink вызывается для каждого чанка.
	Start(sink func(chunk []byte)) error
	// Flush отдаёт в sink всё накопленное к этому моменту.
	Flush()
	// Stop останавливает запись. После возврата sink больше не вызывается.
	Stop() error
}

// Transcriber распознаёт речь.
type Transcriber interface {
	Transcribe(ctx context.Context, payload Payload, lang string) (string, error)
}

// Env - возможности окружения. Отсутствующая возможность = nil.
type Env struct {
	// Secure - аудио уходит на распознавание по защищённому каналу.
	Secure      bool
	Microphone  Microphone
	NewRecorder func(Stream) (Recorder, error)
	Transcriber Transcriber
}

// Lesson - то, что конвейеру нужно от урока.
type Lesson interface {
	CurrentStep() int
	Options(step int) []string
	SelectOption(step int, value string) error
}

// State - состояние кнопки голосового ответа.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateConverting
	StateError
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateConverting:
		return "converting"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Display показывает состояние кнопки голосового ответа шага.
// Вызывается под блокировкой конвейера.
type Display interface {
	SetVoiceStatus(step int, state State, label string)
}

// Timing - задержки интерфейса.
type Timing struct {
	// MinConverting - минимальное время показа "распознаю".
	MinConverting time.Duration
	// ErrorDisplay - сколько показывать ошибку до возврата в ожидание.
	ErrorDisplay time.Duration
}

// DefaultTiming возвращает задержки по умолчанию.
func DefaultTiming() Timing {
	return Timing{
		MinConverting: 1200 * time.Millisecond,
		ErrorDisplay:  2500 * time.Millisecond,
	}
}
