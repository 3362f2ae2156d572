// Package speech предоставляет движки распознавания речи для голосового
// ответа.
package speech

import (
	"context"
	"errors"

	"linglong/internal/voice"
)

// Engine тип движка распознавания.
type Engine string

const (
	// EngineRemote - распознавание на сервере.
	EngineRemote Engine = "remote"
	// EngineVosk - локальный Vosk.
	EngineVosk Engine = "vosk"
)

var (
	ErrUnknownEngine = errors.New("unknown speech engine")
	ErrNotLoaded     = errors.New("speech engine not loaded")
)

// Recognizer - движок распознавания речи.
type Recognizer interface {
	// Transcribe распознаёт записанную речь.
	Transcribe(ctx context.Context, payload voice.Payload, lang string) (string, error)

	// Close освобождает ресурсы движка.
	Close()

	// Name возвращает название движка (для логирования).
	Name() string
}

// STTClient - серверное распознавание.
type STTClient interface {
	STT(ctx context.Context, audio, language string) (string, error)
}

// Remote отправляет запись на сервер в виде data: URI.
type Remote struct {
	client STTClient
}

// NewRemote создаёт серверный движок.
func NewRemote(client STTClient) *Remote {
	return &Remote{client: client}
}

// Transcribe распознаёт речь на сервере.
func (r *Remote) Transcribe(ctx context.Context, payload voice.Payload, lang string) (string, error) {
	return r.client.STT(ctx, payload.DataURI(), lang)
}

// Name возвращает название движка.
func (r *Remote) Name() string {
	return string(EngineRemote)
}

// Close ничего не делает.
func (r *Remote) Close() {}
