// Package audio предоставляет запись аудио с микрофона через PortAudio.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"linglong/internal/voice"
)

const (
	// SampleRate - частота дискретизации распознавания.
	SampleRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// FramesPerBuffer - размер буфера.
	FramesPerBuffer = 1024
	// ChunkInterval - как часто рекордер отдаёт накопленные данные.
	ChunkInterval = 250 * time.Millisecond
)

// Format - формат данных, которые отдаёт Stream.
var Format = voice.Format{
	MIMEType:   voice.MIMEPCM16,
	SampleRate: SampleRate,
	Channels:   Channels,
}

// ErrForeignStream - рекордеру передан поток не из этого пакета.
var ErrForeignStream = errors.New("stream is not a portaudio stream")

// Microphone открывает аудиовход по умолчанию.
type Microphone struct {
	mu          sync.Mutex
	initialized bool
}

// NewMicrophone инициализирует PortAudio.
func NewMicrophone() (*Microphone, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &Microphone{initialized: true}, nil
}

// Open захватывает микрофон по умолчанию.
func (m *Microphone) Open(ctx context.Context) (voice.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, voice.ErrUnsupported
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil || dev.MaxInputChannels < Channels {
		return nil, voice.ErrNoDevice
	}

	s := &Stream{buffer: make([]int16, FramesPerBuffer*Channels)}
	stream, err := portaudio.OpenDefaultStream(
		Channels,        // input channels
		0,               // output channels
		SampleRate,      // sample rate
		FramesPerBuffer, // frames per buffer
		s.buffer,        // buffer
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voice.ErrNoDevice, err)
	}
	s.stream = stream
	return s, nil
}

// Close завершает работу PortAudio.
func (m *Microphone) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		portaudio.Terminate()
		m.initialized = false
	}
}

// Stream - открытый поток микрофона.
type Stream struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []int16
	started bool
}

// Format возвращает формат потока.
func (s *Stream) Format() voice.Format {
	return Format
}

// Close останавливает и закрывает поток. Повторный вызов ничего не делает.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return nil
	}
	if s.started {
		s.stream.Stop()
		s.started = false
	}
	err := s.stream.Close()
	s.stream = nil
	return err
}

func (s *Stream) start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return errors.New("stream closed")
	}
	if err := s.stream.Start(); err != nil {
		return err
	}
	s.started = true
	return nil
}

// read читает один буфер, если данные готовы. Возвращает PCM16 LE.
func (s *Stream) read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return nil, errors.New("stream closed")
	}

	available, err := s.stream.AvailableToRead()
	if err != nil || available < FramesPerBuffer {
		return nil, err
	}
	if err := s.stream.Read(); err != nil {
		return nil, err
	}

	out := make([]byte, len(s.buffer)*2)
	for i, sample := range s.buffer {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(sample))
	}
	return out, nil
}

// Recorder копит данные потока и отдаёт их чанками раз в ChunkInterval.
type Recorder struct {
	mu      sync.Mutex
	stream  *Stream
	sink    func([]byte)
	pending []byte
	running bool
	done    chan struct{}
}

// NewRecorder создаёт рекордер для потока из Microphone.Open.
func NewRecorder(s voice.Stream) (voice.Recorder, error) {
	stream, ok := s.(*Stream)
	if !ok {
		return nil, ErrForeignStream
	}
	return &Recorder{stream: stream}, nil
}

// Start начинает запись.
func (r *Recorder) Start(sink func([]byte)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}
	if err := r.stream.start(); err != nil {
		return err
	}

	r.sink = sink
	r.running = true
	r.done = make(chan struct{})
	go r.recordLoop(r.done)
	return nil
}

func (r *Recorder) recordLoop(done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(ChunkInterval)
	defer ticker.Stop()

	for {
		r.mu.Lock()
		running := r.running
		r.mu.Unlock()
		if !running {
			return
		}

		select {
		case <-ticker.C:
			r.Flush()
		default:
		}

		data, err := r.stream.read()
		if err != nil || data == nil {
			// Нет данных - ждём
			time.Sleep(10 * time.Millisecond)
			continue
		}

		r.mu.Lock()
		if r.running {
			r.pending = append(r.pending, data...)
		}
		r.mu.Unlock()
	}
}

// Flush отдаёт накопленные данные в sink.
func (r *Recorder) Flush() {
	r.mu.Lock()
	if !r.running || len(r.pending) == 0 {
		r.mu.Unlock()
		return
	}
	chunk := r.pending
	r.pending = nil
	sink := r.sink
	r.mu.Unlock()

	sink(chunk)
}

// Stop останавливает запись. Недоотданные данные отбрасываются.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.pending = nil
	done := r.done
	r.mu.Unlock()

	// recordLoop проверяет running каждые 10ms
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
	}
	return nil
}
