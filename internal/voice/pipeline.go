package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"linglong/internal/i18n"
	"linglong/internal/logger"
)

// recording - состояние активной записи.
type recording struct {
	active   bool
	stream   Stream
	recorder Recorder
	chunks   [][]byte
	step     int
	format   Format
}

// Pipeline - кнопка голосового ответа: первое нажатие начинает запись,
// второе останавливает её и отправляет на распознавание.
type Pipeline struct {
	mu      sync.Mutex
	env     Env
	lesson  Lesson
	display Display
	log     *logger.Logger
	timing  Timing
	lang    string

	rec       *recording
	busy      bool // идёт старт или остановка
	statusGen int  // защищает от устаревшего возврата в ожидание

	wg sync.WaitGroup
}

// New создаёт конвейер.
func New(env Env, lesson Lesson, display Display, log *logger.Logger, timing Timing) *Pipeline {
	return &Pipeline{
		env:     env,
		lesson:  lesson,
		display: display,
		log:     log.With("component", "voice"),
		timing:  timing,
		lang:    Language,
	}
}

// Toggle начинает запись, если она не идёт, иначе останавливает.
// Ошибки уже показаны пользователю, возвращаются для логирования.
func (p *Pipeline) Toggle(ctx context.Context) error {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return nil
	}
	p.busy = true
	recording := p.rec != nil
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	if recording {
		return p.stop(ctx)
	}
	return p.start(ctx)
}

// Active возвращает true если идёт запись.
func (p *Pipeline) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rec != nil && p.rec.active
}

// Wait ждёт завершения распознаваний и отложенных сообщений.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// SetLanguage задаёт языковую подсказку распознавания. Пустая строка
// оставляет Language.
func (p *Pipeline) SetLanguage(lang string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lang != "" {
		p.lang = lang
	}
}

// Shutdown останавливает активную запись без распознавания, освобождает
// микрофон и ждёт фоновые задачи.
func (p *Pipeline) Shutdown() {
	p.mu.Lock()
	rec := p.rec
	p.mu.Unlock()

	if rec != nil {
		p.teardown(rec)
		p.log.Debug("запись прервана при завершении", "step", rec.step)
	}
	p.wg.Wait()
}

// Idle показывает начальную подпись кнопки для шага.
func (p *Pipeline) Idle(step int) {
	p.setStatus(step, StateIdle, i18n.T("voice_idle"))
}

func (p *Pipeline) checkCapabilities() error {
	if !p.env.Secure {
		return ErrInsecureContext
	}
	if p.env.Microphone == nil || p.env.NewRecorder == nil {
		return ErrUnsupported
	}
	return nil
}

func (p *Pipeline) start(ctx context.Context) error {
	step := p.lesson.CurrentStep()

	if err := p.checkCapabilities(); err != nil {
		p.setStatus(step, StateError, labelFor(err))
		return err
	}

	stream, err := p.env.Microphone.Open(ctx)
	if err != nil {
		p.setStatus(step, StateError, labelFor(err))
		return fmt.Errorf("открытие микрофона: %w", err)
	}

	recorder, err := p.env.NewRecorder(stream)
	if err != nil {
		p.closeStream(stream)
		p.setStatus(step, StateError, labelFor(ErrUnsupported))
		return fmt.Errorf("создание рекордера: %w", err)
	}

	rec := &recording{
		active:   true,
		stream:   stream,
		recorder: recorder,
		step:     step,
		format:   stream.Format(),
	}

	p.mu.Lock()
	p.rec = rec
	p.mu.Unlock()

	if err := recorder.Start(func(chunk []byte) { p.appendChunk(rec, chunk) }); err != nil {
		p.release(rec)
		p.setStatus(step, StateError, labelFor(err))
		return fmt.Errorf("старт записи: %w", err)
	}

	p.setStatus(step, StateRecording, i18n.T("voice_recording"))
	p.log.Debug("запись начата", "step", step, "format", rec.format.MIMEType)
	return nil
}

func (p *Pipeline) appendChunk(rec *recording, chunk []byte) {
	if len(chunk) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !rec.active {
		return
	}
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	rec.chunks = append(rec.chunks, buf)
}

func (p *Pipeline) stop(ctx context.Context) error {
	p.mu.Lock()
	rec := p.rec
	p.mu.Unlock()

	if rec == nil {
		return nil
	}

	// Микрофон освобождается до любых сетевых вызовов
	chunks := p.teardown(rec)
	step := rec.step

	if len(chunks) == 0 {
		p.showError(step, i18n.T("voice_too_short"))
		return ErrTooShort
	}

	if p.env.Transcriber == nil {
		p.showError(step, labelFor(ErrUnsupported))
		return ErrUnsupported
	}

	payload := Assemble(chunks, rec.format)
	p.log.Debug("запись остановлена", "step", step, "chunks", len(chunks), "bytes", len(payload.PCM))

	// Подпись "распознаю" ставится до запуска горутины: новая запись
	// может начаться сразу после возврата
	gen := p.setStatus(step, StateConverting, i18n.T("voice_converting"))

	p.wg.Add(1)
	go p.transcribe(context.WithoutCancel(ctx), step, gen, payload)
	return nil
}

// teardown сбрасывает буфер, останавливает рекордер и освобождает поток.
// Возвращает накопленные чанки. После возврата состояние - ожидание.
func (p *Pipeline) teardown(rec *recording) [][]byte {
	defer p.release(rec)

	rec.recorder.Flush()
	if err := rec.recorder.Stop(); err != nil {
		p.log.Warn("ошибка остановки рекордера", "error", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	chunks := rec.chunks
	rec.chunks = nil
	return chunks
}

// release переводит запись в неактивное состояние и закрывает поток.
func (p *Pipeline) release(rec *recording) {
	p.mu.Lock()
	rec.active = false
	stream := rec.stream
	rec.stream = nil
	rec.recorder = nil
	if p.rec == rec {
		p.rec = nil
	}
	p.mu.Unlock()

	if stream != nil {
		p.closeStream(stream)
	}
}

func (p *Pipeline) closeStream(stream Stream) {
	if err := stream.Close(); err != nil {
		p.log.Warn("ошибка освобождения микрофона", "error", err)
	}
}

// transcribe распознаёт запись. gen - поколение подписи "распознаю":
// если кнопкой уже владеет новая запись, итоговая подпись не ставится.
func (p *Pipeline) transcribe(ctx context.Context, step, gen int, payload Payload) {
	defer p.wg.Done()

	start := time.Now()

	p.mu.Lock()
	lang := p.lang
	p.mu.Unlock()

	var text string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		text, err = p.env.Transcriber.Transcribe(gctx, payload, lang)
		return err
	})
	// "Распознаю" показывается не меньше MinConverting, ошибка прерывает ожидание
	g.Go(func() error {
		timer := time.NewTimer(p.timing.MinConverting)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		p.log.Warn("ошибка распознавания", "step", step, "error", err)
		if errGen, ok := p.setStatusIf(gen, step, StateError, truncate(err.Error(), ErrorLabelLimit)); ok {
			p.revertAfter(step, errGen)
		}
		return
	}

	options := p.lesson.Options(step)
	idx := Match(text, options)
	p.log.Info("распознано", "step", step, "text", text, "match", idx, "took", time.Since(start).Round(time.Millisecond))

	if idx >= 0 {
		if err := p.lesson.SelectOption(step, options[idx]); err != nil {
			p.log.Warn("не удалось выбрать вариант", "step", step, "option", options[idx], "error", err)
		}
	}

	p.setStatusIf(gen, step, StateIdle, i18n.T("voice_idle"))
}

// showError показывает ошибку и через ErrorDisplay возвращает подпись
// ожидания в фоне.
func (p *Pipeline) showError(step int, label string) {
	p.wg.Add(1)
	gen := p.setStatus(step, StateError, label)
	go func() {
		defer p.wg.Done()
		p.revertAfter(step, gen)
	}()
}

func (p *Pipeline) revertAfter(step, gen int) {
	time.Sleep(p.timing.ErrorDisplay)

	p.mu.Lock()
	defer p.mu.Unlock()
	// Если за это время подпись поменялась (новая запись), не трогаем её
	if p.statusGen != gen {
		return
	}
	p.statusGen++
	p.display.SetVoiceStatus(step, StateIdle, i18n.T("voice_idle"))
}

func (p *Pipeline) setStatus(step int, state State, label string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusGen++
	p.display.SetVoiceStatus(step, state, label)
	return p.statusGen
}

// setStatusIf меняет подпись, только если с поколения gen её никто не менял.
func (p *Pipeline) setStatusIf(gen, step int, state State, label string) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.statusGen != gen {
		return p.statusGen, false
	}
	p.statusGen++
	p.display.SetVoiceStatus(step, state, label)
	return p.statusGen, true
}

func labelFor(err error) string {
	switch {
	case errors.Is(err, ErrInsecureContext):
		return i18n.T("voice_insecure")
	case errors.Is(err, ErrUnsupported):
		return i18n.T("voice_unsupported")
	case errors.Is(err, ErrNoDevice):
		return i18n.T("voice_no_device")
	case errors.Is(err, ErrTooShort):
		return i18n.T("voice_too_short")
	default:
		return i18n.T("voice_failed")
	}
}
