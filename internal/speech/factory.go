package speech

import (
	"context"
	"fmt"
	"sync"

	"linglong/internal/logger"
	"linglong/internal/models"
	"linglong/internal/voice"
)

// LocalConstructor создаёт локальный движок из директории модели.
type LocalConstructor func(modelPath string) (Recognizer, error)

// Factory управляет созданием и переключением распознавателей.
// Сама является voice.Transcriber и передаёт вызов текущему движку.
type Factory struct {
	client    STTClient
	manager   *models.Manager
	voskModel models.ModelInfo
	newVosk   LocalConstructor
	log       *logger.Logger

	current Recognizer
	engine  Engine
	mu      sync.RWMutex
}

// FactoryConfig зависимости фабрики. Для EngineVosk нужны Manager,
// VoskModel и NewVosk.
type FactoryConfig struct {
	Client    STTClient
	Manager   *models.Manager
	VoskModel models.ModelInfo
	NewVosk   LocalConstructor
}

// NewFactory создаёт фабрику распознавателей.
func NewFactory(cfg FactoryConfig, log *logger.Logger) *Factory {
	return &Factory{
		client:    cfg.Client,
		manager:   cfg.Manager,
		voskModel: cfg.VoskModel,
		newVosk:   cfg.NewVosk,
		log:       log.With("component", "speech"),
	}
}

// Create создаёт распознаватель для указанного движка.
func (f *Factory) Create(engine Engine) (Recognizer, error) {
	switch engine {
	case EngineRemote:
		if f.client == nil {
			return nil, fmt.Errorf("%w: нет клиента сервера", ErrUnknownEngine)
		}
		return NewRemote(f.client), nil

	case EngineVosk:
		if f.manager == nil || f.newVosk == nil || f.voskModel.Dir == "" {
			return nil, fmt.Errorf("%w: vosk не настроен", ErrUnknownEngine)
		}
		// Проверяем что модель скачана
		if !f.manager.IsDownloaded(f.voskModel) {
			return nil, fmt.Errorf("модель не скачана: %s", f.voskModel.Name)
		}
		rec, err := f.newVosk(f.manager.Path(f.voskModel))
		if err != nil {
			return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
		}
		return rec, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}
}

// Load создаёт движок и делает его текущим.
func (f *Factory) Load(engine Engine) error {
	return f.swap(engine, false)
}

// Swap атомарно меняет текущий движок (hot-swap). Старый закрывается в фоне.
func (f *Factory) Swap(engine Engine) error {
	return f.swap(engine, true)
}

func (f *Factory) swap(engine Engine, background bool) error {
	rec, err := f.Create(engine)
	if err != nil {
		return err
	}

	f.mu.Lock()
	old := f.current
	f.current = rec
	f.engine = engine
	f.mu.Unlock()

	f.log.Info("движок распознавания", "engine", rec.Name())

	if old != nil {
		if background {
			go old.Close()
		} else {
			old.Close()
		}
	}
	return nil
}

// Current возвращает текущий распознаватель (thread-safe).
func (f *Factory) Current() Recognizer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// CurrentEngine возвращает текущий движок.
func (f *Factory) CurrentEngine() Engine {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.engine
}

// Transcribe распознаёт речь текущим движком.
func (f *Factory) Transcribe(ctx context.Context, payload voice.Payload, lang string) (string, error) {
	rec := f.Current()
	if rec == nil {
		return "", ErrNotLoaded
	}
	return rec.Transcribe(ctx, payload, lang)
}

// Close закрывает текущий распознаватель.
func (f *Factory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil {
		f.current.Close()
		f.current = nil
	}
}
