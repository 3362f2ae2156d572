// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"sync"

	"linglong/embedded"
	"linglong/internal/api"
	"linglong/internal/audio"
	"linglong/internal/config"
	"linglong/internal/dialog"
	"linglong/internal/hotkey"
	"linglong/internal/i18n"
	"linglong/internal/lesson"
	"linglong/internal/logger"
	"linglong/internal/models"
	"linglong/internal/notify"
	"linglong/internal/playback"
	"linglong/internal/speech"
	"linglong/internal/speech/vosk"
	"linglong/internal/storage"
	"linglong/internal/tray"
	"linglong/internal/voice"
	"linglong/internal/widgets"
)

// App представляет главное приложение.
type App struct {
	mu sync.Mutex

	config       *config.Config
	log          *logger.Logger
	store        storage.Store
	client       *api.Client
	controller   *lesson.Controller
	answered     *widgets.Checklist
	microphone   *audio.Microphone
	modelManager *models.Manager
	voskModel    models.ModelInfo
	speech       *speech.Factory
	pipeline     *voice.Pipeline
	speaker      *playback.Speaker
	notifier     *notify.Notifier
	tray         *tray.Tray
	hotkey       *hotkey.Handler
	sidebar      *widgets.Sidebar
	carousel     *widgets.Carousel
	reels        []api.Reel
	quiz         []widgets.QuizQuestion

	ctx    context.Context
	cancel context.CancelFunc
}

// New создаёт новое приложение.
func New() (*App, error) {
	cfg := config.New()

	log, err := logger.New(cfg.LogMode())
	if err != nil {
		return nil, fmt.Errorf("логгер: %w", err)
	}

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	dir, err := storage.DefaultDir()
	if err != nil {
		log.Warn("директория бинарника недоступна, состояние в текущей", "error", err)
		dir = "."
	}
	store := openStore(cfg, dir, log)
	flags := storage.Flags{Store: store}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:   cfg,
		log:      log,
		store:    store,
		notifier: notify.New(cfg.NotificationsEnabled()),
		sidebar:  widgets.NewSidebar(flags, log),
		carousel: widgets.NewCarousel(0),
		ctx:      ctx,
		cancel:   cancel,
	}

	app.client = api.New(api.Config{URL: cfg.APIURL()}, store, log)

	l, err := app.loadLesson()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("урок: %w", err)
	}
	prompts := make([]string, len(l.Steps))
	for i, s := range l.Steps {
		prompts[i] = s.Prompt
	}
	app.answered = widgets.NewChecklist(prompts...)

	voskModel, hasVosk := models.VoskModel(cfg.VoskModelURL())
	app.voskModel = voskModel

	app.tray = tray.New(tray.Callbacks{
		OnSelect:       app.onSelect,
		OnCheck:        app.onCheck,
		OnSpeak:        app.onSpeak,
		OnVoice:        app.onVoice,
		OnSignIn:       app.onSignIn,
		OnSignUp:       app.onSignUp,
		OnReelPrev:     func() { app.showReel(app.carousel.Prev()) },
		OnReelNext:     app.onReelNext,
		OnReelOpen:     app.onReelOpen,
		OnReelQuiz:     func() { go app.runReelQuiz() },
		OnHotkeyClick:  app.onHotkeyClick,
		OnOfflineModel: app.onOfflineModel,
		OnCompactToggle: func() bool {
			return app.sidebar.Toggle()
		},
		OnNotificationsToggle: func() bool {
			enabled := app.config.ToggleNotifications()
			app.notifier.SetEnabled(enabled)
			return enabled
		},
		OnQuit: func() {
			app.Close()
		},
	}, tray.Options{
		Compact:       app.sidebar.Collapsed(),
		Notifications: cfg.NotificationsEnabled(),
		OfflineModel:  hasVosk,
	})
	app.tray.SetAnswered(app.answered.Count())

	view := &lessonView{tray: app.tray, controller: app.lessonController}
	controller, err := lesson.NewController(l, view, flags, log, lesson.DefaultTiming())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("урок: %w", err)
	}
	app.mu.Lock()
	app.controller = controller
	app.mu.Unlock()

	if hasVosk {
		modelsDir, err := models.DefaultDir()
		if err == nil {
			app.modelManager, err = models.NewManager(modelsDir, log)
		}
		if err != nil {
			log.Warn("локальные модели недоступны", "error", err)
		}
	}

	app.speech = speech.NewFactory(speech.FactoryConfig{
		Client:    app.client,
		Manager:   app.modelManager,
		VoskModel: voskModel,
		NewVosk:   vosk.Constructor,
	}, log)

	env := voice.Env{
		Secure:      app.client.Secure(),
		NewRecorder: audio.NewRecorder,
		Transcriber: app.speech,
	}
	if mic, err := audio.NewMicrophone(); err != nil {
		log.Warn("микрофон недоступен", "error", err)
	} else {
		app.microphone = mic
		env.Microphone = mic
	}

	app.pipeline = voice.New(env, controller, &voiceDisplay{tray: app.tray, notifier: app.notifier}, log, voice.DefaultTiming())
	app.pipeline.SetLanguage(cfg.Language())
	app.speaker = playback.New(app.client, app.client, playback.NewPlayer(), playback.NewLocalSynth(), log)
	app.speaker.SetLanguage(cfg.Language())

	app.hotkey = hotkey.New(app.onVoice, log)
	cfg.OnHotkeyChange(func(hk config.HotkeyConfig) {
		if err := app.hotkey.Register(hk); err != nil {
			log.Warn("ошибка регистрации горячей клавиши", "hotkey", hk.String(), "error", err)
			app.notifier.Error(i18n.T("hotkey_failed"))
		}
	})

	return app, nil
}

// openStore открывает хранилище состояния. Ошибки не фатальны: при
// повреждённом файле начинаем с пустого состояния, при недоступном
// хранилище держим состояние в памяти.
func openStore(cfg *config.Config, dir string, log *logger.Logger) storage.Store {
	store, err := storage.Open(storage.Backend(cfg.Store()), dir)
	if err != nil {
		log.Error("хранилище недоступно, состояние не сохранится", "backend", cfg.Store(), "error", err)
		return storage.NewMemoryStore()
	}
	if fs, ok := store.(*storage.FileStore); ok && fs.Quarantined() != "" {
		log.Warn("файл состояния повреждён, начато с пустого", "moved_to", fs.Quarantined())
	}
	return store
}

func (a *App) loadLesson() (*lesson.Lesson, error) {
	if path := a.config.LessonFile(); path != "" {
		l, err := lesson.LoadFile(path)
		if err == nil {
			return l, nil
		}
		a.log.Warn("не удалось загрузить урок из файла, используется встроенный", "path", path, "error", err)
	}
	return lesson.Parse(embedded.LessonLevel1)
}

func (a *App) lessonController() *lesson.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controller
}

// Run запускает приложение.
func (a *App) Run() {
	a.tray.Run(func() {
		// Регистрируем горячую клавишу после инициализации трея
		hk := a.config.Hotkey()
		if err := a.hotkey.Register(hk); err != nil {
			a.log.Warn("ошибка регистрации горячей клавиши", "hotkey", hk.String(), "error", err)
		}

		go a.loadRecognizer()
		go a.restoreSession()
		go a.loadReels()
	})
}

func (a *App) loadRecognizer() {
	engine := speech.Engine(a.config.STTEngine())
	err := a.speech.Load(engine)
	if err != nil && engine != speech.EngineRemote {
		a.log.Warn("движок распознавания недоступен, используется сервер", "engine", engine, "error", err)
		err = a.speech.Load(speech.EngineRemote)
	}
	if err != nil {
		a.log.Error("распознавание недоступно", "error", err)
		a.notifier.Error(i18n.T("voice_unsupported"))
		return
	}
	a.notifier.Ready()
}

// restoreSession показывает пользователя, если сохранённый токен ещё жив.
func (a *App) restoreSession() {
	if !a.client.HasValidToken() {
		return
	}
	user, err := a.client.Me(a.ctx)
	if err != nil {
		a.log.Warn("не удалось восстановить сессию", "error", err)
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			_ = a.client.SetToken("")
		}
		return
	}
	a.tray.SetSignedIn(user.Email)
}

func (a *App) loadReels() {
	reels, err := a.client.Reels(a.ctx)
	if err != nil {
		a.log.Warn("ролики недоступны", "error", err)
		return
	}

	a.mu.Lock()
	a.reels = reels
	a.mu.Unlock()
	a.carousel.Resize(len(reels))
	a.showReel(a.carousel.Index())

	batches, err := a.client.ReelBatches(a.ctx)
	if err != nil {
		a.log.Warn("вопросы к роликам недоступны", "error", err)
		return
	}
	quiz := widgets.QuizFromBatches(batches)
	a.mu.Lock()
	a.quiz = quiz
	a.mu.Unlock()
	a.tray.SetReelQuiz(len(quiz) > 0)
}

// onReelNext листает ролики. После последнего ролика карусель
// возвращается к первому и открывается викторина.
func (a *App) onReelNext() {
	last := a.carousel.Index() == a.carousel.Len()-1
	a.showReel(a.carousel.Next())
	if last && a.carousel.Len() > 0 {
		go a.runReelQuiz()
	}
}

func (a *App) runReelQuiz() {
	a.mu.Lock()
	quiz := a.quiz
	a.mu.Unlock()
	if len(quiz) == 0 {
		return
	}

	answers, err := dialog.ReelQuiz(quiz)
	if err != nil {
		if !errors.Is(err, dialog.ErrCanceled) {
			a.log.Warn("ошибка викторины", "error", err)
		}
		return
	}

	result := widgets.ScoreQuiz(quiz, answers)
	a.log.Info("викторина по роликам", "correct", result.Correct, "total", result.Total)
	dialog.ShowQuizResult(result)
}

func (a *App) showReel(i int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= len(a.reels) {
		a.tray.SetReel("", 0, 0)
		return
	}
	a.tray.SetReel(a.reels[i].Title, i, len(a.reels))
}

func (a *App) onReelOpen() {
	a.mu.Lock()
	i := a.carousel.Index()
	var url string
	if i >= 0 && i < len(a.reels) {
		url = a.client.Resolve(a.reels[i].VideoURL)
	}
	a.mu.Unlock()

	if url == "" {
		return
	}
	if err := openURL(url); err != nil {
		a.log.Warn("не удалось открыть ролик", "url", url, "error", err)
		a.notifier.Error(err.Error())
	}
}

func (a *App) onSelect(step int, value string) {
	if err := a.controller.SelectOption(step, value); err != nil {
		a.log.Warn("выбор варианта отклонён", "step", step, "value", value, "error", err)
	}
}

func (a *App) onCheck() {
	step := a.controller.CurrentStep()
	outcome := a.controller.CheckAnswer()
	a.log.Debug("проверка ответа", "step", step, "outcome", outcome)

	switch outcome {
	case lesson.OutcomeAdvanced, lesson.OutcomeCompleted:
		if !a.answered.Done(step - 1) {
			a.answered.Toggle(step - 1)
		}
		a.tray.SetAnswered(a.answered.Count())
	}
}

func (a *App) onSpeak() {
	step, ok := a.controller.Step(a.controller.CurrentStep())
	if !ok {
		return
	}
	go func() {
		if err := a.speaker.SpeakPrompt(a.ctx, step.SpeechText()); err != nil {
			a.log.Warn("ошибка озвучки", "step", step.Number, "error", err)
			a.notifier.Error(err.Error())
		}
	}()
}

func (a *App) onVoice() {
	// Остановка ждёт освобождения микрофона, поэтому не в горутине меню
	go func() {
		if err := a.pipeline.Toggle(a.ctx); err != nil {
			a.log.Warn("голосовой ответ", "error", err)
		}
	}()
}

func (a *App) onSignIn() {
	creds, err := dialog.SignIn()
	if err != nil {
		if !errors.Is(err, dialog.ErrCanceled) {
			a.log.Warn("ошибка формы входа", "error", err)
		}
		return
	}

	resp, err := a.client.Login(a.ctx, creds.Email, creds.Password)
	if err != nil {
		a.log.Warn("вход не выполнен", "email", creds.Email, "error", err)
		dialog.ShowError(i18n.T("sign_in_failed"), err.Error())
		return
	}

	a.tray.SetSignedIn(resp.User.Email)
	a.notifier.SignedIn(resp.User.Email)
}

func (a *App) onSignUp() {
	reg, err := dialog.SignUp()
	if err != nil {
		if !errors.Is(err, dialog.ErrCanceled) {
			a.log.Warn("ошибка формы регистрации", "error", err)
		}
		return
	}

	resp, err := a.client.Register(a.ctx, api.RegisterRequest{
		Email:            reg.Email,
		Password:         reg.Password,
		Name:             reg.Name,
		NativeLanguage:   a.config.UILanguage(),
		LearningLanguage: a.config.Language(),
	})
	if err != nil {
		a.log.Warn("регистрация не выполнена", "email", reg.Email, "error", err)
		dialog.ShowError(i18n.T("sign_up_failed"), err.Error())
		return
	}

	a.tray.SetSignedIn(resp.User.Email)
	a.notifier.Info(i18n.T("sign_up_ok") + ": " + resp.User.Email)
}

func (a *App) onHotkeyClick() {
	hk, err := dialog.SelectHotkey(a.config.Hotkey())
	if err != nil {
		if !errors.Is(err, dialog.ErrCanceled) {
			a.log.Warn("ошибка выбора горячей клавиши", "error", err)
		}
		return
	}
	// Перерегистрация через OnHotkeyChange
	a.config.SetHotkey(hk)
}

// onOfflineModel скачивает модель Vosk и переключает распознавание на неё.
func (a *App) onOfflineModel() {
	if a.modelManager == nil {
		a.notifier.Error(i18n.T("model_failed"))
		return
	}

	go func() {
		progress := make(chan models.Progress, 16)
		done := make(chan struct{})
		go func() {
			defer close(done)
			last := -1
			for p := range progress {
				if p.Total <= 0 || p.Done {
					continue
				}
				// Уведомляем каждые 25%
				if pct := int(p.Downloaded * 100 / p.Total / 25); pct != last {
					last = pct
					a.log.Debug("загрузка модели", "model", p.ModelID, "downloaded", p.Downloaded, "total", p.Total)
				}
			}
		}()

		a.notifier.Info(i18n.T("model_downloading"))
		err := a.modelManager.Download(a.ctx, a.voskModel, progress)
		close(progress)
		<-done

		if err == nil {
			err = a.speech.Swap(speech.EngineVosk)
		}
		if err != nil {
			a.log.Error("локальная модель не загружена", "model", a.voskModel.ID, "error", err)
			a.notifier.Error(i18n.T("model_failed"))
			return
		}

		a.config.SetSTTEngine(string(speech.EngineVosk))
		a.notifier.Info(i18n.T("model_ready"))
	}()
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.cancel()

	if a.hotkey != nil {
		a.hotkey.Unregister()
	}

	// Запись останавливается до portaudio.Terminate
	if a.pipeline != nil {
		a.pipeline.Shutdown()
	}

	if a.microphone != nil {
		a.microphone.Close()
	}

	if a.speech != nil {
		a.speech.Close()
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("ошибка закрытия хранилища", "error", err)
		}
	}

	a.log.Sync()
}

// openURL открывает ссылку в браузере по умолчанию.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
