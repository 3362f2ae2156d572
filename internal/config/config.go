// Package config предоставляет конфигурацию приложения с сохранением в файл
// и переопределением через переменные окружения.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Переменные окружения, перекрывающие файл конфигурации.
const (
	EnvAPIURL    = "LINGLONG_API_URL"
	EnvLogMode   = "LINGLONG_LOG_MODE"
	EnvStore     = "LINGLONG_STORE"
	EnvSTTEngine = "LINGLONG_STT_ENGINE"
)

// Значения по умолчанию.
const (
	DefaultAPIURL    = "http://localhost:5000"
	DefaultStore     = "file"
	DefaultSTTEngine = "remote"
	DefaultLogMode   = "dev"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyL      Key = "l"
	KeyS      Key = "s"
	KeyV      Key = "v"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	parts := make([]string, 0, len(h.Modifiers)+1)
	for _, m := range h.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(h.Key))
	return strings.Join(parts, "+")
}

// configData структура для сериализации.
type configData struct {
	Language      string       `json:"language"`
	UILanguage    string       `json:"ui_language,omitempty"`
	Notifications bool         `json:"notifications"`
	Hotkey        HotkeyConfig `json:"hotkey"`
	APIURL        string       `json:"api_url,omitempty"`
	Store         string       `json:"store,omitempty"`
	STTEngine     string       `json:"stt_engine,omitempty"`
	VoskModelURL  string       `json:"vosk_model_url,omitempty"`
	LogMode       string       `json:"log_mode,omitempty"`
	LessonFile    string       `json:"lesson_file,omitempty"`
}

// Config хранит настройки приложения.
type Config struct {
	mu             sync.RWMutex
	data           configData
	env            map[string]string // не сохраняется в файл
	configPath     string
	onHotkeyChange func(HotkeyConfig)
}

func defaults() configData {
	return configData{
		Language:      "id",
		UILanguage:    "en",
		Notifications: true,
		Hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeySpace,
		},
		APIURL:    DefaultAPIURL,
		Store:     DefaultStore,
		STTEngine: DefaultSTTEngine,
		LogMode:   DefaultLogMode,
	}
}

// New создаёт конфигурацию: config.json и .env рядом с бинарником,
// затем .env в текущей директории и окружение процесса.
func New() *Config {
	var path string

	// Определяем путь к файлу конфигурации рядом с бинарником
	execPath, err := os.Executable()
	if err == nil {
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			execDir := filepath.Dir(execPath)
			path = filepath.Join(execDir, "config.json")
			// Уже заданные переменные godotenv не перезаписывает
			_ = godotenv.Load(filepath.Join(execDir, ".env"))
		}
	}
	_ = godotenv.Load()

	return NewAt(path)
}

// NewAt создаёт конфигурацию с файлом по указанному пути. Пустой путь -
// без сохранения.
func NewAt(path string) *Config {
	c := &Config{
		data:       defaults(),
		env:        make(map[string]string),
		configPath: path,
	}
	c.load()
	c.loadEnv()
	return c
}

// load загружает конфигурацию из файла.
func (c *Config) load() {
	if c.configPath == "" {
		return
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}

	def := c.data
	c.data = cfg
	c.data.Notifications = cfg.Notifications
	if cfg.Language == "" {
		c.data.Language = def.Language
	}
	if cfg.UILanguage == "" {
		c.data.UILanguage = def.UILanguage
	}
	if cfg.Hotkey.Key == "" {
		c.data.Hotkey = def.Hotkey
	}
	if cfg.APIURL == "" {
		c.data.APIURL = def.APIURL
	}
	if cfg.Store == "" {
		c.data.Store = def.Store
	}
	if cfg.STTEngine == "" {
		c.data.STTEngine = def.STTEngine
	}
	if cfg.LogMode == "" {
		c.data.LogMode = def.LogMode
	}
}

func (c *Config) loadEnv() {
	for _, key := range []string{EnvAPIURL, EnvLogMode, EnvStore, EnvSTTEngine} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			c.env[key] = v
		}
	}
}

// save сохраняет конфигурацию в файл.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(c.configPath, data, 0644)
}

func (c *Config) get(envKey, value string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.env[envKey]; ok {
		return v
	}
	return value
}

func (c *Config) update(fn func(d *configData)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.data)
	c.save()
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	return c.configPath
}

// Language возвращает язык урока (подсказка для распознавания и озвучки).
func (c *Config) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Language
}

// SetLanguage устанавливает язык урока.
func (c *Config) SetLanguage(lang string) {
	c.update(func(d *configData) { d.Language = lang })
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.update(func(d *configData) { d.UILanguage = lang })
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	var enabled bool
	c.update(func(d *configData) {
		d.Notifications = !d.Notifications
		enabled = d.Notifications
	})
	return enabled
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// Hotkey возвращает горячую клавишу голосового ответа.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Hotkey
}

// SetHotkey устанавливает горячую клавишу.
func (c *Config) SetHotkey(hk HotkeyConfig) {
	c.mu.Lock()
	c.data.Hotkey = hk
	callback := c.onHotkeyChange
	c.save()
	c.mu.Unlock()

	if callback != nil {
		callback(hk)
	}
}

// OnHotkeyChange устанавливает callback для изменения горячей клавиши.
func (c *Config) OnHotkeyChange(fn func(HotkeyConfig)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onHotkeyChange = fn
}

// APIURL возвращает адрес сервера.
func (c *Config) APIURL() string {
	c.mu.RLock()
	v := c.data.APIURL
	c.mu.RUnlock()
	return c.get(EnvAPIURL, v)
}

// SetAPIURL устанавливает адрес сервера.
func (c *Config) SetAPIURL(url string) {
	c.update(func(d *configData) { d.APIURL = url })
}

// Store возвращает хранилище состояния: "file" или "sqlite".
func (c *Config) Store() string {
	c.mu.RLock()
	v := c.data.Store
	c.mu.RUnlock()
	return c.get(EnvStore, v)
}

// STTEngine возвращает движок распознавания: "remote" или "vosk".
func (c *Config) STTEngine() string {
	c.mu.RLock()
	v := c.data.STTEngine
	c.mu.RUnlock()
	return c.get(EnvSTTEngine, v)
}

// SetSTTEngine устанавливает движок распознавания.
func (c *Config) SetSTTEngine(engine string) {
	c.update(func(d *configData) { d.STTEngine = engine })
}

// VoskModelURL возвращает ссылку на zip архив модели Vosk.
func (c *Config) VoskModelURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.VoskModelURL
}

// SetVoskModelURL устанавливает ссылку на модель Vosk.
func (c *Config) SetVoskModelURL(url string) {
	c.update(func(d *configData) { d.VoskModelURL = url })
}

// LogMode возвращает режим логирования: "dev" или "prod".
func (c *Config) LogMode() string {
	c.mu.RLock()
	v := c.data.LogMode
	c.mu.RUnlock()
	return c.get(EnvLogMode, v)
}

// LessonFile возвращает путь к YAML файлу урока. Пустой - встроенный урок.
func (c *Config) LessonFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.LessonFile
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{KeySpace, KeyReturn, KeyTab, KeyL, KeyS, KeyV, KeyF8, KeyF9, KeyF10}
}
