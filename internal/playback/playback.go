// Package playback озвучивает подсказку шага: сначала через сервер,
// при любой ошибке - синтезом речи на устройстве.
package playback

import (
	"context"
	"errors"
	"strings"
	"time"

	"linglong/internal/logger"
)

// Language - языковая подсказка для озвучки.
const Language = "id"

// VoiceRetryDelay - пауза перед повторным запросом списка голосов.
const VoiceRetryDelay = 250 * time.Millisecond

// ErrNoPlayer - в системе нет подходящего проигрывателя.
var ErrNoPlayer = errors.New("no audio player found")

// Synthesizer - серверная озвучка.
type Synthesizer interface {
	// TTS возвращает ссылку на аудио.
	TTS(ctx context.Context, text, language, voice string) (string, error)
	// Resolve делает ссылку сервера абсолютной.
	Resolve(ref string) string
}

// TokenSource отдаёт токен сессии.
type TokenSource interface {
	Token() string
}

// Player проигрывает аудио по ссылке.
type Player interface {
	Play(ctx context.Context, url string) error
}

// Voice - голос синтезатора.
type Voice struct {
	Name     string
	Language string
}

// LocalSynth - синтез речи на устройстве.
type LocalSynth interface {
	Voices(ctx context.Context) ([]Voice, error)
	// Speak произносит текст. Пустое имя голоса - голос по умолчанию
	// для языка.
	Speak(ctx context.Context, text string, voice Voice) error
}

// Speaker озвучивает подсказки.
type Speaker struct {
	remote     Synthesizer
	tokens     TokenSource
	player     Player
	local      LocalSynth
	log        *logger.Logger
	lang       string
	retryDelay time.Duration
}

// New создаёт Speaker. Любой из участников может быть nil.
func New(remote Synthesizer, tokens TokenSource, player Player, local LocalSynth, log *logger.Logger) *Speaker {
	return &Speaker{
		remote:     remote,
		tokens:     tokens,
		player:     player,
		local:      local,
		log:        log.With("component", "playback"),
		lang:       Language,
		retryDelay: VoiceRetryDelay,
	}
}

// SetLanguage задаёт язык озвучки. Вызывается до первого SpeakPrompt,
// пустая строка оставляет Language.
func (s *Speaker) SetLanguage(lang string) {
	if lang != "" {
		s.lang = lang
	}
}

// SpeakPrompt озвучивает текст.
func (s *Speaker) SpeakPrompt(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if s.hasToken() {
		err := s.speakRemote(ctx, text)
		if err == nil {
			return nil
		}
		s.log.Warn("серверная озвучка недоступна, синтез на устройстве", "error", err)
	}

	return s.speakLocal(ctx, text)
}

func (s *Speaker) hasToken() bool {
	return s.remote != nil && s.player != nil && s.tokens != nil && s.tokens.Token() != ""
}

func (s *Speaker) speakRemote(ctx context.Context, text string) error {
	ref, err := s.remote.TTS(ctx, text, s.lang, "")
	if err != nil {
		return err
	}
	url := s.remote.Resolve(ref)
	s.log.Debug("проигрывание", "url", url)
	return s.player.Play(ctx, url)
}

func (s *Speaker) speakLocal(ctx context.Context, text string) error {
	if s.local == nil {
		return ErrNoPlayer
	}

	voices, err := s.local.Voices(ctx)
	if err != nil {
		s.log.Debug("список голосов недоступен", "error", err)
	}
	// Список голосов может быть ещё не загружен
	if len(voices) == 0 {
		select {
		case <-time.After(s.retryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
		voices, _ = s.local.Voices(ctx)
	}

	voice := PickVoice(voices, s.lang)
	s.log.Debug("синтез на устройстве", "voice", voice.Name, "lang", voice.Language)
	return s.local.Speak(ctx, text, voice)
}

// PickVoice выбирает первый голос нужного языка. Если такого нет,
// возвращает голос без имени с языковой подсказкой.
func PickVoice(voices []Voice, lang string) Voice {
	for _, v := range voices {
		if sameLanguage(v.Language, lang) {
			return v
		}
	}
	return Voice{Language: lang}
}

// sameLanguage сравнивает основной субтег: "id-ID" и "id_ID" это "id".
func sameLanguage(tag, lang string) bool {
	tag = strings.ToLower(tag)
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag != "" && tag == strings.ToLower(lang)
}
