// Package dialog предоставляет модальные диалоги урока и настроек.
package dialog

import (
	"errors"
	"strings"

	"github.com/ncruces/zenity"

	"linglong/internal/config"
	"linglong/internal/i18n"
	"linglong/internal/widgets"
)

// ErrCanceled - пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// ShowWrong показывает сообщение о неверном ответе. Блокирует до закрытия.
func ShowWrong() {
	zenity.Warning(i18n.T("wrong_text"), zenity.Title(i18n.T("wrong_title")))
}

// ShowComplete показывает сообщение о прохождении уровня. Блокирует до закрытия.
func ShowComplete() {
	zenity.Info(i18n.T("complete_text"), zenity.Title(i18n.T("complete_title")))
}

// Credentials - данные формы входа.
type Credentials struct {
	Email    string
	Password string
}

// SignIn запрашивает email и пароль.
func SignIn() (Credentials, error) {
	email, password, err := zenity.Password(
		zenity.Title(i18n.T("sign_in_title")),
		zenity.Username(),
	)
	if err != nil {
		return Credentials{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Credentials{}, ErrCanceled
	}
	return Credentials{Email: email, Password: password}, nil
}

// Registration - данные формы регистрации.
type Registration struct {
	Name string
	Credentials
}

// SignUp запрашивает имя, затем email и пароль.
func SignUp() (Registration, error) {
	name, err := zenity.Entry(i18n.T("sign_up_name"), zenity.Title(i18n.T("sign_up_title")))
	if err != nil {
		return Registration{}, err
	}
	email, password, err := zenity.Password(
		zenity.Title(i18n.T("sign_up_title")),
		zenity.Username(),
	)
	if err != nil {
		return Registration{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Registration{}, ErrCanceled
	}
	return Registration{
		Name:        strings.TrimSpace(name),
		Credentials: Credentials{Email: email, Password: password},
	}, nil
}

// ReelQuiz задаёт вопросы викторины по одному. Вопрос с вариантами -
// список, без вариантов - поле ввода. Возвращает ответы по порядку.
func ReelQuiz(questions []widgets.QuizQuestion) ([]string, error) {
	title := zenity.Title(i18n.T("reel_quiz_title"))
	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		var (
			answer string
			err    error
		)
		if len(q.Options) > 0 {
			answer, err = zenity.List(q.Prompt, q.Options, title)
		} else {
			answer, err = zenity.Entry(q.Prompt, title)
		}
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// ShowQuizResult показывает итог викторины.
func ShowQuizResult(r widgets.QuizResult) {
	title := zenity.Title(i18n.T("reel_quiz_title"))
	if r.Perfect() {
		zenity.Info(r.Text(), title)
		return
	}
	zenity.Warning(r.Text(), title)
}

var modifierNames = []struct {
	title string
	mod   config.Modifier
}{
	{"Ctrl", config.ModCtrl},
	{"Shift", config.ModShift},
	{"Alt", config.ModAlt},
	{"Super (Win/Cmd)", config.ModSuper},
}

// SelectHotkey открывает диалог выбора горячей клавиши голосового ответа.
// Возвращает выбранную конфигурацию или ошибку если пользователь отменил.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	// Шаг 1: модификаторы
	modOptions := make([]string, len(modifierNames))
	var currentMods []string
	for i, m := range modifierNames {
		modOptions[i] = m.title
		for _, cm := range current.Modifiers {
			if cm == m.mod {
				currentMods = append(currentMods, m.title)
			}
		}
	}

	selectedMods, err := zenity.ListMultiple(
		i18n.T("hotkey_modifiers"),
		modOptions,
		zenity.Title(i18n.T("hotkey_title")),
		zenity.DefaultItems(currentMods...),
	)
	if err != nil {
		return current, err
	}

	mods := parseModifiers(selectedMods)
	if len(mods) == 0 {
		return current, errors.New(i18n.T("hotkey_no_mods"))
	}

	// Шаг 2: клавиша
	keys := config.AvailableKeys()
	keyOptions := make([]string, len(keys))
	for i, k := range keys {
		keyOptions[i] = keyTitle(k)
	}

	selectedKey, err := zenity.List(
		i18n.T("hotkey_key"),
		keyOptions,
		zenity.Title(i18n.T("hotkey_title")),
		zenity.DefaultItems(keyTitle(current.Key)),
	)
	if err != nil {
		return current, err
	}

	key := current.Key
	for i, opt := range keyOptions {
		if selectedKey == opt {
			key = keys[i]
			break
		}
	}

	return config.HotkeyConfig{Modifiers: mods, Key: key}, nil
}

func parseModifiers(titles []string) []config.Modifier {
	mods := make([]config.Modifier, 0, len(titles))
	for _, s := range titles {
		for _, m := range modifierNames {
			if s == m.title {
				mods = append(mods, m.mod)
				break
			}
		}
	}
	return mods
}

// keyTitle: "space" -> "Space", "f8" -> "F8", "v" -> "V".
func keyTitle(k config.Key) string {
	s := string(k)
	if s == "" {
		return s
	}
	if len(s) == 1 || (s[0] == 'f' && len(s) <= 3) {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
