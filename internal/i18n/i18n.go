// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	ID Language = "id"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "Linglong",
		"app_tooltip": "Linglong - learn Indonesian",

		// Tray menu
		"tray_level":          "Level 1",
		"tray_check":          "Check answer",
		"tray_check_hint":     "Submit the selected option",
		"tray_speak":          "Listen to the prompt",
		"tray_speak_hint":     "Play the prompt aloud",
		"tray_sign_in":        "Sign in...",
		"tray_sign_in_hint":   "Sign in to use the speech service",
		"tray_signed_in":      "Signed in",
		"tray_reels":          "Reels",
		"tray_reel_next":      "Next reel",
		"tray_reel_prev":      "Previous reel",
		"tray_reel_open":      "Watch",
		"tray_reels_empty":    "No reels yet",
		"tray_reel_quiz":      "Reel quiz",
		"tray_sign_up":        "Create account...",
		"tray_sign_up_hint":   "Register to use the speech service",

		// Reel quiz
		"reel_quiz_title":  "Reel quiz",
		"reel_quiz_result": "You got %d out of %d correct.",

		// Sign up
		"sign_up_title":  "Create account",
		"sign_up_name":   "Your name",
		"sign_up_failed": "Registration failed",
		"sign_up_ok":     "Account created",
		"tray_compact":        "Compact menu",
		"tray_compact_hint":   "Hide the prompt and hints",
		"tray_notifications":  "Notifications",
		"tray_quit":           "Quit",
		"tray_quit_hint":      "Close application",
		"tray_steps_done":     "Answered",
		"tray_level_complete": "Level complete",

		// Mascot
		"mascot_neutral": "Linglong is watching...",
		"mascot_happy":   "Linglong is happy!",
		"mascot_sad":     "Linglong is sad...",

		// Voice answer
		"voice_idle":        "Answer by voice",
		"voice_recording":   "Recording... press again to stop",
		"voice_converting":  "Converting speech...",
		"voice_too_short":   "Recording too short",
		"voice_insecure":    "Microphone needs a secure connection",
		"voice_unsupported": "Voice input is not supported here",
		"voice_no_device":   "No microphone found",
		"voice_failed":      "Could not start recording",

		// Notices
		"wrong_title":    "Not quite",
		"wrong_text":     "That's not the right answer. Try again!",
		"complete_title": "Level complete",
		"complete_text":  "You finished all steps of level 1!",

		// Sign in
		"sign_in_title":    "Sign in",
		"sign_in_email":    "Email",
		"sign_in_password": "Password",
		"sign_in_failed":   "Sign in failed",
		"sign_in_ok":       "Signed in",

		// Hotkey
		"tray_hotkey":      "Voice hotkey...",
		"tray_hotkey_hint": "Change the voice answer hotkey",
		"hotkey_title":     "Voice hotkey",
		"hotkey_modifiers": "Choose modifiers:",
		"hotkey_key":       "Choose a key:",
		"hotkey_no_mods":   "Choose at least one modifier",
		"hotkey_failed":    "Could not register the hotkey",

		// Offline speech model
		"tray_offline_model": "Download offline speech model",
		"model_downloading":  "Downloading speech model...",
		"model_ready":        "Offline speech model is ready",
		"model_failed":       "Could not load the speech model",

		// Notifications
		"notify_ready": "Linglong is ready",
		"notify_error": "Error",
	},

	ID: {
		// App
		"app_name":    "Linglong",
		"app_tooltip": "Linglong - belajar bahasa Indonesia",

		// Tray menu
		"tray_level":          "Level 1",
		"tray_check":          "Periksa jawaban",
		"tray_check_hint":     "Kirim pilihan yang dipilih",
		"tray_speak":          "Dengarkan soal",
		"tray_speak_hint":     "Putar soal dengan suara",
		"tray_sign_in":        "Masuk...",
		"tray_sign_in_hint":   "Masuk untuk memakai layanan suara",
		"tray_signed_in":      "Sudah masuk",
		"tray_reels":          "Reel",
		"tray_reel_next":      "Reel berikutnya",
		"tray_reel_prev":      "Reel sebelumnya",
		"tray_reel_open":      "Tonton",
		"tray_reels_empty":    "Belum ada reel",
		"tray_reel_quiz":      "Kuis reel",
		"tray_sign_up":        "Buat akun...",
		"tray_sign_up_hint":   "Daftar untuk memakai layanan suara",

		// Reel quiz
		"reel_quiz_title":  "Kuis reel",
		"reel_quiz_result": "Benar %d dari %d.",

		// Sign up
		"sign_up_title":  "Buat akun",
		"sign_up_name":   "Nama kamu",
		"sign_up_failed": "Pendaftaran gagal",
		"sign_up_ok":     "Akun dibuat",
		"tray_compact":        "Menu ringkas",
		"tray_compact_hint":   "Sembunyikan soal dan petunjuk",
		"tray_notifications":  "Notifikasi",
		"tray_quit":           "Keluar",
		"tray_quit_hint":      "Tutup aplikasi",
		"tray_steps_done":     "Terjawab",
		"tray_level_complete": "Level selesai",

		// Mascot
		"mascot_neutral": "Linglong sedang memperhatikan...",
		"mascot_happy":   "Linglong senang!",
		"mascot_sad":     "Linglong sedih...",

		// Voice answer
		"voice_idle":        "Jawab dengan suara",
		"voice_recording":   "Merekam... tekan lagi untuk berhenti",
		"voice_converting":  "Mengubah suara...",
		"voice_too_short":   "Rekaman terlalu pendek",
		"voice_insecure":    "Mikrofon butuh koneksi aman",
		"voice_unsupported": "Input suara tidak didukung",
		"voice_no_device":   "Mikrofon tidak ditemukan",
		"voice_failed":      "Tidak bisa mulai merekam",

		// Notices
		"wrong_title":    "Belum tepat",
		"wrong_text":     "Jawaban belum benar. Coba lagi!",
		"complete_title": "Level selesai",
		"complete_text":  "Kamu menyelesaikan semua langkah level 1!",

		// Sign in
		"sign_in_title":    "Masuk",
		"sign_in_email":    "Email",
		"sign_in_password": "Kata sandi",
		"sign_in_failed":   "Gagal masuk",
		"sign_in_ok":       "Berhasil masuk",

		// Hotkey
		"tray_hotkey":      "Tombol pintas suara...",
		"tray_hotkey_hint": "Ubah tombol pintas jawaban suara",
		"hotkey_title":     "Tombol pintas suara",
		"hotkey_modifiers": "Pilih pengubah:",
		"hotkey_key":       "Pilih tombol:",
		"hotkey_no_mods":   "Pilih setidaknya satu pengubah",
		"hotkey_failed":    "Tombol pintas tidak bisa didaftarkan",

		// Offline speech model
		"tray_offline_model": "Unduh model suara offline",
		"model_downloading":  "Mengunduh model suara...",
		"model_ready":        "Model suara offline siap",
		"model_failed":       "Model suara tidak bisa dimuat",

		// Notifications
		"notify_ready": "Linglong siap",
		"notify_error": "Kesalahan",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; !ok {
		return
	}
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, ID}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case EN:
		return "English"
	case ID:
		return "Bahasa Indonesia"
	default:
		return string(lang)
	}
}
