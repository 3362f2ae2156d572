package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := NewAt("")

	if c.Language() != "id" || c.UILanguage() != "en" {
		t.Fatalf("languages = %q/%q", c.Language(), c.UILanguage())
	}
	if !c.NotificationsEnabled() {
		t.Fatalf("notifications must be on by default")
	}
	if got := c.Hotkey().String(); got != "ctrl+shift+space" {
		t.Fatalf("hotkey = %q", got)
	}
	if c.Store() != DefaultStore || c.STTEngine() != DefaultSTTEngine || c.LogMode() != DefaultLogMode {
		t.Fatalf("store=%q stt=%q log=%q", c.Store(), c.STTEngine(), c.LogMode())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c := NewAt(path)
	c.SetAPIURL("https://api.linglong.app")
	c.SetSTTEngine("vosk")
	c.SetVoskModelURL("https://example.com/vosk-model-small-id.zip")
	if c.ToggleNotifications() {
		t.Fatalf("toggle must disable notifications")
	}

	reloaded := NewAt(path)
	if reloaded.APIURL() != "https://api.linglong.app" {
		t.Fatalf("APIURL = %q", reloaded.APIURL())
	}
	if reloaded.STTEngine() != "vosk" || reloaded.VoskModelURL() == "" {
		t.Fatalf("stt = %q, model = %q", reloaded.STTEngine(), reloaded.VoskModelURL())
	}
	if reloaded.NotificationsEnabled() {
		t.Fatalf("notifications must stay disabled")
	}
	if reloaded.Language() != "id" {
		t.Fatalf("missing fields must keep defaults, language = %q", reloaded.Language())
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data, _ := json.Marshal(map[string]any{"notifications": true, "ui_language": "id"})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := NewAt(path)
	if c.UILanguage() != "id" || c.APIURL() != DefaultAPIURL || c.Hotkey().Key != KeySpace {
		t.Fatalf("ui=%q api=%q key=%q", c.UILanguage(), c.APIURL(), c.Hotkey().Key)
	}
}

func TestCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if c := NewAt(path); c.APIURL() != DefaultAPIURL {
		t.Fatalf("APIURL = %q", c.APIURL())
	}
}

func TestEnvOverridesAreNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(EnvAPIURL, "https://staging.linglong.app")
	t.Setenv(EnvStore, "sqlite")

	c := NewAt(path)
	if c.APIURL() != "https://staging.linglong.app" || c.Store() != "sqlite" {
		t.Fatalf("api=%q store=%q", c.APIURL(), c.Store())
	}

	c.SetUILanguage("id")

	var saved configData
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	json.Unmarshal(data, &saved)
	if saved.APIURL != DefaultAPIURL || saved.Store != DefaultStore {
		t.Fatalf("env override leaked into file: %+v", saved)
	}
}

func TestOnHotkeyChange(t *testing.T) {
	c := NewAt("")

	var got HotkeyConfig
	c.OnHotkeyChange(func(hk HotkeyConfig) { got = hk })

	hk := HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyV}
	c.SetHotkey(hk)

	if got.String() != "alt+v" || c.Hotkey().String() != "alt+v" {
		t.Fatalf("hotkey = %q, callback = %q", c.Hotkey().String(), got.String())
	}
}
