package i18n

import "testing"

func TestTranslationsHaveSameKeys(t *testing.T) {
	for key := range translations[EN] {
		if _, ok := translations[ID][key]; !ok {
			t.Errorf("key %q missing in %s", key, ID)
		}
	}
	for key := range translations[ID] {
		if _, ok := translations[EN][key]; !ok {
			t.Errorf("key %q missing in %s", key, EN)
		}
	}
}

func TestT(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(ID)
	if got := T("voice_too_short"); got != "Rekaman terlalu pendek" {
		t.Fatalf("T() = %q", got)
	}

	SetLanguage("xx")
	if GetLanguage() != ID {
		t.Fatalf("unsupported language must be ignored")
	}

	if got := T("no_such_key"); got != "no_such_key" {
		t.Fatalf("missing key should fall back to the key, got %q", got)
	}
}
