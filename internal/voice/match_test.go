package voice

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Selamat   PAGI ", "selamat pagi"},
		{"Halo", "halo"},
		{"\tterima\nkasih", "terima kasih"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	options := []string{"halo", "selamat pagi", "terima kasih"}

	tests := []struct {
		name       string
		transcript string
		options    []string
		want       int
	}{
		{"exact ignoring case and spaces", "Selamat   PAGI", options, 1},
		{"transcript contains option", "saya bilang halo", options, 0},
		{"option contains transcript", "kasih", options, 2},
		{"no match", "sampai jumpa", options, -1},
		{"empty transcript", "", options, -1},
		{"whitespace transcript", "   ", options, -1},
		{"no options", "halo", nil, -1},
		{"exact beats earlier containment", "pagi", []string{"selamat pagi", "pagi"}, 1},
		{"first declared wins inside a rule", "halo halo dunia", []string{"dunia", "halo"}, 0},
		{"empty option never matches", "apa", []string{"", "apa"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.transcript, tt.options); got != tt.want {
				t.Fatalf("Match(%q) = %d, want %d", tt.transcript, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	short := "network error"
	if got := truncate(short, ErrorLabelLimit); got != short {
		t.Fatalf("truncate(short) = %q", got)
	}

	long := "Post \"https://api.example.com/stt\": dial tcp: connection refused"
	got := truncate(long, ErrorLabelLimit)
	if n := len([]rune(got)); n != ErrorLabelLimit {
		t.Fatalf("truncated length = %d, want %d", n, ErrorLabelLimit)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("truncated label must end with ellipsis: %q", got)
	}
}
