package models

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"linglong/internal/logger"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		f.Write([]byte(content))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestVoskModel(t *testing.T) {
	tests := []struct {
		url  string
		dir  string
		isOK bool
	}{
		{"https://alphacephei.com/vosk/models/vosk-model-small-en-us-0.15.zip", "vosk-model-small-en-us-0.15", true},
		{"https://example.com/models/model.tar.gz", "", false},
		{"not a url", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		info, ok := VoskModel(tt.url)
		if ok != tt.isOK || info.Dir != tt.dir {
			t.Errorf("VoskModel(%q) = %+v, %v", tt.url, info, ok)
		}
	}
}

func TestDownloadAndDelete(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"vosk-model-test/am/final.mdl": "model",
		"vosk-model-test/conf/mfcc.conf": "conf",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	m, err := NewManager(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	info, ok := VoskModel(srv.URL + "/vosk-model-test.zip")
	if !ok {
		t.Fatalf("VoskModel failed")
	}
	if m.IsDownloaded(info) {
		t.Fatalf("model must not be downloaded yet")
	}

	progress := make(chan Progress, 64)
	if err := m.Download(context.Background(), info, progress); err != nil {
		t.Fatalf("Download: %v", err)
	}
	close(progress)

	var done bool
	for p := range progress {
		done = done || p.Done
	}
	if !done {
		t.Fatalf("no final progress update")
	}

	if !m.IsDownloaded(info) {
		t.Fatalf("model must be downloaded")
	}
	data, err := os.ReadFile(filepath.Join(m.Path(info), "am", "final.mdl"))
	if err != nil || string(data) != "model" {
		t.Fatalf("extracted file = %q, %v", data, err)
	}

	if err := m.Delete(info); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.IsDownloaded(info) {
		t.Fatalf("model must be deleted")
	}
}

func TestDownloadRejectsEscapingPaths(t *testing.T) {
	archive := zipArchive(t, map[string]string{"../evil.txt": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	dir := t.TempDir()
	m, err := NewManager(filepath.Join(dir, "models"), logger.Nop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	info, _ := VoskModel(srv.URL + "/evil.zip")
	if err := m.Download(context.Background(), info, nil); err == nil {
		t.Fatalf("expected error for path outside of models dir")
	}
	if _, err := os.Stat(filepath.Join(dir, "models", "evil.txt")); err == nil {
		t.Fatalf("file escaped models/vosk")
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	m, _ := NewManager(t.TempDir(), logger.Nop())
	info, _ := VoskModel(srv.URL + "/missing.zip")
	if err := m.Download(context.Background(), info, nil); err == nil {
		t.Fatalf("expected HTTP error")
	}
}
