// Package models управляет локальными моделями распознавания речи.
package models

import (
	"net/url"
	"path"
	"strings"
)

// ModelInfo информация о модели.
type ModelInfo struct {
	ID   string // "vosk-model-small-id"
	Name string // отображаемое имя
	Dir  string // директория модели после распаковки
	URL  string // zip архив
	Size int64  // ожидаемый размер, если сервер не отдал Content-Length
}

// VoskModel описывает модель Vosk по ссылке на zip архив.
// Имя директории берётся из имени архива, как это принято у Vosk.
func VoskModel(rawURL string) (ModelInfo, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ModelInfo{}, false
	}
	base := path.Base(u.Path)
	if !strings.HasSuffix(base, ".zip") {
		return ModelInfo{}, false
	}
	dir := strings.TrimSuffix(base, ".zip")
	if dir == "" {
		return ModelInfo{}, false
	}
	return ModelInfo{
		ID:   dir,
		Name: dir,
		Dir:  dir,
		URL:  rawURL,
	}, true
}
