package models

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"linglong/internal/logger"
)

// Progress информация о прогрессе загрузки.
type Progress struct {
	ModelID    string
	Downloaded int64
	Total      int64
	Done       bool
}

// Manager управляет моделями.
type Manager struct {
	modelsDir  string
	httpClient *http.Client
	log        *logger.Logger
	mu         sync.Mutex
}

// DefaultDir возвращает директорию models/ рядом с бинарником.
func DefaultDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "", fmt.Errorf("не удалось разрешить симлинки: %w", err)
	}

	return filepath.Join(filepath.Dir(execPath), "models"), nil
}

// NewManager создаёт менеджер моделей в директории dir.
func NewManager(dir string, log *logger.Logger) (*Manager, error) {
	voskDir := filepath.Join(dir, "vosk")
	if err := os.MkdirAll(voskDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию vosk: %w", err)
	}

	return &Manager{
		modelsDir:  dir,
		httpClient: http.DefaultClient,
		log:        log.With("component", "models"),
	}, nil
}

// ModelsDir возвращает путь к директории моделей.
func (m *Manager) ModelsDir() string {
	return m.modelsDir
}

// Path возвращает полный путь к модели.
func (m *Manager) Path(info ModelInfo) string {
	return filepath.Join(m.modelsDir, "vosk", info.Dir)
}

// IsDownloaded проверяет, скачана ли модель.
func (m *Manager) IsDownloaded(info ModelInfo) bool {
	stat, err := os.Stat(m.Path(info))
	return err == nil && stat.IsDir()
}

// Download скачивает и распаковывает модель.
// progress канал получает обновления о прогрессе (можно nil).
func (m *Manager) Download(ctx context.Context, info ModelInfo, progress chan<- Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsDownloaded(info) {
		send(progress, Progress{ModelID: info.ID, Downloaded: info.Size, Total: info.Size, Done: true})
		return nil
	}

	tmpZip, err := os.CreateTemp("", "model-*.zip")
	if err != nil {
		return err
	}
	tmpPath := tmpZip.Name()
	defer os.Remove(tmpPath)

	total, err := m.fetch(ctx, info, tmpZip, progress)
	tmpZip.Close()
	if err != nil {
		return err
	}

	if err := unzip(tmpPath, filepath.Join(m.modelsDir, "vosk")); err != nil {
		return fmt.Errorf("ошибка распаковки: %w", err)
	}
	if !m.IsDownloaded(info) {
		return fmt.Errorf("в архиве нет директории %s", info.Dir)
	}

	m.log.Info("модель скачана", "model", info.ID, "bytes", total)
	send(progress, Progress{ModelID: info.ID, Downloaded: total, Total: total, Done: true})
	return nil
}

func (m *Manager) fetch(ctx context.Context, info ModelInfo, dst io.Writer, progress chan<- Progress) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка скачивания: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = info.Size
	}

	var downloaded int64
	buf := make([]byte, 32*1024)

	for {
		select {
		case <-ctx.Done():
			return downloaded, ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return downloaded, werr
			}
			downloaded += int64(n)

			if progress != nil {
				select {
				case progress <- Progress{ModelID: info.ID, Downloaded: downloaded, Total: total}:
				default:
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return downloaded, err
		}
	}

	return downloaded, nil
}

func send(progress chan<- Progress, p Progress) {
	if progress != nil {
		progress <- p
	}
}

func unzip(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	root := filepath.Clean(destDir) + string(os.PathSeparator)

	for _, f := range r.File {
		fpath := filepath.Join(destDir, f.Name)
		// Пути вида ../ не должны выходить за пределы директории
		if !strings.HasPrefix(fpath, root) {
			return fmt.Errorf("недопустимый путь в архиве: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}

		if err := extract(f, fpath); err != nil {
			return err
		}
	}

	return nil
}

func extract(f *zip.File, fpath string) error {
	outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer outFile.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(outFile, rc)
	return err
}

// Delete удаляет модель.
func (m *Manager) Delete(info ModelInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return os.RemoveAll(m.Path(info))
}
