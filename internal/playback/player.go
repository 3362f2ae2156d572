package playback

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"
)

// command - кандидат для проигрывания файла.
type command struct {
	name string
	args []string
}

// ExecPlayer скачивает аудио во временный файл и проигрывает первым
// найденным в системе проигрывателем.
type ExecPlayer struct {
	httpClient *http.Client
	candidates []command
}

// NewPlayer создаёт проигрыватель для текущей ОС.
func NewPlayer() *ExecPlayer {
	return &ExecPlayer{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		candidates: playerCommands(),
	}
}

// Play скачивает и проигрывает аудио.
func (p *ExecPlayer) Play(ctx context.Context, url string) error {
	cmd, err := p.find()
	if err != nil {
		return err
	}

	path, err := p.download(ctx, url)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	args := append(append([]string{}, cmd.args...), path)
	if err := exec.CommandContext(ctx, cmd.name, args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	return nil
}

func (p *ExecPlayer) find() (command, error) {
	for _, c := range p.candidates {
		if _, err := exec.LookPath(c.name); err == nil {
			return c, nil
		}
	}
	return command{}, ErrNoPlayer
}

func (p *ExecPlayer) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download audio: HTTP %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "linglong-tts-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("save audio: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
