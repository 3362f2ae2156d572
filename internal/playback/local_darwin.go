//go:build darwin

package playback

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"regexp"
)

func playerCommands() []command {
	return []command{
		{name: "afplay"},
	}
}

type saySynth struct{}

func newLocalSynth() LocalSynth {
	return &saySynth{}
}

// Damayanti           id_ID    # Halo, nama saya Damayanti.
var sayVoiceLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

func (s *saySynth) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, "say", "-v", "?").Output()
	if err != nil {
		return nil, err
	}

	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := sayVoiceLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		voices = append(voices, Voice{Name: m[1], Language: m[2]})
	}
	return voices, nil
}

func (s *saySynth) Speak(ctx context.Context, text string, voice Voice) error {
	args := []string{}
	if voice.Name != "" {
		args = append(args, "-v", voice.Name)
	}
	args = append(args, text)
	return exec.CommandContext(ctx, "say", args...).Run()
}
