//go:build linux

package playback

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
)

func playerCommands() []command {
	return []command{
		{name: "mpv", args: []string{"--no-video", "--really-quiet"}},
		{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		{name: "mpg123", args: []string{"-q"}},
		{name: "paplay"},
	}
}

type espeakSynth struct{}

func newLocalSynth() LocalSynth {
	return &espeakSynth{}
}

// Voices разбирает вывод "espeak-ng --voices":
// Pty Language       Age/Gender VoiceName          File          Other Languages
//  5  id              --/M       Indonesian         roa/id
func (s *espeakSynth) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, "espeak-ng", "--voices").Output()
	if err != nil {
		return nil, err
	}
	return parseEspeakVoices(out), nil
}

func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Language: fields[1]})
	}
	return voices
}

func (s *espeakSynth) Speak(ctx context.Context, text string, voice Voice) error {
	v := voice.Language
	if v == "" {
		v = voice.Name
	}
	args := []string{}
	if v != "" {
		args = append(args, "-v", v)
	}
	args = append(args, "--", text)
	return exec.CommandContext(ctx, "espeak-ng", args...).Run()
}
