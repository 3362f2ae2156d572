//go:build windows

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
		{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	}
}

type sapiSynth struct{}

func newLocalSynth() LocalSynth {
	return &sapiSynth{}
}

const listVoicesScript = `Add-Type -AssemblyName System.Speech;
$s = New-Object System.Speech.Synthesis.SpeechSynthesizer;
$s.GetInstalledVoices() | ForEach-Object { $_.VoiceInfo.Name + "|" + $_.VoiceInfo.Culture.Name }`

const speakScript = `Add-Type -AssemblyName System.Speech;
$s = New-Object System.Speech.Synthesis.SpeechSynthesizer;
if ($env:LINGLONG_VOICE) { $s.SelectVoice($env:LINGLONG_VOICE) };
$s.Speak($env:LINGLONG_TEXT)`

func powershell(ctx context.Context, script string, env ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	cmd.Env = append(cmd.Environ(), env...)
	return cmd
}

func (s *sapiSynth) Voices(ctx context.Context) ([]Voice, error) {
	out, err := powershell(ctx, listVoicesScript).Output()
	if err != nil {
		return nil, err
	}

	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		name, culture, ok := strings.Cut(strings.TrimSpace(sc.Text()), "|")
		if !ok {
			continue
		}
		voices = append(voices, Voice{Name: name, Language: culture})
	}
	return voices, nil
}

// Speak передаёт текст и голос скрипту через окружение.
func (s *sapiSynth) Speak(ctx context.Context, text string, voice Voice) error {
	return powershell(ctx, speakScript, "LINGLONG_TEXT="+text, "LINGLONG_VOICE="+voice.Name).Run()
}
