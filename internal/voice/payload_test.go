package voice

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	wav := EncodeWAV(pcm, 16000, 1)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(wav), 44+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Fatalf("bad header: %q", wav[:44])
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Fatalf("riff size = %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Fatalf("sample rate = %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 32000 {
		t.Fatalf("byte rate = %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("data size = %d", got)
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Fatalf("pcm not copied")
	}
}

func TestAssemble(t *testing.T) {
	chunks := [][]byte{{1, 2}, {3, 4}, {5, 6}}

	t.Run("pcm16 is wrapped in wav", func(t *testing.T) {
		p := Assemble(chunks, Format{MIMEType: MIMEPCM16, SampleRate: 16000, Channels: 1})
		if !bytes.Equal(p.PCM, []byte{1, 2, 3, 4, 5, 6}) {
			t.Fatalf("PCM = %v", p.PCM)
		}
		if p.MIMEType != "audio/wav" {
			t.Fatalf("MIMEType = %q", p.MIMEType)
		}
		if len(p.Data) != 44+6 {
			t.Fatalf("Data len = %d", len(p.Data))
		}
	})

	t.Run("other formats pass through", func(t *testing.T) {
		p := Assemble(chunks, Format{MIMEType: "audio/webm"})
		if p.MIMEType != "audio/webm" || !bytes.Equal(p.Data, p.PCM) {
			t.Fatalf("payload changed: %+v", p)
		}
	})
}

func TestDataURI(t *testing.T) {
	p := Assemble([][]byte{{0, 0}}, Format{MIMEType: MIMEPCM16, SampleRate: 16000, Channels: 1})
	uri := p.DataURI()

	const prefix = "data:audio/wav;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("DataURI() = %q", uri)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, p.Data) {
		t.Fatalf("decoded payload differs")
	}
}
