package voice

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
)

// Payload - собранная запись, готовая к отправке.
type Payload struct {
	Format Format
	// PCM - чанки, склеенные как есть.
	PCM []byte
	// Data - тело для передачи (WAV для PCM16).
	Data     []byte
	MIMEType string
}

// Assemble склеивает чанки в одну запись.
func Assemble(chunks [][]byte, f Format) Payload {
	raw := bytes.Join(chunks, nil)
	p := Payload{
		Format:   f,
		PCM:      raw,
		Data:     raw,
		MIMEType: f.MIMEType,
	}
	if f.MIMEType == MIMEPCM16 {
		p.Data = EncodeWAV(raw, f.SampleRate, f.Channels)
		p.MIMEType = "audio/wav"
	}
	return p
}

// DataURI кодирует запись как data: URI.
func (p Payload) DataURI() string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// EncodeWAV оборачивает PCM16 little-endian в RIFF/WAVE контейнер.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
