package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWAV wraps mono PCM16 samples in a RIFF/WAV container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataLen := len(samples) * 2
	fileLen := 36 + dataLen // 44-byte header minus 8 bytes for RIFF header = 36

	buf := &bytes.Buffer{}
	buf.Grow(44 + dataLen)

	// RIFF header
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(fileLen))
	buf.WriteString("WAVE")

	// fmt subchunk
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))             // subchunk1 size
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))              // audio format (PCM)
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))              // channels (mono)
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))     // sample rate
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))   // byte rate
	_ = binary.Write(buf, binary.LittleEndian, uint16(2))              // block align
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))             // bits per sample

	// data subchunk
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// DecodeWAV extracts mono PCM16 samples and the sample rate from a WAV file.
// Multi-channel input is downmixed by taking the first channel.
func DecodeWAV(data []byte) ([]int16, int, error) {
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		sampleRate int
		channels   int
		bits       int
		pcm        []byte
	)

	// Walk the chunk list; fmt and data may be separated by other chunks.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			return nil, 0, fmt.Errorf("truncated %q chunk", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("short fmt chunk")
			}
			format := int(binary.LittleEndian.Uint16(data[body : body+2]))
			if format != 1 {
				return nil, 0, fmt.Errorf("unsupported WAV format %d (want PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+size]
		}

		off = body + size
		if size%2 == 1 {
			off++ // chunks are word-aligned
		}
	}

	if sampleRate == 0 || pcm == nil {
		return nil, 0, fmt.Errorf("missing fmt or data chunk")
	}
	if bits != 16 {
		return nil, 0, fmt.Errorf("unsupported bit depth %d (want 16)", bits)
	}
	if channels < 1 {
		return nil, 0, fmt.Errorf("invalid channel count %d", channels)
	}

	frame := channels * 2
	samples := make([]int16, 0, len(pcm)/frame)
	for i := 0; i+frame <= len(pcm); i += frame {
		samples = append(samples, int16(binary.LittleEndian.Uint16(pcm[i:i+2])))
	}
	return samples, sampleRate, nil
}
