package speech

import (
	"encoding/binary"
	"testing"
)

func TestEncodeWAV_Header(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32000}
	wav := EncodeWAV(samples, SampleRate)

	if len(wav) != 44+len(samples)*2 {
		t.Fatalf("len(wav) = %d, want %d", len(wav), 44+len(samples)*2)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE magic")
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != SampleRate {
		t.Errorf("sample rate = %d, want %d", rate, SampleRate)
	}
	if ch := binary.LittleEndian.Uint16(wav[22:24]); ch != 1 {
		t.Errorf("channels = %d, want 1 (mono)", ch)
	}
	if bits := binary.LittleEndian.Uint16(wav[34:36]); bits != 16 {
		t.Errorf("bits per sample = %d, want 16", bits)
	}
	if dataLen := binary.LittleEndian.Uint32(wav[40:44]); int(dataLen) != len(samples)*2 {
		t.Errorf("data length = %d, want %d", dataLen, len(samples)*2)
	}
}

func TestDecodeWAV_RoundTrip(t *testing.T) {
	samples := []int16{0, 500, -500, 12345, -12345}
	decoded, rate, err := DecodeWAV(EncodeWAV(samples, 16000))
	if err != nil {
		t.Fatalf("DecodeWAV() error = %v", err)
	}
	if rate != 16000 {
		t.Errorf("rate = %d, want 16000", rate)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("len(decoded) = %d, want %d", len(decoded), len(samples))
	}
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Errorf("decoded[%d] = %d, want %d", i, decoded[i], samples[i])
		}
	}
}

func TestDecodeWAV_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not riff", data: make([]byte, 64)},
		{name: "truncated", data: EncodeWAV([]int16{1, 2, 3}, 8000)[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeWAV(tt.data); err == nil {
				t.Error("DecodeWAV() error = nil, want parse error")
			}
		})
	}
}
