package message

import (
	"testing"
	"time"
)

func TestMethodValidity(t *testing.T) {
	for _, m := range []DocMethod{DocRemoteInstruct, DocLocalInstruct, DocLocalBase, DocRuleBased} {
		if !m.Valid() {
			t.Errorf("DocMethod(%q).Valid() = false, want true", m)
		}
	}
	if DocMethod("gpt-9").Valid() {
		t.Error(`DocMethod("gpt-9").Valid() = true, want false`)
	}

	for _, m := range []TTSMethod{TTSNeural, TTSSystem, TTSAlgorithmic, TTSTone} {
		if !m.Valid() {
			t.Errorf("TTSMethod(%q).Valid() = false, want true", m)
		}
	}
	if TTSMethod("vocoder").Valid() {
		t.Error(`TTSMethod("vocoder").Valid() = true, want false`)
	}
}

func TestAudioResultDuration(t *testing.T) {
	tests := []struct {
		name string
		res  AudioResult
		want time.Duration
	}{
		{
			name: "one second",
			res:  AudioResult{Samples: make([]int16, 22050), SampleRate: 22050},
			want: time.Second,
		},
		{
			name: "empty",
			res:  AudioResult{SampleRate: 22050},
			want: 0,
		},
		{
			name: "zero rate",
			res:  AudioResult{Samples: make([]int16, 100)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}
