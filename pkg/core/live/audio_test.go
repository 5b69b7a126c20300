package live

import (
	"encoding/base64"
	"math"
	"testing"
)

func TestEncodeFrameScalesAndClamps(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    []int16
	}{
		{
			name:    "silence",
			samples: []float32{0, 0},
			want:    []int16{0, 0},
		},
		{
			name:    "half amplitude",
			samples: []float32{0.5, -0.5},
			want:    []int16{16384, -16384},
		},
		{
			name:    "positive full scale clamps",
			samples: []float32{1.0, 1.5},
			want:    []int16{32767, 32767},
		},
		{
			name:    "negative full scale",
			samples: []float32{-1.0, -2.0},
			want:    []int16{-32768, -32768},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := EncodeFrame(tt.samples, CaptureConfig())
			if chunk.MIMEType != "audio/pcm;rate=16000" {
				t.Errorf("unexpected mime type %q", chunk.MIMEType)
			}
			pcm, err := chunk.PCM()
			if err != nil {
				t.Fatalf("PCM() error: %v", err)
			}
			if len(pcm) != len(tt.want)*2 {
				t.Fatalf("expected %d bytes, got %d", len(tt.want)*2, len(pcm))
			}
			for i, want := range tt.want {
				got := int16(pcm[i*2]) | int16(pcm[i*2+1])<<8
				if got != want {
					t.Errorf("sample %d: got %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestDecodeChunkRescales(t *testing.T) {
	// Hand-packed little-endian int16 samples: 0, 16384, -32768.
	pcm := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x80}
	chunk := EncodedChunk{
		Data:     base64.StdEncoding.EncodeToString(pcm),
		MIMEType: PlaybackConfig().MIMEType(),
	}

	buf, err := DecodeChunk(chunk, PlaybackConfig())
	if err != nil {
		t.Fatalf("DecodeChunk error: %v", err)
	}
	want := []float32{0, 0.5, -1.0}
	if len(buf.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(buf.Samples))
	}
	for i, w := range want {
		if math.Abs(float64(buf.Samples[i]-w)) > 1e-6 {
			t.Errorf("sample %d: got %f, want %f", i, buf.Samples[i], w)
		}
	}
}

func TestDecodeChunkRejectsBadBase64(t *testing.T) {
	_, err := DecodeChunk(EncodedChunk{Data: "not-base64!!!"}, PlaybackConfig())
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []float32{0, 0.25, -0.25, 0.99, -0.99}
	chunk := EncodeFrame(in, PlaybackConfig())
	buf, err := DecodeChunk(chunk, PlaybackConfig())
	if err != nil {
		t.Fatalf("round trip error: %v", err)
	}
	for i := range in {
		// One quantization step of tolerance.
		if math.Abs(float64(buf.Samples[i]-in[i])) > 1.0/32768 {
			t.Errorf("sample %d: got %f, want %f", i, buf.Samples[i], in[i])
		}
	}
}

func TestBufferDuration(t *testing.T) {
	buf := PlaybackBuffer{
		Samples: make([]float32, 24000),
		Config:  PlaybackConfig(),
	}
	if d := buf.Duration(); math.Abs(d-1.0) > 1e-9 {
		t.Errorf("expected 1s duration, got %f", d)
	}
}

func TestRMSEnergy(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{"silence", []float32{0, 0, 0, 0}, 0.0},
		{"full scale", []float32{1, 1, 1, 1}, 1.0},
		{"half scale mixed", []float32{0.5, -0.5, 0.5, -0.5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMSEnergy(tt.samples); math.Abs(got-tt.want) > 0.01 {
				t.Errorf("expected RMS %.3f, got %.3f", tt.want, got)
			}
		})
	}
}
