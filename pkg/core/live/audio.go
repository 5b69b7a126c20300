package live

import (
	"encoding/base64"
	"fmt"
	"math"
)

// AudioConfig specifies audio format parameters.
type AudioConfig struct {
	// SampleRate in Hz.
	SampleRate int `json:"sample_rate"`

	// Channels: 1 for mono, 2 for stereo.
	Channels int `json:"channels"`

	// BitsPerSample: 16 for PCM16.
	BitsPerSample int `json:"bits_per_sample"`
}

// CaptureConfig is the fixed microphone format: 16 kHz mono PCM16.
func CaptureConfig() AudioConfig {
	return AudioConfig{SampleRate: 16000, Channels: 1, BitsPerSample: 16}
}

// PlaybackConfig is the fixed output format: 24 kHz mono PCM16.
func PlaybackConfig() AudioConfig {
	return AudioConfig{SampleRate: 24000, Channels: 1, BitsPerSample: 16}
}

// BytesPerSecond returns the audio byte rate.
func (c AudioConfig) BytesPerSecond() int {
	return c.SampleRate * c.Channels * (c.BitsPerSample / 8)
}

// DurationSeconds returns the play time of the given byte count.
func (c AudioConfig) DurationSeconds(bytes int) float64 {
	bps := c.BytesPerSecond()
	if bps == 0 {
		return 0
	}
	return float64(bytes) / float64(bps)
}

// MIMEType returns the wire type tag for PCM at this sample rate.
func (c AudioConfig) MIMEType() string {
	return fmt.Sprintf("audio/pcm;rate=%d", c.SampleRate)
}

// EncodedChunk is an opaque transport payload: base64-encoded PCM16
// little-endian samples plus a MIME-like type tag. It exists only for
// the duration of one send or receive.
type EncodedChunk struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

// PCM decodes the chunk payload back to raw little-endian PCM16 bytes.
func (c EncodedChunk) PCM() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(c.Data)
	if err != nil {
		return nil, fmt.Errorf("decode chunk payload: %w", err)
	}
	return raw, nil
}

// EncodeFrame converts raw float amplitudes in [-1, 1] to a transport
// chunk. Samples are scaled by 32768 and clamped to the int16 range
// before little-endian packing and base64 text encoding.
func EncodeFrame(samples []float32, cfg AudioConfig) EncodedChunk {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int32(s * 32768)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		}
		if v < math.MinInt16 {
			v = math.MinInt16
		}
		pcm[i*2] = byte(v)
		pcm[i*2+1] = byte(v >> 8)
	}
	return EncodedChunk{
		Data:     base64.StdEncoding.EncodeToString(pcm),
		MIMEType: cfg.MIMEType(),
	}
}

// EncodeBytes wraps already-encoded raw PCM bytes into a transport
// chunk, keeping the provider's MIME tag when it carries one.
func EncodeBytes(pcm []byte, mimeType string) EncodedChunk {
	if mimeType == "" {
		mimeType = PlaybackConfig().MIMEType()
	}
	return EncodedChunk{
		Data:     base64.StdEncoding.EncodeToString(pcm),
		MIMEType: mimeType,
	}
}

// PlaybackBuffer is one decoded frame of output samples.
type PlaybackBuffer struct {
	Samples []float32
	Config  AudioConfig
}

// Duration returns the buffer play time in seconds.
func (b PlaybackBuffer) Duration() float64 {
	if b.Config.SampleRate <= 0 || b.Config.Channels <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.Config.SampleRate*b.Config.Channels)
}

// DecodeChunk converts a transport chunk into a playback buffer:
// base64 to raw bytes, bytes reinterpreted as little-endian int16,
// rescaled to float amplitude in [-1, 1].
func DecodeChunk(chunk EncodedChunk, cfg AudioConfig) (PlaybackBuffer, error) {
	pcm, err := chunk.PCM()
	if err != nil {
		return PlaybackBuffer{}, err
	}
	return DecodePCM(pcm, cfg), nil
}

// DecodePCM converts raw little-endian PCM16 bytes to float samples.
func DecodePCM(pcm []byte, cfg AudioConfig) PlaybackBuffer {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		s := int16(pcm[i*2]) | int16(pcm[i*2+1])<<8
		samples[i] = float32(s) / 32768.0
	}
	return PlaybackBuffer{Samples: samples, Config: cfg}
}

// RMSEnergy computes the root-mean-square energy of float samples.
// Returns a value between 0.0 and 1.0.
func RMSEnergy(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
