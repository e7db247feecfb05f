package audio

import (
	"encoding/base64"
	"encoding/binary"
	"testing"
	"time"
)

func TestEncodeFrameScalesAndClampsSamples(t *testing.T) {
	frame, err := EncodeFrame([]float32{0, 1, -1, 2, -2, 0.5})
	if err != nil {
		t.Fatalf("expected encode to succeed, got %v", err)
	}

	pcm, err := base64.StdEncoding.DecodeString(frame.Data)
	if err != nil {
		t.Fatalf("expected valid base64 payload, got %v", err)
	}
	if len(pcm) != 12 {
		t.Fatalf("expected 12 pcm bytes for 6 samples, got %d", len(pcm))
	}

	samples := make([]int16, 6)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}

	expected := []int16{0, 32767, -32767, 32767, -32767, 16383}
	for i, want := range expected {
		if samples[i] != want {
			t.Fatalf("expected sample %d to encode to %d, got %d", i, want, samples[i])
		}
	}
}

func TestEncodeFrameCarriesCaptureRateMIMEType(t *testing.T) {
	frame, err := EncodeFrame([]float32{0.25})
	if err != nil {
		t.Fatalf("expected encode to succeed, got %v", err)
	}

	if frame.MIMEType != "audio/pcm;rate=16000" {
		t.Fatalf("expected capture-rate mime type, got %q", frame.MIMEType)
	}
}

func TestEncodeFrameRejectsEmptyBlock(t *testing.T) {
	if _, err := EncodeFrame(nil); err != ErrEmptyBlock {
		t.Fatalf("expected ErrEmptyBlock, got %v", err)
	}
}

func TestEncodePCMFrameRejectsOddLength(t *testing.T) {
	if _, err := EncodePCMFrame([]byte{1, 2, 3}); err != ErrOddPCMLength {
		t.Fatalf("expected ErrOddPCMLength, got %v", err)
	}
}

func TestDecodeChunkComputesDuration(t *testing.T) {
	// Half a second of 24kHz mono linear16.
	pcm := make([]byte, PlaybackSampleRate)
	chunk, err := DecodeChunk(base64.StdEncoding.EncodeToString(pcm), PlaybackEncodingInfo())
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}

	if chunk.Duration() != 500*time.Millisecond {
		t.Fatalf("expected 500ms duration, got %s", chunk.Duration())
	}
}

func TestDecodeChunkRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeChunk("not base64!!!", PlaybackEncodingInfo()); err == nil {
		t.Fatalf("expected malformed payload to be rejected")
	}

	if _, err := DecodeChunk("", PlaybackEncodingInfo()); err != ErrEmptyBlock {
		t.Fatalf("expected ErrEmptyBlock for empty payload, got %v", err)
	}
}
