package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyBlock   = errors.New("capture block is empty")
	ErrOddPCMLength = errors.New("pcm payload has an odd byte length")
)

// CaptureFrame is one block of microphone audio converted to 16-bit PCM and
// base64-encoded for transport. Frames are immutable once created and are
// consumed exactly once by the streaming session.
type CaptureFrame struct {
	Data     string
	MIMEType string
}

// EncodeFrame converts a block of mono float samples in [-1, 1] into a
// transport frame. Samples outside the range are clamped before scaling.
func EncodeFrame(samples []float32) (CaptureFrame, error) {
	if len(samples) == 0 {
		return CaptureFrame{}, ErrEmptyBlock
	}

	pcm := make([]byte, len(samples)*2)
	for i, sample := range samples {
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(sample*32767)))
	}

	return EncodePCMFrame(pcm)
}

// EncodePCMFrame wraps already-converted 16-bit little-endian PCM bytes into
// a transport frame. Device clients that capture linear16 natively use this
// path directly.
func EncodePCMFrame(pcm []byte) (CaptureFrame, error) {
	if len(pcm) == 0 {
		return CaptureFrame{}, ErrEmptyBlock
	}
	if len(pcm)%2 != 0 {
		return CaptureFrame{}, ErrOddPCMLength
	}

	return CaptureFrame{
		Data:     base64.StdEncoding.EncodeToString(pcm),
		MIMEType: fmt.Sprintf("audio/pcm;rate=%d", CaptureSampleRate),
	}, nil
}

// PlaybackChunk is one decoded unit of assistant audio ready for scheduling.
type PlaybackChunk struct {
	PCM      []byte
	Encoding EncodingInfo
}

// DecodeChunk decodes a base64 payload from the inbound event stream into a
// playback chunk at the fixed output rate.
func DecodeChunk(data string, encoding EncodingInfo) (PlaybackChunk, error) {
	pcm, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return PlaybackChunk{}, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	if len(pcm) == 0 {
		return PlaybackChunk{}, ErrEmptyBlock
	}
	if encoding.Format.ByteSize() == 2 && len(pcm)%2 != 0 {
		return PlaybackChunk{}, ErrOddPCMLength
	}

	return PlaybackChunk{PCM: pcm, Encoding: encoding}, nil
}

func (c PlaybackChunk) Duration() time.Duration {
	return c.Encoding.Duration(len(c.PCM))
}
