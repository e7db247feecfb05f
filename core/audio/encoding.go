package audio

import "time"

const (
	// CaptureSampleRate is the microphone capture rate expected by the
	// remote endpoint.
	CaptureSampleRate = 16000
	// PlaybackSampleRate is the rate of audio returned by the remote
	// endpoint.
	PlaybackSampleRate = 24000

	// CaptureBlockSize is the number of samples in one capture callback
	// block.
	CaptureBlockSize = 4096

	DefaultFormat = "linear16"
)

func CaptureEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: CaptureSampleRate, Format: EncodingLinear16}
}

func PlaybackEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: PlaybackSampleRate, Format: EncodingLinear16}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// Duration converts a PCM byte count into wall-clock playback time.
func (e EncodingInfo) Duration(pcmBytes int) time.Duration {
	if e.IsZero() || e.Format.ByteSize() <= 0 {
		return 0
	}

	return time.Duration(float64(pcmBytes) / float64(e.SampleRate) / float64(e.Format.ByteSize()) * float64(time.Second))
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
