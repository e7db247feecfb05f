package voicecall

import (
	"context"
	"errors"

	"github.com/planetpals/starcall-core/core/audio"
	"github.com/planetpals/starcall-core/core/live"
)

// ErrMicrophoneDenied is returned by a Microphone when the platform refused
// access to the capture device. The session treats it as a terminal failure
// with a dedicated status so the UI can tell the child what went wrong.
var ErrMicrophoneDenied = errors.New("microphone access denied")

// LiveConnector is the duplex voice endpoint the session streams through.
// Implementations must invoke the registered callbacks from a single
// goroutine, in arrival order.
type LiveConnector interface {
	Connect(ctx context.Context, opts ...live.ConnectOption) error
	SendAudio(frame audio.CaptureFrame) error
	Close() error
}

// Microphone is a capture device producing fixed-size blocks of 16-bit PCM at
// the capture rate. Stream starts delivery and returns once the device is
// running; onAudio is invoked from the device's own callback goroutine.
type Microphone interface {
	EncodingInfo() audio.EncodingInfo
	Stream(ctx context.Context, onAudio func(pcm []byte)) error
	Close()
}

// AudioOutput renders raw PCM at the playback rate. ClearBuffer drops any
// audio that was handed over but not yet rendered.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(pcm []byte) error
	ClearBuffer()
}

type SessionOptions struct {
	Connector  LiveConnector
	Microphone Microphone
	Output     AudioOutput

	Persona string
	Voice   string
}

type SessionOption func(*SessionOptions)

func WithConnector(connector LiveConnector) SessionOption {
	return func(o *SessionOptions) {
		o.Connector = connector
	}
}

func WithMicrophone(microphone Microphone) SessionOption {
	return func(o *SessionOptions) {
		o.Microphone = microphone
	}
}

func WithAudioOutput(output AudioOutput) SessionOption {
	return func(o *SessionOptions) {
		o.Output = output
	}
}

// WithPersona sets the system-instruction string forwarded to the connector.
func WithPersona(persona string) SessionOption {
	return func(o *SessionOptions) {
		o.Persona = persona
	}
}

func WithVoice(voice string) SessionOption {
	return func(o *SessionOptions) {
		o.Voice = voice
	}
}

type StartOptions struct {
	statusChangedCallback      func(status string)
	transcriptsChangedCallback func(user, assistant string)
	listeningChangedCallback   func(listening bool)
	speakingChangedCallback    func(speaking bool)
}

type StartOption func(*StartOptions)

// WithStatusChangedCallback registers a callback for human-readable status
// line updates.
func WithStatusChangedCallback(callback func(status string)) StartOption {
	return func(o *StartOptions) {
		o.statusChangedCallback = callback
	}
}

// WithTranscriptsChangedCallback registers a callback fired whenever either
// live transcript buffer changes, including the reset at turn completion.
func WithTranscriptsChangedCallback(callback func(user, assistant string)) StartOption {
	return func(o *StartOptions) {
		o.transcriptsChangedCallback = callback
	}
}

func WithListeningChangedCallback(callback func(listening bool)) StartOption {
	return func(o *StartOptions) {
		o.listeningChangedCallback = callback
	}
}

func WithSpeakingChangedCallback(callback func(speaking bool)) StartOption {
	return func(o *StartOptions) {
		o.speakingChangedCallback = callback
	}
}
