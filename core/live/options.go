// Package live defines the contract between the streaming session and a
// remote duplex voice endpoint. Concrete connectors live in subpackages.
package live

import "github.com/planetpals/starcall-core/core/audio"

type ConnectOptions struct {
	// Persona is the opaque system-instruction string describing the voice
	// character; the connector forwards it verbatim.
	Persona string
	// Voice names the prebuilt synthesis voice, when the endpoint supports
	// picking one.
	Voice string

	CaptureEncoding audio.EncodingInfo

	OpenCallback            func()
	TranscriptDeltaCallback func(speaker string, text string)
	TurnCompleteCallback    func()
	SpeechChunkCallback     func(data string, mimeType string)
	InterruptedCallback     func()
	ErrorCallback           func(reason string)
	CloseCallback           func(reason string)
}

type ConnectOption func(*ConnectOptions)

func WithPersona(persona string) ConnectOption {
	return func(o *ConnectOptions) {
		o.Persona = persona
	}
}

func WithVoice(voice string) ConnectOption {
	return func(o *ConnectOptions) {
		o.Voice = voice
	}
}

func WithCaptureEncoding(encodingInfo audio.EncodingInfo) ConnectOption {
	return func(o *ConnectOptions) {
		o.CaptureEncoding = encodingInfo
	}
}

func WithOpenCallback(callback func()) ConnectOption {
	return func(o *ConnectOptions) {
		o.OpenCallback = callback
	}
}

// WithTranscriptDeltaCallback registers a callback for incremental transcript
// pieces. The speaker is "user" for echoed speech-to-text of the user's own
// audio and "assistant" for the spoken response.
func WithTranscriptDeltaCallback(callback func(speaker string, text string)) ConnectOption {
	return func(o *ConnectOptions) {
		o.TranscriptDeltaCallback = callback
	}
}

func WithTurnCompleteCallback(callback func()) ConnectOption {
	return func(o *ConnectOptions) {
		o.TurnCompleteCallback = callback
	}
}

// WithSpeechChunkCallback registers a callback for assistant audio payloads.
// Payloads arrive base64-encoded and are decoded by the playback scheduler,
// not the connector.
func WithSpeechChunkCallback(callback func(data string, mimeType string)) ConnectOption {
	return func(o *ConnectOptions) {
		o.SpeechChunkCallback = callback
	}
}

func WithInterruptedCallback(callback func()) ConnectOption {
	return func(o *ConnectOptions) {
		o.InterruptedCallback = callback
	}
}

func WithErrorCallback(callback func(reason string)) ConnectOption {
	return func(o *ConnectOptions) {
		o.ErrorCallback = callback
	}
}

func WithCloseCallback(callback func(reason string)) ConnectOption {
	return func(o *ConnectOptions) {
		o.CloseCallback = callback
	}
}
