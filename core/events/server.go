package events

// Speaker identifies which side of the conversation a transcript delta
// belongs to.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

const (
	// KindTranscriptDelta identifies an incremental transcript piece for one
	// speaker.
	KindTranscriptDelta Kind = "transcript.delta"
	// KindTurnComplete identifies the end of the current speaker turn.
	KindTurnComplete Kind = "transcript.turn_complete"
	// KindSpeechChunk identifies an opaque assistant audio payload.
	KindSpeechChunk Kind = "speech.chunk"
	// KindInterrupted identifies a barge-in signal: the user started talking
	// over the assistant and buffered playback must stop.
	KindInterrupted Kind = "speech.interrupted"
	// KindSessionError identifies a remote-signaled error.
	KindSessionError Kind = "session.error"
	// KindSessionClosed identifies a remote-initiated close.
	KindSessionClosed Kind = "session.closed"
)

// TranscriptDelta carries an append-only transcript piece for one speaker.
type TranscriptDelta struct {
	Base
	Speaker Speaker
	Text    string
}

// NewTranscriptDelta creates a transcript delta event.
func NewTranscriptDelta(speaker Speaker, text string) TranscriptDelta {
	return TranscriptDelta{Base: NewBase(KindTranscriptDelta), Speaker: speaker, Text: text}
}

// TurnComplete marks the end of the current turn; both transcript buffers
// reset when it is processed.
type TurnComplete struct{ Base }

// NewTurnComplete creates a turn complete event.
func NewTurnComplete() TurnComplete {
	return TurnComplete{Base: NewBase(KindTurnComplete)}
}

// SpeechChunk carries one base64 audio payload from the assistant.
type SpeechChunk struct {
	Base
	Data     string
	MIMEType string
}

// NewSpeechChunk creates an assistant audio payload event.
func NewSpeechChunk(data, mimeType string) SpeechChunk {
	return SpeechChunk{Base: NewBase(KindSpeechChunk), Data: data, MIMEType: mimeType}
}

// Interrupted signals barge-in: already-buffered assistant audio must never
// continue to play after this event.
type Interrupted struct{ Base }

// NewInterrupted creates an interruption event.
func NewInterrupted() Interrupted {
	return Interrupted{Base: NewBase(KindInterrupted)}
}

// SessionError carries a remote error description. Processing it is fatal to
// the session.
type SessionError struct {
	Base
	Reason string
}

// NewSessionError creates a remote error event.
func NewSessionError(reason string) SessionError {
	return SessionError{Base: NewBase(KindSessionError), Reason: reason}
}

// SessionClosed signals that the remote side closed the stream.
type SessionClosed struct {
	Base
	Reason string
}

// NewSessionClosed creates a remote close event.
func NewSessionClosed(reason string) SessionClosed {
	return SessionClosed{Base: NewBase(KindSessionClosed), Reason: reason}
}
