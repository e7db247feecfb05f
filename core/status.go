package voicecall

// SessionState tracks the streaming session through its lifecycle. Error is
// an absorbing state reachable from any non-terminal state.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateConnecting SessionState = "connecting"
	StateOpen       SessionState = "open"
	StateClosing    SessionState = "closing"
	StateClosed     SessionState = "closed"
	StateError      SessionState = "error"
)

func (s SessionState) isTerminal() bool {
	return s == StateClosed || s == StateError
}

const (
	statusReady           = "ready to call"
	statusRequestingMic   = "asking for the microphone..."
	statusConnecting      = "calling across space..."
	statusListening       = "connected! say hello"
	statusSpeaking        = "the astronaut is speaking..."
	statusEnding          = "ending the call..."
	statusEnded           = "call ended"
	statusMicDenied       = "could not use the microphone. did you allow it?"
	statusMicFailed       = "the microphone is not working right now"
	statusConnectFailed   = "could not reach the space station"
	statusConnectionLost  = "lost contact with the space station"
	statusPlaybackTrouble = "the speaker is acting up, but you can keep talking"
)
