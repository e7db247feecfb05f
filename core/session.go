// Package voicecall implements the realtime duplex voice session: microphone
// blocks go out as encoded frames while transcript deltas and assistant audio
// stream back in, with barge-in interruption and idempotent teardown.
package voicecall

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/planetpals/starcall-core/core/audio"
	"github.com/planetpals/starcall-core/core/events"
	"github.com/planetpals/starcall-core/core/live"
	"go.opentelemetry.io/otel/codes"
)

// Session is the facade over one voice call at a time. Starting while a call
// is live tears the previous call down first; stopping is idempotent. A
// Session is reusable across calls, each identified internally by a fresh
// generation token so late callbacks from a finished call cannot touch its
// successor's state.
type Session struct {
	mu sync.Mutex

	state      SessionState
	errReason  string
	generation string

	connector  LiveConnector
	microphone Microphone
	output     AudioOutput
	persona    string
	voice      string

	scheduler   *playbackScheduler
	transcripts transcriptBuffer

	teardowns teardownGuard
	current   *teardownRoutine

	isListening atomic.Bool
	isSpeaking  atomic.Bool

	notify notifier
}

func NewSession(opts ...SessionOption) *Session {
	options := SessionOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return &Session{
		state:      StateIdle,
		connector:  options.Connector,
		microphone: options.Microphone,
		output:     options.Output,
		persona:    options.Persona,
		voice:      options.Voice,
	}
}

// Start acquires the microphone, connects the live endpoint and begins
// streaming. It returns once the connection is established; the session
// reports being open through the status callback when the endpoint
// acknowledges setup.
func (s *Session) Start(ctx context.Context, opts ...StartOption) error {
	ctx, span := tracer.Start(ctx, "start voice session")
	defer span.End()

	startOptions := StartOptions{}
	for _, opt := range opts {
		opt(&startOptions)
	}
	notify := notifier{options: startOptions}

	// A restart over a live call ends the previous call before anything new
	// is acquired. Marking it closing first makes its remaining events go
	// stale immediately instead of racing the teardown.
	s.mu.Lock()
	previous := s.current
	if s.state == StateConnecting || s.state == StateOpen {
		s.state = StateClosing
	}
	s.mu.Unlock()
	s.teardowns.run(previous)

	s.mu.Lock()
	if s.connector == nil {
		s.mu.Unlock()
		err := fmt.Errorf("session has no live connector")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	generation := uuid.NewString()
	s.generation = generation
	s.state = StateConnecting
	s.errReason = ""
	s.notify = notify
	s.transcripts.Reset()

	scheduler := newPlaybackScheduler(s.output, func() { s.handlePlaybackDrained(generation) })
	// A playback device error is worth telling the child about, but the
	// microphone side still works, so the call stays up.
	scheduler.onOutputError = func(error) { notify.statusChanged(statusPlaybackTrouble) }
	s.scheduler = scheduler

	routine := s.teardowns.arm(func() { s.release(scheduler) })
	s.current = routine

	connector := s.connector
	microphone := s.microphone
	persona, voice := s.persona, s.voice
	s.mu.Unlock()

	captureEncoding := audio.CaptureEncodingInfo()
	if microphone != nil {
		notify.statusChanged(statusRequestingMic)
		captureEncoding = microphone.EncodingInfo()

		if err := microphone.Stream(ctx, func(pcm []byte) { s.handleCaptureBlock(generation, pcm) }); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if errors.Is(err, ErrMicrophoneDenied) {
				s.fail(generation, routine, statusMicDenied)
				return err
			}
			s.fail(generation, routine, statusMicFailed)
			return fmt.Errorf("failed to start microphone capture: %w", err)
		}

		// A stop or restart that landed while the microphone was being
		// acquired has already spent this generation's teardown; nothing
		// else will release the stream, so it is released here.
		if !s.generationLive(generation) {
			microphone.Close()
			return fmt.Errorf("session stopped before startup completed")
		}
	}

	notify.statusChanged(statusConnecting)

	connectOptions := []live.ConnectOption{
		live.WithPersona(persona),
		live.WithCaptureEncoding(captureEncoding),
		live.WithOpenCallback(func() { s.handleOpen(generation) }),
		live.WithTranscriptDeltaCallback(func(speaker, text string) {
			s.handleEvent(generation, events.NewTranscriptDelta(events.Speaker(speaker), text))
		}),
		live.WithTurnCompleteCallback(func() { s.handleEvent(generation, events.NewTurnComplete()) }),
		live.WithSpeechChunkCallback(func(data, mimeType string) {
			s.handleEvent(generation, events.NewSpeechChunk(data, mimeType))
		}),
		live.WithInterruptedCallback(func() { s.handleEvent(generation, events.NewInterrupted()) }),
		live.WithErrorCallback(func(reason string) { s.handleEvent(generation, events.NewSessionError(reason)) }),
		live.WithCloseCallback(func(reason string) { s.handleEvent(generation, events.NewSessionClosed(reason)) }),
	}
	if voice != "" {
		connectOptions = append(connectOptions, live.WithVoice(voice))
	}

	if err := connector.Connect(ctx, connectOptions...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.fail(generation, routine, statusConnectFailed)
		return fmt.Errorf("failed to connect live session: %w", err)
	}

	// Same race as above, against the handshake this time.
	if !s.generationLive(generation) {
		if err := connector.Close(); err != nil {
			logger.Warn("failed to close live connection", "error", err)
		}
		if microphone != nil {
			microphone.Close()
		}
		return fmt.Errorf("session stopped before startup completed")
	}

	return nil
}

// generationLive reports whether the given generation is still the current
// one and has not been stopped or failed.
func (s *Session) generationLive(generation string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generation == generation && (s.state == StateConnecting || s.state == StateOpen)
}

// Stop ends the call and releases the microphone, playback and connection.
// Stopping a session that is not running is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state != StateConnecting && s.state != StateOpen {
		s.mu.Unlock()
		return
	}
	s.state = StateClosing
	generation := s.generation
	routine := s.current
	notify := s.notify
	s.mu.Unlock()

	notify.statusChanged(statusEnding)
	s.teardowns.run(routine)

	s.mu.Lock()
	if s.generation == generation && s.state == StateClosing {
		s.state = StateClosed
	}
	s.mu.Unlock()
	notify.statusChanged(statusEnded)
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Status returns the human-readable line describing the session right now.
func (s *Session) Status() string {
	s.mu.Lock()
	state, reason := s.state, s.errReason
	s.mu.Unlock()

	switch state {
	case StateConnecting:
		return statusConnecting
	case StateOpen:
		if s.isSpeaking.Load() {
			return statusSpeaking
		}
		return statusListening
	case StateClosing:
		return statusEnding
	case StateClosed:
		return statusEnded
	case StateError:
		return reason
	}
	return statusReady
}

// Transcripts returns the live transcript buffers for the current turn.
func (s *Session) Transcripts() (user, assistant string) {
	return s.transcripts.Snapshot()
}

func (s *Session) IsListening() bool {
	return s.isListening.Load()
}

func (s *Session) IsSpeaking() bool {
	return s.isSpeaking.Load()
}

func (s *Session) handleOpen(generation string) {
	s.mu.Lock()
	if generation != s.generation || s.state != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.state = StateOpen
	s.isListening.Store(true)
	notify := s.notify
	s.mu.Unlock()

	notify.listeningChanged(true)
	notify.statusChanged(statusListening)
}

// handleCaptureBlock forwards one microphone block. Blocks produced before
// the session opens or after it ends are dropped, never queued.
func (s *Session) handleCaptureBlock(generation string, pcm []byte) {
	s.mu.Lock()
	stale := generation != s.generation || s.state != StateOpen
	connector := s.connector
	s.mu.Unlock()
	if stale {
		return
	}

	frame, err := audio.EncodePCMFrame(pcm)
	if err != nil {
		logger.Warn("dropping malformed capture block", "error", err)
		return
	}
	if err := connector.SendAudio(frame); err != nil {
		logger.Warn("failed to forward capture frame", "error", err)
	}
}

// handleEvent processes one inbound event. The connector delivers events from
// a single goroutine, so processing is sequential in arrival order. State
// mutation happens in the same critical section as the generation check, so
// an event from a torn-down call can never touch a successor's buffers or
// callbacks; notifications go out after unlocking, on this generation's
// notifier snapshot.
func (s *Session) handleEvent(generation string, event events.Event) {
	s.mu.Lock()
	if generation != s.generation || s.state == StateClosing || s.state.isTerminal() {
		s.mu.Unlock()
		return
	}
	scheduler := s.scheduler
	routine := s.current
	notify := s.notify

	switch typed := event.(type) {
	case events.TranscriptDelta:
		s.transcripts.Append(typed.Speaker, typed.Text)
		user, assistant := s.transcripts.Snapshot()
		startedSpeaking := typed.Speaker == events.SpeakerAssistant && s.isSpeaking.CompareAndSwap(false, true)
		s.mu.Unlock()

		notify.transcriptsChanged(user, assistant)
		if startedSpeaking {
			notify.speakingChanged(true)
			notify.statusChanged(statusSpeaking)
		}

	case events.TurnComplete:
		s.transcripts.Reset()
		stoppedSpeaking := s.isSpeaking.CompareAndSwap(true, false)
		s.mu.Unlock()

		notify.transcriptsChanged("", "")
		if stoppedSpeaking {
			notify.speakingChanged(false)
			notify.statusChanged(statusListening)
		}

	case events.SpeechChunk:
		err := scheduler.Schedule(typed.Data)
		startedSpeaking := err == nil && s.isSpeaking.CompareAndSwap(false, true)
		s.mu.Unlock()

		if err != nil {
			logger.Warn("dropping undecodable speech chunk", "error", err, "mime_type", typed.MIMEType)
			return
		}
		if startedSpeaking {
			notify.speakingChanged(true)
			notify.statusChanged(statusSpeaking)
		}

	case events.Interrupted:
		scheduler.Interrupt()
		stoppedSpeaking := s.isSpeaking.CompareAndSwap(true, false)
		s.mu.Unlock()

		if stoppedSpeaking {
			notify.speakingChanged(false)
			notify.statusChanged(statusListening)
		}

	case events.SessionError:
		s.mu.Unlock()
		logger.Error("live session reported an error", "reason", typed.Reason)
		s.fail(generation, routine, statusConnectionLost)

	case events.SessionClosed:
		s.mu.Unlock()
		s.finish(generation, routine, typed.Reason)

	default:
		s.mu.Unlock()
	}
}

func (s *Session) handlePlaybackDrained(generation string) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	state := s.state
	notify := s.notify
	stoppedSpeaking := s.isSpeaking.CompareAndSwap(true, false)
	s.mu.Unlock()

	if stoppedSpeaking {
		notify.speakingChanged(false)
		if state == StateOpen {
			notify.statusChanged(statusListening)
		}
	}
}

func (s *Session) finish(generation string, routine *teardownRoutine, reason string) {
	s.mu.Lock()
	if generation != s.generation || s.state.isTerminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateClosing
	notify := s.notify
	s.mu.Unlock()

	logger.Info("live session closed", "reason", reason)
	s.teardowns.run(routine)

	s.mu.Lock()
	if s.generation == generation && s.state == StateClosing {
		s.state = StateClosed
	}
	s.mu.Unlock()
	notify.statusChanged(statusEnded)
}

func (s *Session) fail(generation string, routine *teardownRoutine, status string) {
	s.mu.Lock()
	if generation != s.generation || s.state.isTerminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateError
	s.errReason = status
	notify := s.notify
	s.mu.Unlock()

	s.teardowns.run(routine)
	notify.statusChanged(status)
}

// release frees every resource of one generation. It only ever runs through
// the teardown guard, which makes it once-per-generation and keeps a stale
// routine from touching a newer generation's resources.
func (s *Session) release(scheduler *playbackScheduler) {
	s.mu.Lock()
	microphone := s.microphone
	connector := s.connector
	notify := s.notify
	s.mu.Unlock()

	if scheduler != nil {
		scheduler.Interrupt()
	}
	if microphone != nil {
		microphone.Close()
	}
	if connector != nil {
		if err := connector.Close(); err != nil {
			logger.Warn("failed to close live connection", "error", err)
		}
	}

	if s.isListening.CompareAndSwap(true, false) {
		notify.listeningChanged(false)
	}
	if s.isSpeaking.CompareAndSwap(true, false) {
		notify.speakingChanged(false)
	}
}
