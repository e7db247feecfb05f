package voicecall

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planetpals/starcall-core/core/audio"
)

// playbackClock is the monotonic time source the scheduler reasons in.
// Injectable so the scheduling math is testable without real sleeps.
type playbackClock interface {
	Now() time.Duration
}

type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Now() time.Duration {
	return time.Since(c.start)
}

// timerFunc schedules fire after delay and returns a cancel function.
type timerFunc func(delay time.Duration, fire func()) func() bool

func afterFuncTimer(delay time.Duration, fire func()) func() bool {
	return time.AfterFunc(delay, fire).Stop
}

type scheduledSource struct {
	id        string
	startTime time.Duration
	duration  time.Duration

	cancelStart func() bool
	cancelDone  func() bool
}

// playbackScheduler lines assistant audio chunks up gaplessly behind a
// monotonic cursor. Each chunk starts at max(cursor, now); the cursor then
// advances by the chunk's duration, so chunks arriving faster than they play
// queue back-to-back and a chunk arriving after a silence starts immediately.
type playbackScheduler struct {
	mu sync.Mutex

	output   AudioOutput
	clock    playbackClock
	encoding audio.EncodingInfo
	timer    timerFunc

	cursor  time.Duration
	sources map[string]*scheduledSource

	onPlaybackFinished func()
	onOutputError      func(err error)
}

func newPlaybackScheduler(output AudioOutput, onPlaybackFinished func()) *playbackScheduler {
	encoding := audio.PlaybackEncodingInfo()
	if output != nil {
		encoding = output.EncodingInfo()
	}

	return &playbackScheduler{
		output:             output,
		clock:              newWallClock(),
		encoding:           encoding,
		timer:              afterFuncTimer,
		sources:            map[string]*scheduledSource{},
		onPlaybackFinished: onPlaybackFinished,
	}
}

// Schedule decodes one payload and queues it. A payload that fails to decode
// is dropped without disturbing the cursor or anything already queued.
func (s *playbackScheduler) Schedule(data string) error {
	chunk, err := audio.DecodeChunk(data, s.encoding)
	if err != nil {
		return err
	}

	s.mu.Lock()

	now := s.clock.Now()
	startTime := s.cursor
	if startTime < now {
		startTime = now
	}

	source := &scheduledSource{
		id:        uuid.NewString(),
		startTime: startTime,
		duration:  chunk.Duration(),
	}
	s.sources[source.id] = source
	s.cursor = startTime + source.duration

	source.cancelStart = s.timer(startTime-now, func() { s.beginSource(source.id, chunk) })
	source.cancelDone = s.timer(startTime+source.duration-now, func() { s.completeSource(source.id) })

	s.mu.Unlock()
	return nil
}

func (s *playbackScheduler) beginSource(id string, chunk audio.PlaybackChunk) {
	s.mu.Lock()
	_, active := s.sources[id]
	output := s.output
	s.mu.Unlock()

	if !active || output == nil {
		return
	}
	if err := output.SendAudio(chunk.PCM); err != nil {
		logger.Warn("failed to hand playback chunk to output", "error", err)
		if s.onOutputError != nil {
			s.onOutputError(err)
		}
	}
}

func (s *playbackScheduler) completeSource(id string) {
	s.mu.Lock()
	if _, active := s.sources[id]; !active {
		s.mu.Unlock()
		return
	}
	delete(s.sources, id)
	drained := len(s.sources) == 0
	s.mu.Unlock()

	if drained && s.onPlaybackFinished != nil {
		s.onPlaybackFinished()
	}
}

// Interrupt stops every queued and playing source and rewinds the cursor, so
// the next chunk schedules relative to the current time instead of behind
// audio that will never play. Safe to call with nothing queued.
func (s *playbackScheduler) Interrupt() {
	s.mu.Lock()
	for id, source := range s.sources {
		if source.cancelStart != nil {
			source.cancelStart()
		}
		if source.cancelDone != nil {
			source.cancelDone()
		}
		delete(s.sources, id)
	}
	s.cursor = 0
	output := s.output
	s.mu.Unlock()

	if output != nil {
		output.ClearBuffer()
	}
}

func (s *playbackScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sources)
}
