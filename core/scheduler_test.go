package voicecall

import (
	"encoding/base64"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/planetpals/starcall-core/core/audio"
)

type manualClock struct {
	now time.Duration
}

func (c *manualClock) Now() time.Duration {
	return c.now
}

type manualTimer struct {
	fireAt  time.Duration
	fire    func()
	fired   bool
	stopped bool
}

// timerHarness replaces real timers so scheduling math can be checked by
// advancing a fake clock.
type timerHarness struct {
	clock  *manualClock
	timers []*manualTimer
}

func newTimerHarness() *timerHarness {
	return &timerHarness{clock: &manualClock{}}
}

func (h *timerHarness) timer(delay time.Duration, fire func()) func() bool {
	timer := &manualTimer{fireAt: h.clock.now + delay, fire: fire}
	h.timers = append(h.timers, timer)
	return func() bool {
		if timer.stopped || timer.fired {
			return false
		}
		timer.stopped = true
		return true
	}
}

func (h *timerHarness) advanceTo(now time.Duration) {
	h.clock.now = now
	for {
		var next *manualTimer
		for _, timer := range h.timers {
			if timer.fired || timer.stopped || timer.fireAt > now {
				continue
			}
			if next == nil || timer.fireAt < next.fireAt {
				next = timer
			}
		}
		if next == nil {
			return
		}
		next.fired = true
		next.fire()
	}
}

type outputStub struct {
	mu      sync.Mutex
	sent    [][]byte
	cleared int
}

func (o *outputStub) EncodingInfo() audio.EncodingInfo {
	return audio.PlaybackEncodingInfo()
}

func (o *outputStub) SendAudio(pcm []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, pcm)
	return nil
}

func (o *outputStub) ClearBuffer() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cleared++
}

func (o *outputStub) sentCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}

func (o *outputStub) clearedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cleared
}

// payloadOf builds a base64 payload that decodes to the given duration at the
// playback rate.
func payloadOf(t *testing.T, duration time.Duration) string {
	t.Helper()
	byteCount := int(duration.Seconds() * float64(audio.PlaybackSampleRate) * 2)
	return base64.StdEncoding.EncodeToString(make([]byte, byteCount))
}

func newHarnessedScheduler(output AudioOutput, onDrained func()) (*playbackScheduler, *timerHarness) {
	harness := newTimerHarness()
	scheduler := newPlaybackScheduler(output, onDrained)
	scheduler.clock = harness.clock
	scheduler.timer = harness.timer
	return scheduler, harness
}

func (s *playbackScheduler) startTimes() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	times := []time.Duration{}
	for _, source := range s.sources {
		times = append(times, source.startTime)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times
}

func TestScheduleQueuesChunksBackToBack(t *testing.T) {
	scheduler, _ := newHarnessedScheduler(&outputStub{}, nil)

	for _, duration := range []time.Duration{500 * time.Millisecond, 300 * time.Millisecond, 400 * time.Millisecond} {
		if err := scheduler.Schedule(payloadOf(t, duration)); err != nil {
			t.Fatalf("expected chunk to schedule, got %v", err)
		}
	}

	expected := []time.Duration{0, 500 * time.Millisecond, 800 * time.Millisecond}
	startTimes := scheduler.startTimes()
	if len(startTimes) != len(expected) {
		t.Fatalf("expected %d queued sources, got %d", len(expected), len(startTimes))
	}
	for i, want := range expected {
		if startTimes[i] != want {
			t.Fatalf("expected source %d to start at %v, got %v", i, want, startTimes[i])
		}
	}
	if scheduler.cursor != 1200*time.Millisecond {
		t.Fatalf("expected cursor at 1.2s, got %v", scheduler.cursor)
	}
}

func TestScheduleAfterSilenceStartsImmediately(t *testing.T) {
	scheduler, harness := newHarnessedScheduler(&outputStub{}, nil)

	if err := scheduler.Schedule(payloadOf(t, 500*time.Millisecond)); err != nil {
		t.Fatalf("expected chunk to schedule, got %v", err)
	}
	harness.advanceTo(2 * time.Second)

	if err := scheduler.Schedule(payloadOf(t, 500*time.Millisecond)); err != nil {
		t.Fatalf("expected chunk to schedule, got %v", err)
	}

	startTimes := scheduler.startTimes()
	if len(startTimes) != 1 || startTimes[0] != 2*time.Second {
		t.Fatalf("expected late chunk to start at 2s, got %v", startTimes)
	}
	if scheduler.cursor != 2500*time.Millisecond {
		t.Fatalf("expected cursor at 2.5s, got %v", scheduler.cursor)
	}
}

func TestInterruptStopsEverythingAndRewindsCursor(t *testing.T) {
	output := &outputStub{}
	scheduler, harness := newHarnessedScheduler(output, nil)

	for range 3 {
		if err := scheduler.Schedule(payloadOf(t, 500*time.Millisecond)); err != nil {
			t.Fatalf("expected chunk to schedule, got %v", err)
		}
	}
	harness.advanceTo(100 * time.Millisecond)
	if output.sentCount() != 1 {
		t.Fatalf("expected only the first chunk to have started, got %d", output.sentCount())
	}

	scheduler.Interrupt()

	if scheduler.Pending() != 0 {
		t.Fatalf("expected no pending sources after interrupt, got %d", scheduler.Pending())
	}
	if output.clearedCount() != 1 {
		t.Fatalf("expected output buffer to be cleared once, got %d", output.clearedCount())
	}
	if scheduler.cursor != 0 {
		t.Fatalf("expected cursor rewound to zero, got %v", scheduler.cursor)
	}

	harness.advanceTo(5 * time.Second)
	if output.sentCount() != 1 {
		t.Fatalf("expected no audio after interrupt, got %d sends", output.sentCount())
	}

	if err := scheduler.Schedule(payloadOf(t, 500*time.Millisecond)); err != nil {
		t.Fatalf("expected chunk to schedule after interrupt, got %v", err)
	}
	startTimes := scheduler.startTimes()
	if len(startTimes) != 1 || startTimes[0] != 5*time.Second {
		t.Fatalf("expected post-interrupt chunk to start now, got %v", startTimes)
	}
}

func TestDrainedCallbackFiresOnceWhenQueueEmpties(t *testing.T) {
	drained := 0
	scheduler, harness := newHarnessedScheduler(&outputStub{}, func() { drained++ })

	if err := scheduler.Schedule(payloadOf(t, 500*time.Millisecond)); err != nil {
		t.Fatalf("expected chunk to schedule, got %v", err)
	}
	if err := scheduler.Schedule(payloadOf(t, 300*time.Millisecond)); err != nil {
		t.Fatalf("expected chunk to schedule, got %v", err)
	}

	harness.advanceTo(600 * time.Millisecond)
	if drained != 0 {
		t.Fatalf("expected no drain signal while a source is queued, got %d", drained)
	}

	harness.advanceTo(1 * time.Second)
	if drained != 1 {
		t.Fatalf("expected exactly one drain signal, got %d", drained)
	}
}

func TestScheduleRejectsMalformedPayload(t *testing.T) {
	scheduler, _ := newHarnessedScheduler(&outputStub{}, nil)

	if err := scheduler.Schedule(payloadOf(t, 500*time.Millisecond)); err != nil {
		t.Fatalf("expected chunk to schedule, got %v", err)
	}

	if err := scheduler.Schedule("%%%not-base64%%%"); err == nil {
		t.Fatalf("expected malformed payload to be rejected")
	}

	if scheduler.Pending() != 1 {
		t.Fatalf("expected queue untouched by malformed payload, got %d pending", scheduler.Pending())
	}
	if scheduler.cursor != 500*time.Millisecond {
		t.Fatalf("expected cursor untouched by malformed payload, got %v", scheduler.cursor)
	}
}
