package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "transcript delta", event: NewTranscriptDelta(SpeakerUser, "hi"), expected: KindTranscriptDelta},
		{name: "turn complete", event: NewTurnComplete(), expected: KindTurnComplete},
		{name: "speech chunk", event: NewSpeechChunk("AAA=", "audio/pcm;rate=24000"), expected: KindSpeechChunk},
		{name: "interrupted", event: NewInterrupted(), expected: KindInterrupted},
		{name: "session error", event: NewSessionError("boom"), expected: KindSessionError},
		{name: "session closed", event: NewSessionClosed("bye"), expected: KindSessionClosed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestKindNamespaceGroupsRelatedEvents(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{kind: KindTranscriptDelta, expected: "transcript"},
		{kind: KindTurnComplete, expected: "transcript"},
		{kind: KindSpeechChunk, expected: "speech"},
		{kind: KindSessionClosed, expected: "session"},
	}

	for _, testCase := range testCases {
		if got := testCase.kind.Namespace(); got != testCase.expected {
			t.Fatalf("expected namespace %q for %q, got %q", testCase.expected, testCase.kind, got)
		}
	}
}

func TestSequenceNumbersFollowConstructionOrder(t *testing.T) {
	first := NewTurnComplete()
	second := NewInterrupted()

	if first.Seq() >= second.Seq() {
		t.Fatalf("expected increasing sequence numbers, got %d then %d", first.Seq(), second.Seq())
	}
}

func TestTranscriptDeltaKeepsSpeakerAttribution(t *testing.T) {
	user := NewTranscriptDelta(SpeakerUser, "hello")
	assistant := NewTranscriptDelta(SpeakerAssistant, "hello")

	if user.Speaker == assistant.Speaker {
		t.Fatalf("expected distinct speakers, both were %q", user.Speaker)
	}
}
