package voicecall

import (
	"strings"
	"sync"

	"github.com/planetpals/starcall-core/core/events"
)

// transcriptBuffer accumulates the live transcripts for the current turn.
// Deltas are append-only per speaker; both sides reset together when the
// turn completes.
type transcriptBuffer struct {
	mu sync.Mutex

	user      strings.Builder
	assistant strings.Builder
}

func (b *transcriptBuffer) Append(speaker events.Speaker, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch speaker {
	case events.SpeakerUser:
		b.user.WriteString(text)
	case events.SpeakerAssistant:
		b.assistant.WriteString(text)
	}
}

func (b *transcriptBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.user.Reset()
	b.assistant.Reset()
}

func (b *transcriptBuffer) Snapshot() (user, assistant string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.user.String(), b.assistant.String()
}
