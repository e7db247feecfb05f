package events

import (
	"strings"
	"sync/atomic"
	"time"
)

// Kind identifies an event variant as "namespace.name", e.g.
// "transcript.delta".
type Kind string

// Namespace returns the group prefix of the kind, "transcript" for
// "transcript.delta". A kind without a separator is its own namespace.
func (k Kind) Namespace() string {
	namespace, _, _ := strings.Cut(string(k), ".")
	return namespace
}

type Event interface {
	Kind() Kind
	Timestamp() time.Time
	Seq() uint64
}

var seqCounter atomic.Uint64

// Base carries the metadata every event shares. The sequence number records
// construction order; events are constructed on the connector's single read
// goroutine, so it matches arrival order from the remote endpoint.
type Base struct {
	kind      Kind
	timestamp time.Time
	seq       uint64
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now(), seq: seqCounter.Add(1)}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

// Seq returns the event's construction-order sequence number.
func (b Base) Seq() uint64 {
	return b.seq
}
