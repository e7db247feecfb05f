// Package events defines the typed event contract for the live voice call.
//
// Every event arriving from the remote endpoint is mapped to one of these
// variants before the session's dispatch loop consumes it, so dispatch is a
// plain type switch rather than a pile of ad-hoc callbacks.
//
// Event kinds are grouped by namespace:
//
//   - transcript.*: incremental speech-to-text deltas and turn boundaries.
//   - speech.*: assistant audio payloads and playback lifecycle.
//   - session.*: remote-side errors and closure.
//
// Semantics used across the package:
//
//   - Delta: append-only text piece emitted in stream order.
//   - Chunk: one opaque audio payload destined for the playback scheduler.
//   - Complete/Ended: lifecycle boundary for the current turn or stream.
package events
