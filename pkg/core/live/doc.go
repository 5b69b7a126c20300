// Package live implements the realtime voice A&R session: a bidirectional
// PCM audio conversation with the label's AI talent evaluator.
//
// # Architecture
//
// The package provides four components:
//
//   - Capture: pulls fixed-size microphone frames, encodes them to
//     16 kHz PCM16 base64 chunks, and sends them over the session handle
//   - Handle: one connection to the remote AI endpoint, delivering open,
//     audio, error, and close notifications as events
//   - Scheduler: sequences decoded 24 kHz playback buffers back-to-back
//     against the output device clock
//   - Controller: the session state machine that owns start/stop and
//     tears everything down on remote error or close
//
// # Data Flow
//
//	Microphone → Capture → Handle (outbound)
//	Handle (inbound) → Playback → Scheduler → Output device
//
// # State Machine
//
// A session progresses through these states:
//
//	IDLE → CONNECTING → ACTIVE → {CLOSED, ERROR}
//
// CONNECTING is always visited; a session never jumps from IDLE to
// ACTIVE. Both terminal states release the microphone source and the
// scheduled playback buffers. There is no automatic reconnection: every
// failure path is a terminal transition, not a recovery attempt.
package live
