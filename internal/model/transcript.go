// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered, append-only history of exchanged turns. It is
// the sole conversational memory sent to the remote endpoint.
//
// There is no remove or reset operation: the history lives exactly as long
// as the process. Callers append complete exchanges only, which keeps the
// user-before-assistant ordering an invariant of the type rather than a
// caller obligation.
type Transcript struct {
	turns []Turn
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{turns: make([]Turn, 0)}
}

// AppendExchange appends one answered exchange: the user turn followed by
// the assistant turn. This is the only way the transcript grows.
func (tr *Transcript) AppendExchange(user, assistant Turn) {
	tr.turns = append(tr.turns, user, assistant)
}

// Len returns the number of turns.
func (tr *Transcript) Len() int {
	return len(tr.turns)
}

// IsEmpty reports whether no exchange has completed yet.
func (tr *Transcript) IsEmpty() bool {
	return len(tr.turns) == 0
}

// Last returns the most recent turn and true, or a zero turn and false
// when the transcript is empty.
func (tr *Transcript) Last() (Turn, bool) {
	if len(tr.turns) == 0 {
		return Turn{}, false
	}
	return tr.turns[len(tr.turns)-1], true
}

// History returns a copy of the turns in chronological order, suitable for
// serializing into a request without exposing internal state.
func (tr *Transcript) History() []Turn {
	out := make([]Turn, len(tr.turns))
	copy(out, tr.turns)
	return out
}
