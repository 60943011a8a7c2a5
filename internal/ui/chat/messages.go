// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines all Bubble Tea message types used by the chat view.
// Messages are organized into the following categories:
//   - Send: conversation request results
//   - Reveal: typewriter animation ticks
//   - Alerts: push events and channel lifecycle
//   - Upload: document ingestion results
//   - Voice: speech capture results
//   - Site config: one-shot company/branding fetch
//
// All message types follow Bubble Tea conventions and are immutable.

package chat

import "github.com/morganforge/concierge-tui/internal/api"

// =============================================================================
// SEND MESSAGES
// =============================================================================

// SendResultMsg delivers the outcome of a conversation request. Exactly one
// arrives per dispatched request.
type SendResultMsg struct {
	RequestID string
	Reply     string
	Err       error
}

// =============================================================================
// REVEAL MESSAGES
// =============================================================================

// RevealTickMsg advances the typewriter animation by one step.
type RevealTickMsg struct{}

// =============================================================================
// ALERT MESSAGES
// =============================================================================

// AlertMsg delivers one push alert for instant rendering.
type AlertMsg struct {
	Severity string
	Message  string
}

// AlertChannelClosedMsg signals that the push subscription ended.
type AlertChannelClosedMsg struct{}

// =============================================================================
// UPLOAD MESSAGES
// =============================================================================

// UploadResultMsg delivers the outcome of a document upload.
type UploadResultMsg struct {
	RequestID string
	Doc       *api.ExtractedDocument
	Err       error
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceResultMsg delivers the text of a finished speech capture session.
type VoiceResultMsg struct {
	Text string
	Err  error
}

// =============================================================================
// SITE CONFIG MESSAGES
// =============================================================================

// SiteConfigMsg delivers the one-shot site configuration fetch. A failed
// fetch leaves the defaults in place and is otherwise silent.
type SiteConfigMsg struct {
	Config *api.SiteConfig
	Err    error
}
