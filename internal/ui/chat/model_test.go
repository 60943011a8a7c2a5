// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/morganforge/concierge-tui/internal/api"
	"github.com/morganforge/concierge-tui/internal/ui/styles"
)

func testModel() Model {
	return New(Options{
		Theme:       styles.NewTheme(),
		Client:      api.NewClient(nil, zerolog.Nop()),
		RevealDelay: time.Millisecond,
		ShowPanel:   true,
		Welcome:     "Welcome aboard.",
	})
}

// step applies one message and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want chat.Model", updated)
	}
	return next, cmd
}

// drainReveal feeds reveal ticks until the animation completes.
func drainReveal(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.reveal != nil; i++ {
		if i > 10000 {
			t.Fatal("reveal never completed")
		}
		m, _ = step(t, m, RevealTickMsg{})
	}
	return m
}

func countKind(m Model, kind rowKind) int {
	n := 0
	for _, r := range m.rows {
		if r.kind == kind {
			n++
		}
	}
	return n
}

func lastRow(t *testing.T, m Model) row {
	t.Helper()
	if len(m.rows) == 0 {
		t.Fatal("no rows")
	}
	return m.rows[len(m.rows)-1]
}

// =============================================================================
// SEND PIPELINE TESTS
// =============================================================================

func TestSubmitInput_EmptyIsNoOp(t *testing.T) {
	m := testModel()
	before := len(m.rows)

	m.input.SetValue("   \t  ")
	updated, cmd := m.submitInput()
	m = updated.(Model)

	if len(m.rows) != before {
		t.Errorf("rows grew from %d to %d on whitespace input", before, len(m.rows))
	}
	if cmd != nil {
		t.Error("whitespace input dispatched a command")
	}
	if m.state != StateReady {
		t.Error("state left Ready on a no-op")
	}
}

func TestSendPipeline_Success(t *testing.T) {
	m := testModel()

	m.input.SetValue("When do we board?")
	updated, cmd := m.submitInput()
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("submit dispatched no command")
	}
	if m.state != StateBusy {
		t.Error("state != StateBusy after dispatch")
	}
	if m.input.Value() != "" {
		t.Error("input not cleared after dispatch")
	}
	if countKind(m, rowPending) != 1 {
		t.Fatalf("pending rows = %d, want 1", countKind(m, rowPending))
	}
	if m.transcript.Len() != 0 {
		t.Error("transcript mutated before the response arrived")
	}

	reply := "Boarding for flight AB123 starts at Gate B5."
	m, _ = step(t, m, SendResultMsg{RequestID: m.pendingID, Reply: reply})

	if countKind(m, rowPending) != 0 {
		t.Error("pending indicator not removed on success")
	}
	if m.state != StateReady {
		t.Error("state != StateReady after result")
	}

	// Exactly one answered exchange, user before assistant.
	if m.transcript.Len() != 2 {
		t.Fatalf("transcript length = %d, want 2", m.transcript.Len())
	}
	history := m.transcript.History()
	if history[0].Content != "When do we board?" || history[1].Content != reply {
		t.Error("transcript ordering or content wrong")
	}

	// The insight in the reply reached the dashboard.
	if m.panel.Flight() != "AB123" {
		t.Errorf("panel flight = %q, want AB123", m.panel.Flight())
	}
	if m.panel.Gate() != "B5" {
		t.Errorf("panel gate = %q, want B5", m.panel.Gate())
	}

	// The reply row animates to completion.
	m = drainReveal(t, m)
	last := lastRow(t, m)
	if last.kind != rowAssistant || last.content != reply || last.revealing {
		t.Errorf("final assistant row = %+v", last)
	}
}

func TestSendPipeline_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{
			name:     "transport failure",
			err:      &api.TransportError{Op: "chat", Cause: errors.New("refused")},
			wantText: transportFailureText,
		},
		{
			name:     "application failure",
			err:      &api.StatusError{Op: "chat", Status: "error"},
			wantText: applicationFailureText,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := testModel()
			m.input.SetValue("hello")
			updated, _ := m.submitInput()
			m = updated.(Model)

			m, _ = step(t, m, SendResultMsg{RequestID: m.pendingID, Err: tc.err})
			m = drainReveal(t, m)

			if countKind(m, rowPending) != 0 {
				t.Error("pending indicator not removed on failure")
			}
			if m.transcript.Len() != 0 {
				t.Error("failure mutated the transcript")
			}
			last := lastRow(t, m)
			if last.kind != rowSystem || last.content != tc.wantText {
				t.Errorf("failure row = %+v, want system row %q", last, tc.wantText)
			}
			if m.state != StateReady {
				t.Error("state != StateReady after failure")
			}
		})
	}
}

func TestSendPipeline_BusyGuard(t *testing.T) {
	m := testModel()
	m.input.SetValue("first")
	updated, _ := m.submitInput()
	m = updated.(Model)

	m.input.SetValue("second")
	updated, cmd := m.submitInput()
	m = updated.(Model)

	if cmd != nil {
		t.Error("second send dispatched while one was outstanding")
	}
	if m.input.Value() != "second" {
		t.Error("refused input was not kept")
	}
	if countKind(m, rowPending) != 1 {
		t.Errorf("pending rows = %d, want 1", countKind(m, rowPending))
	}
}

func TestSendPipeline_StaleResultIgnored(t *testing.T) {
	m := testModel()
	m.input.SetValue("hello")
	updated, _ := m.submitInput()
	m = updated.(Model)

	m, _ = step(t, m, SendResultMsg{RequestID: "turn_other", Reply: "stale"})

	if m.state != StateBusy {
		t.Error("stale result changed the state")
	}
	if countKind(m, rowPending) != 1 {
		t.Error("stale result removed the pending indicator")
	}
}

func TestSendPipeline_EmptyReplyCompletesInstantly(t *testing.T) {
	m := testModel()
	m.input.SetValue("hello")
	updated, _ := m.submitInput()
	m = updated.(Model)

	m, cmd := step(t, m, SendResultMsg{RequestID: m.pendingID, Reply: ""})

	if cmd != nil {
		t.Error("empty reply scheduled reveal ticks")
	}
	last := lastRow(t, m)
	if last.revealing {
		t.Error("empty reply left its row mid-reveal")
	}
}

// =============================================================================
// ALERT TESTS
// =============================================================================

func TestAlert_RendersAndSyncsGate(t *testing.T) {
	m := testModel()

	m, cmd := step(t, m, AlertMsg{Severity: "warning", Message: "Gate changed to C9"})

	if cmd != nil {
		t.Error("alert rendering scheduled a command")
	}
	last := lastRow(t, m)
	if last.kind != rowAlert || last.revealing {
		t.Errorf("alert row = %+v, want instant alert row", last)
	}
	if m.panel.Gate() != "C9" {
		t.Errorf("panel gate = %q, want C9", m.panel.Gate())
	}
	if m.transcript.Len() != 0 {
		t.Error("alert mutated the transcript")
	}
}

func TestAlert_WithoutGateLeavesDashboard(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, AlertMsg{Severity: "info", Message: "Boarding begins shortly"})

	if m.panel.Gate() != "—" {
		t.Errorf("panel gate = %q, want placeholder", m.panel.Gate())
	}
}

// =============================================================================
// DOCUMENT INTAKE TESTS
// =============================================================================

func TestUploadPipeline(t *testing.T) {
	m := testModel()

	updated, cmd := m.submitUpload("/tmp/passport.png")
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("upload dispatched no command")
	}
	if countKind(m, rowPending) != 1 {
		t.Fatal("no pending indicator for the upload")
	}

	doc := &api.ExtractedDocument{
		Message: "Passport Detected",
		Fields: map[string]string{
			"passport_number": "X1234567",
			"name":            "John Doe",
		},
	}
	m, _ = step(t, m, UploadResultMsg{RequestID: m.pendingID, Doc: doc})
	m = drainReveal(t, m)

	if countKind(m, rowPending) != 0 {
		t.Error("pending indicator not removed after upload")
	}
	// Uploads are a side channel: the transcript never sees them.
	if m.transcript.Len() != 0 {
		t.Error("upload mutated the transcript")
	}

	last := lastRow(t, m)
	if last.kind != rowAssistant {
		t.Fatalf("summary row kind = %v, want assistant", last.kind)
	}
	for _, want := range []string{"Passport Detected", "name: John Doe", "passport number: X1234567"} {
		if !strings.Contains(last.content, want) {
			t.Errorf("summary missing %q in %q", want, last.content)
		}
	}
}

func TestUploadPipeline_Failure(t *testing.T) {
	m := testModel()
	updated, _ := m.submitUpload("/tmp/blurry.png")
	m = updated.(Model)

	m, _ = step(t, m, UploadResultMsg{
		RequestID: m.pendingID,
		Err:       &api.StatusError{Op: "upload", Status: "error"},
	})
	m = drainReveal(t, m)

	last := lastRow(t, m)
	if last.kind != rowSystem || last.content != uploadFailureText {
		t.Errorf("failure row = %+v, want %q", last, uploadFailureText)
	}
	if m.transcript.Len() != 0 {
		t.Error("failed upload mutated the transcript")
	}
}

func TestUploadPipeline_NoFileIsNoOp(t *testing.T) {
	m := testModel()
	before := len(m.rows)

	updated, cmd := m.submitUpload("")
	m = updated.(Model)

	if cmd != nil || len(m.rows) != before {
		t.Error("upload without a file should be a no-op")
	}
}

// =============================================================================
// VOICE TESTS
// =============================================================================

func TestVoiceResult_FeedsSendPath(t *testing.T) {
	m := testModel()
	m.capturing = true

	m, cmd := step(t, m, VoiceResultMsg{Text: "what gate is my flight"})

	if cmd == nil {
		t.Fatal("recognized speech did not dispatch a send")
	}
	if m.capturing {
		t.Error("capturing flag not cleared")
	}
	if m.input.Placeholder != defaultPlaceholder {
		t.Error("placeholder not restored after capture")
	}
	if m.state != StateBusy {
		t.Error("voice input did not enter the send pipeline")
	}
	if countKind(m, rowUser) != 1 {
		t.Error("voice input did not render a user row")
	}
}

func TestVoiceResult_ErrorRestoresIdle(t *testing.T) {
	m := testModel()
	m.capturing = true
	m.input.Placeholder = listeningPlaceholder

	m, cmd := step(t, m, VoiceResultMsg{Err: errors.New("no speech")})

	if cmd != nil {
		t.Error("failed capture dispatched a command")
	}
	if m.capturing || m.input.Placeholder != defaultPlaceholder {
		t.Error("idle state not restored after failed capture")
	}
}

// =============================================================================
// SITE CONFIG TESTS
// =============================================================================

func TestSiteConfig_FillsPanelAndHeader(t *testing.T) {
	m := testModel()

	cfg := &api.SiteConfig{
		Company:  api.CompanyInfo{Hotline: "+1 800 555 0100"},
		Branding: api.BrandingInfo{PoweredBy: "Morgan Forge"},
	}
	m, _ = step(t, m, SiteConfigMsg{Config: cfg})

	if m.header.Subtitle != "Morgan Forge" {
		t.Errorf("header subtitle = %q", m.header.Subtitle)
	}
	if !strings.Contains(m.panel.View(), "+1 800 555 0100") {
		t.Error("panel missing company hotline")
	}
}

func TestSiteConfig_FailureKeepsDefaults(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, SiteConfigMsg{Err: errors.New("404")})

	if m.header.Subtitle != "" {
		t.Error("failed fetch changed the header")
	}
}
