// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/concierge-tui/internal/api"
	"github.com/morganforge/concierge-tui/internal/model"
	"github.com/morganforge/concierge-tui/internal/voice"
)

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd posts one message with its history snapshot. The arguments are
// captured by value before the goroutine starts; the command never reads
// model state.
func sendCmd(client *api.Client, userTurn model.Turn, history []model.Turn) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.SendMessage(context.Background(), userTurn.Content, history)
		return SendResultMsg{RequestID: userTurn.ID, Reply: reply, Err: err}
	}
}

// uploadCmd performs one document ingestion request.
func uploadCmd(client *api.Client, path, requestID string) tea.Cmd {
	return func() tea.Msg {
		doc, err := client.UploadDocument(context.Background(), path)
		return UploadResultMsg{RequestID: requestID, Doc: doc, Err: err}
	}
}

// voiceCmd runs one speech capture session.
func voiceCmd(adapter voice.Adapter) tea.Cmd {
	return func() tea.Msg {
		text, err := adapter.Capture(context.Background())
		return VoiceResultMsg{Text: text, Err: err}
	}
}

// fetchSiteConfigCmd performs the one-shot site configuration fetch.
func fetchSiteConfigCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		cfg, err := client.FetchSiteConfig(context.Background())
		return SiteConfigMsg{Config: cfg, Err: err}
	}
}

// revealTickCmd schedules the next typewriter step.
func revealTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealTickMsg{}
	})
}
