// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Verify styles are initialized by rendering a test string
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"SystemBubble", theme.SystemBubble},
		{"InputContainer", theme.InputContainer},
		{"PanelBox", theme.PanelBox},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); rendered == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)

	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize() stored %dx%d, want 120x40", theme.Width, theme.Height)
	}
}

func TestAlertStyle(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		severity string
		want     lipgloss.Style
	}{
		{"critical", theme.AlertCritical},
		{"error", theme.AlertCritical},
		{"warning", theme.AlertWarning},
		{"info", theme.AlertInfo},
		{"", theme.AlertInfo},
		{"unknown", theme.AlertInfo},
	}

	for _, tc := range tests {
		got := theme.AlertStyle(tc.severity)
		if got.Render("x") != tc.want.Render("x") {
			t.Errorf("AlertStyle(%q) produced unexpected style", tc.severity)
		}
	}
}
