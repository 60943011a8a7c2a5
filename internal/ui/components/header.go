// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/concierge-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar across the top of the screen.
type Header struct {
	Title    string // main title (default: "Concierge")
	Subtitle string // powered-by attribution, filled from site config
	Width    int

	theme *styles.Theme
}

// NewHeader creates a header with the default title.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "Concierge",
		theme: theme,
	}
}

// SetWidth updates the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header bar.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("✈ " + h.Title)
	if h.Subtitle != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Center,
			title, "  ", h.theme.HeaderSubtitle.Render(h.Subtitle))
	}
	return h.theme.Header.Width(max(0, h.Width-2)).Render(title)
}
