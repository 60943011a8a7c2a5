// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// panelWidth is the fixed width of the insights side panel.
const panelWidth = 32

// =============================================================================
// LAYOUT
// =============================================================================

// relayout recomputes component sizes after a resize or panel toggle.
func (m Model) relayout() (tea.Model, tea.Cmd) {
	chatWidth := m.width
	if m.showPanel {
		chatWidth -= panelWidth
	}
	if chatWidth < 20 {
		chatWidth = 20
	}

	headerHeight := lipgloss.Height(m.headerView())
	inputHeight := lipgloss.Height(m.inputView())
	statusHeight := lipgloss.Height(m.statusView())

	m.header.SetWidth(m.width)
	m.panel.SetSize(panelWidth, m.height-headerHeight-statusHeight)
	m.viewport.Width = chatWidth
	m.viewport.Height = m.height - headerHeight - inputHeight - statusHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = chatWidth - 6

	m.updateViewport()
	return m, nil
}

// updateViewport re-renders all rows and pins the view to the newest
// content. Called after every row change and every reveal step.
func (m *Model) updateViewport() {
	lines := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		lines = append(lines, m.renderRow(r))
	}
	m.viewport.SetContent(strings.Join(lines, "\n\n"))
	m.viewport.GotoBottom()
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the complete screen.
func (m Model) View() string {
	body := m.viewport.View()
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.panel.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.inputView(),
		m.statusView(),
	)
}

func (m Model) headerView() string {
	return m.header.View()
}

func (m Model) inputView() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 60
	}
	return m.theme.InputContainer.Width(width).Render(m.input.View())
}

func (m Model) statusView() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Render(m.statusMsg)
	}

	shortcuts := []string{
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send"),
		m.theme.ShortcutKey.Render("ctrl+p") + m.theme.ShortcutDesc.Render(" panel"),
	}
	if m.voiceAdapter != nil && m.voiceAdapter.Supported() {
		shortcuts = append(shortcuts,
			m.theme.ShortcutKey.Render("ctrl+r")+m.theme.ShortcutDesc.Render(" voice"))
	}
	shortcuts = append(shortcuts,
		m.theme.ShortcutKey.Render("ctrl+c")+m.theme.ShortcutDesc.Render(" quit"))

	return m.theme.StatusBar.Render(strings.Join(shortcuts, "  "))
}

// renderRow renders one conversation entry.
func (m Model) renderRow(r row) string {
	bubbleWidth := m.viewport.Width - 8
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	switch r.kind {
	case rowUser:
		label := m.theme.RoleLabel.Render("You")
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(r.content)
		return lipgloss.JoinVertical(lipgloss.Right, label, bubble)

	case rowAssistant:
		label := m.theme.RoleLabel.Render("Concierge")
		bubble := m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(r.content)
		return lipgloss.JoinVertical(lipgloss.Left, label, bubble)

	case rowSystem:
		return m.theme.SystemBubble.MaxWidth(bubbleWidth).Render(r.content)

	case rowAlert:
		style := m.theme.AlertStyle(r.severity)
		return style.MaxWidth(bubbleWidth).Render("⚠ " + r.content)

	case rowPending:
		return m.spinner.View() + m.theme.ThinkingText.Render(" Thinking...")
	}
	return r.content
}
