// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/concierge-tui/internal/api"
	"github.com/morganforge/concierge-tui/internal/insight"
	"github.com/morganforge/concierge-tui/internal/ui/styles"
	"github.com/morganforge/concierge-tui/internal/util"
)

// Route map canvas dimensions, in characters.
const (
	mapCols = 21
	mapRows = 7
)

// =============================================================================
// INSIGHTS PANEL
// =============================================================================

// InsightsPanel is the side panel showing the flight dashboard, the route
// map, and the company contact block. Dashboard fields stay at their
// placeholder value until an insight or alert sets them.
type InsightsPanel struct {
	width  int
	height int
	theme  *styles.Theme

	flight string
	gate   string
	mapX   int // percent, valid only when hasPlane
	mapY   int
	notice string

	hasPlane bool
	site     *api.SiteConfig
}

// NewInsightsPanel creates an empty panel.
func NewInsightsPanel(theme *styles.Theme) *InsightsPanel {
	return &InsightsPanel{
		theme:  theme,
		flight: "—",
		gate:   "—",
	}
}

// SetSize updates the panel dimensions.
func (p *InsightsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Apply updates the dashboard and map from an extracted insight.
func (p *InsightsPanel) Apply(ins insight.Insight) {
	p.flight = ins.Flight
	p.gate = ins.Gate
	p.mapX = ins.MapX
	p.mapY = ins.MapY
	p.hasPlane = true
}

// SetGate updates only the gate field, used by gate-change alerts.
func (p *InsightsPanel) SetGate(gate string) {
	p.gate = gate
}

// SetNotice sets the short status line under the dashboard, e.g. a note
// that the alert channel dropped.
func (p *InsightsPanel) SetNotice(notice string) {
	p.notice = notice
}

// SetSiteConfig fills the company contact block.
func (p *InsightsPanel) SetSiteConfig(site *api.SiteConfig) {
	p.site = site
}

// Flight returns the current flight field.
func (p *InsightsPanel) Flight() string { return p.flight }

// Gate returns the current gate field.
func (p *InsightsPanel) Gate() string { return p.gate }

// =============================================================================
// RENDERING
// =============================================================================

// View renders the panel.
func (p *InsightsPanel) View() string {
	inner := max(10, p.width-6)

	sections := []string{
		p.theme.PanelTitle.Render("Flight Dashboard"),
		p.renderDashboard(),
		"",
		p.theme.PanelTitle.Render("Route Map"),
		p.renderMap(),
	}

	if p.notice != "" {
		sections = append(sections, "", p.theme.PanelNotice.Render(util.TruncateWidth(p.notice, inner)))
	}

	if p.site != nil {
		sections = append(sections, "", p.theme.PanelTitle.Render("Contact"), p.renderCompany(inner))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return p.theme.PanelBox.Width(max(0, p.width-2)).Render(body)
}

func (p *InsightsPanel) renderDashboard() string {
	label := p.theme.PanelLabel
	value := p.theme.PanelValue

	lines := []string{
		label.Render("Next Flight  ") + value.Render(p.flight),
		label.Render("Gate         ") + p.theme.PanelAccent.Render(p.gate),
	}
	return strings.Join(lines, "\n")
}

// renderMap draws the route canvas with the plane glyph placed at the
// insight's percent coordinates. Without an insight the canvas is empty.
func (p *InsightsPanel) renderMap() string {
	planeCol, planeRow := -1, -1
	if p.hasPlane {
		planeCol = p.mapX * (mapCols - 1) / 100
		planeRow = p.mapY * (mapRows - 1) / 100
	}

	var b strings.Builder
	for row := 0; row < mapRows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < mapCols; col++ {
			if row == planeRow && col == planeCol {
				b.WriteString(p.theme.MapPlane.Render("✈"))
				continue
			}
			b.WriteString(p.theme.MapCanvas.Render("·"))
		}
	}
	return b.String()
}

func (p *InsightsPanel) renderCompany(width int) string {
	label := p.theme.PanelLabel
	value := p.theme.PanelValue
	c := p.site.Company

	var lines []string
	if c.Hotline != "" {
		lines = append(lines, label.Render("Hotline  ")+value.Render(c.Hotline))
	}
	if c.Email != "" {
		lines = append(lines, label.Render("Email    ")+value.Render(util.TruncateWidth(c.Email, width-9)))
	}
	if c.Hours.Weekday != "" {
		lines = append(lines, label.Render("Mon–Fri  ")+value.Render(c.Hours.Weekday))
	}
	if c.Hours.Weekend != "" {
		lines = append(lines, label.Render("Sat–Sun  ")+value.Render(c.Hours.Weekend))
	}
	for _, product := range c.Products {
		lines = append(lines, label.Render("• ")+util.TruncateWidth(product, width-2))
	}
	if p.site.Branding.PoweredBy != "" {
		lines = append(lines, "", p.theme.PanelNotice.Render("Powered by "+p.site.Branding.PoweredBy))
	}
	return strings.Join(lines, "\n")
}
