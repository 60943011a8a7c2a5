// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package insight

import (
	"regexp"
	"strings"
)

// =============================================================================
// INSIGHT TYPE
// =============================================================================

// Default values applied when a flight marker is detected. The concierge
// tracks a single active flight, so placement and gate are canned rather
// than derived.
const (
	DefaultFlight = "AB123"
	DefaultGate   = "B5"

	// Route indicator target, as percentages of the map's width and height.
	MapPositionX = 70
	MapPositionY = 30
)

// Insight is a derived dashboard update: the flight to show, its gate, and
// where to place the route indicator on the map.
type Insight struct {
	Flight string
	Gate   string
	MapX   int // percent of map width
	MapY   int // percent of map height
}

// =============================================================================
// EXTRACTION
// =============================================================================

var (
	// flightCodePattern matches airline-style flight codes such as AB123.
	flightCodePattern = regexp.MustCompile(`\b([A-Z]{2}\d{3,4})\b`)

	// gateTokenPattern matches a gate token such as B5 or C12.
	gateTokenPattern = regexp.MustCompile(`\b([A-Z][0-9]+)\b`)
)

// Extract inspects reply text for flight markers and returns the resulting
// dashboard update. It returns ok=false when no marker is present, in which
// case the dashboard must stay untouched.
//
// Markers are a fixed set: the word "flight", the plane icon, or a flight
// code. A matched code overrides the default flight field.
func Extract(text string) (Insight, bool) {
	code := flightCodePattern.FindString(text)

	lower := strings.ToLower(text)
	if code == "" && !strings.Contains(lower, "flight") && !strings.Contains(text, "✈️") {
		return Insight{}, false
	}

	ins := Insight{
		Flight: DefaultFlight,
		Gate:   DefaultGate,
		MapX:   MapPositionX,
		MapY:   MapPositionY,
	}
	if code != "" {
		ins.Flight = code
	}
	return ins, true
}

// MatchGate extracts a gate token from alert text, e.g. "Gate changed to
// C9" yields "C9". The message must mention "Gate" for a token to count;
// it returns the empty string when no gate is mentioned.
func MatchGate(message string) string {
	if !strings.Contains(message, "Gate") {
		return ""
	}
	m := gateTokenPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return m[1]
}
