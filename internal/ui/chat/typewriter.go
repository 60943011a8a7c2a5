// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// punctuationDelayFactor stretches the pause after sentence-ending
// characters so the reveal reads like speech.
const punctuationDelayFactor = 4

// =============================================================================
// REVEAL ENGINE
// =============================================================================

// Reveal animates text one grapheme cluster at a time. Segmentation is by
// cluster, not rune, so emoji and combining sequences appear whole instead
// of as broken partial glyphs.
//
// Empty text is complete immediately with zero steps.
type Reveal struct {
	clusters  []string
	visible   int
	baseDelay time.Duration
}

// NewReveal prepares text for animation at the given per-step delay.
func NewReveal(text string, delay time.Duration) *Reveal {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return &Reveal{clusters: clusters, baseDelay: delay}
}

// Done reports whether every cluster has been revealed.
func (r *Reveal) Done() bool {
	return r.visible >= len(r.clusters)
}

// Step reveals the next cluster and returns the delay to wait before the
// following step. The delay is stretched after sentence-ending punctuation
// and newlines. Calling Step on a finished reveal returns zero.
func (r *Reveal) Step() time.Duration {
	if r.Done() {
		return 0
	}

	cluster := r.clusters[r.visible]
	r.visible++

	switch cluster {
	case ".", "!", "?", "\n":
		return r.baseDelay * punctuationDelayFactor
	}
	return r.baseDelay
}

// Visible returns the revealed prefix of the text.
func (r *Reveal) Visible() string {
	return strings.Join(r.clusters[:r.visible], "")
}

// Full returns the complete text.
func (r *Reveal) Full() string {
	return strings.Join(r.clusters, "")
}

// Len returns the total number of reveal steps.
func (r *Reveal) Len() int {
	return len(r.clusters)
}
