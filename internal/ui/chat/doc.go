// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the concierge TUI.
//
// The package owns the send pipeline: user input goes out with the full
// transcript history, the reply is revealed grapheme by grapheme, and only
// answered exchanges are appended to the transcript. Push alerts, document
// uploads, and voice capture all feed into the same view.
package chat
