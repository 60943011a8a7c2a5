// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice adapts an external speech transcriber into text input.
// Support is feature-detected at startup: when the configured transcriber
// binary is not on PATH the adapter is inert rather than an error, and the
// voice control simply does nothing.
package voice
