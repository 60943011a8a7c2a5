// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversational data structures: turns and
// the append-only transcript that serves as context for the concierge
// endpoint.
//
// The transcript is intentionally minimal. It is owned by the chat view,
// grows monotonically for the lifetime of the process, and is never
// persisted. Failed exchanges are never appended, so the history sent to
// the endpoint only ever contains answered turns.
package model
