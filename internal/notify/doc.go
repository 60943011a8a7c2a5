// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify maintains the push subscription to the concierge backend.
// Alerts arrive over a websocket as JSON events; only events of type
// "alert" are delivered to the handler, everything else is dropped.
//
// The listener does not reconnect. When the channel closes it stops
// silently and invokes the close callback, leaving the restart decision to
// the caller.
package notify
