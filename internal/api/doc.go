// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the concierge backend: the
// conversation endpoint, the document ingestion endpoint, and the static
// site configuration document.
//
// Errors are split into two classes that callers handle differently: a
// transport failure (the request never completed: network down, timeout,
// unparseable body) and an application failure (the server answered with a
// non-success status). Both are terminal for the request; the client never
// retries.
package api
