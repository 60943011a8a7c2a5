// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package insight derives dashboard signals from assistant replies and
// alert messages. It is deliberately narrow: a fixed marker set keyed to a
// single active flight, not a general text classifier.
package insight
