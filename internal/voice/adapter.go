// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnsupported is returned by Capture on platforms without a transcriber.
var ErrUnsupported = errors.New("voice: no transcriber available")

// ErrNoSpeech is returned when a capture session ends without recognizing
// any words.
var ErrNoSpeech = errors.New("voice: no speech recognized")

// =============================================================================
// ADAPTER
// =============================================================================

// Adapter captures one utterance of speech as text.
type Adapter interface {
	// Supported reports whether capture can work on this system.
	Supported() bool

	// Capture records until the transcriber finishes and returns the
	// recognized text. It blocks for the whole session; cancel ctx to
	// abort early.
	Capture(ctx context.Context) (string, error)
}

// Detect probes for the named transcriber binary and returns a live
// adapter when it is on PATH, or an inert one otherwise.
func Detect(transcriber string, log zerolog.Logger) Adapter {
	log = log.With().Str("component", "voice").Logger()

	if transcriber == "" {
		log.Debug().Msg("no transcriber configured")
		return inertAdapter{}
	}
	path, err := exec.LookPath(transcriber)
	if err != nil {
		log.Debug().Str("binary", transcriber).Msg("transcriber not found, voice input disabled")
		return inertAdapter{}
	}

	log.Info().Str("path", path).Msg("voice input available")
	return &execAdapter{path: path, log: log}
}

// =============================================================================
// LIVE ADAPTER
// =============================================================================

// execAdapter shells out to a transcriber that records from the default
// microphone and prints the recognized text on stdout.
type execAdapter struct {
	path string
	log  zerolog.Logger
}

func (a *execAdapter) Supported() bool { return true }

func (a *execAdapter) Capture(ctx context.Context) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, a.path)
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		a.log.Warn().Err(err).Msg("transcriber session failed")
		return "", err
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// =============================================================================
// INERT ADAPTER
// =============================================================================

type inertAdapter struct{}

func (inertAdapter) Supported() bool { return false }

func (inertAdapter) Capture(context.Context) (string, error) {
	return "", ErrUnsupported
}
