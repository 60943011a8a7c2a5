// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command concierge is the terminal client for the airline concierge
// service: a conversation view with a typewriter reveal, a flight insights
// panel, live gate alerts over a websocket, document intake, and optional
// voice input.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/morganforge/concierge-tui/internal/api"
	"github.com/morganforge/concierge-tui/internal/config"
	"github.com/morganforge/concierge-tui/internal/notify"
	"github.com/morganforge/concierge-tui/internal/ui/chat"
	"github.com/morganforge/concierge-tui/internal/ui/styles"
	"github.com/morganforge/concierge-tui/internal/voice"
)

var Version = "0.1.0"

const welcomeText = "Welcome aboard! I'm your concierge. Ask me about your flight, " +
	"your gate, or upload a travel document with /upload."

// programRef lets background goroutines inject messages into the running
// program. Guarded because the listener starts before Run() returns.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.concierge/config.toml)")
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("concierge " + Version)
		return
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log.Info().Str("version", Version).Str("server", cfg.Server.BaseURL).Msg("starting concierge")

	client := api.NewClient(&api.ClientConfig{
		BaseURL:       cfg.Server.BaseURL,
		Timeout:       time.Duration(cfg.Server.ChatTimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.Server.UploadTimeoutSecs) * time.Second,
	}, log)

	adapter := voice.Detect(cfg.Voice.Transcriber, log)

	m := chat.New(chat.Options{
		Theme:       styles.NewTheme(),
		Client:      client,
		Voice:       adapter,
		RevealDelay: time.Duration(cfg.UI.RevealDelayMS) * time.Millisecond,
		ShowPanel:   cfg.UI.ShowPanel,
		Welcome:     welcomeText,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	listener := startListener(cfg, log)
	defer listener.Stop()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running concierge: %v\n", err)
		os.Exit(1)
	}
}

// startListener subscribes to the alert push channel. A failed dial is
// logged but not fatal; the client works without live alerts, and the
// listener never reconnects on its own.
func startListener(cfg *config.Config, log zerolog.Logger) *notify.Listener {
	listener := notify.NewListener(
		cfg.Server.WebsocketURL,
		func(ev notify.Event) {
			sendToProgram(chat.AlertMsg{Severity: ev.Severity, Message: ev.Message})
		},
		func() {
			sendToProgram(chat.AlertChannelClosedMsg{})
		},
		log,
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := listener.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("alert channel unavailable")
			sendToProgram(chat.AlertChannelClosedMsg{})
		}
	}()
	return listener
}

// openLogger builds the file-backed logger. The TUI owns the terminal, so
// log output never goes to stdout or stderr.
func openLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	path := cfg.Log.Path
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return zerolog.Nop(), nil, err
		}
		path = filepath.Join(dir, "concierge.log")
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	level := parseLevel(cfg.Log.Level)
	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }, nil
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
