// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// =============================================================================
// EVENT TYPE
// =============================================================================

// TypeAlert is the only event type rendered to the user.
const TypeAlert = "alert"

// SeverityInfo is the severity assumed when an alert carries none.
const SeverityInfo = "info"

// Event is one inbound push event.
type Event struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// =============================================================================
// LISTENER
// =============================================================================

// Listener holds a long-lived websocket subscription and forwards alert
// events to a handler. It is single-use: once stopped or closed by the
// peer it cannot be restarted.
type Listener struct {
	url     string
	handler func(Event)
	onClose func()
	log     zerolog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewListener creates a listener for the given websocket URL. handler is
// invoked from the listener's goroutine for every alert event; onClose is
// invoked once when the subscription ends for any reason other than Stop.
// Either callback may be nil.
func NewListener(url string, handler func(Event), onClose func(), log zerolog.Logger) *Listener {
	return &Listener{
		url:     url,
		handler: handler,
		onClose: onClose,
		log:     log.With().Str("component", "notify").Logger(),
	}
}

// Start dials the push channel and begins reading events. It returns once
// the connection is established; reading continues on a background
// goroutine until Stop is called or the peer closes the channel.
func (l *Listener) Start(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()

	l.log.Info().Str("url", l.url).Msg("push subscription established")
	go l.readLoop(conn)
	return nil
}

// Stop tears down the subscription. The close callback is not invoked for
// a listener stopped this way. Safe to call more than once, and before
// Start.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
}

func (l *Listener) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			l.mu.Lock()
			stopped := l.closed
			l.mu.Unlock()

			if !stopped {
				l.log.Info().Err(err).Msg("push channel closed")
				if l.onClose != nil {
					l.onClose()
				}
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			// Malformed payloads never kill the subscription.
			l.log.Warn().Err(err).Msg("dropping malformed push event")
			continue
		}

		if ev.Type != TypeAlert {
			l.log.Debug().Str("type", ev.Type).Msg("ignoring non-alert event")
			continue
		}
		if ev.Severity == "" {
			ev.Severity = SeverityInfo
		}

		if l.handler != nil {
			l.handler(ev)
		}
	}
}
