// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/concierge-tui/internal/api"
	"github.com/morganforge/concierge-tui/internal/insight"
	"github.com/morganforge/concierge-tui/internal/model"
	"github.com/morganforge/concierge-tui/internal/ui/components"
	"github.com/morganforge/concierge-tui/internal/ui/styles"
	"github.com/morganforge/concierge-tui/internal/voice"
)

// Fixed failure messages. An application failure means the server answered
// and declined; a transport failure means it never answered. Neither
// mutates the transcript.
const (
	applicationFailureText = "I apologize, we are experiencing a technical difficulty. Please try again in a moment."
	transportFailureText   = "Connection lost. Please check your network and try again."
	uploadFailureText      = "Failed to process document."

	defaultPlaceholder   = "Ask the concierge..."
	listeningPlaceholder = "Listening..."
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady State = iota // Ready for input
	StateBusy               // A request is outstanding
)

// =============================================================================
// ROWS
// =============================================================================

// rowKind classifies a transcript view row.
type rowKind int

const (
	rowUser rowKind = iota
	rowAssistant
	rowSystem
	rowAlert
	rowPending
)

// row is one rendered entry in the conversation view. Rows are display
// state only; the conversational record lives in the transcript.
type row struct {
	kind      rowKind
	content   string
	severity  string // alert rows only
	id        string // pending rows: the request they belong to
	revealing bool   // true while the typewriter is mid-reveal
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation record
	transcript *model.Transcript

	// Outstanding request
	pendingID   string
	pendingTurn model.Turn

	// Reveal animation
	reveal      *Reveal
	revealRow   int
	revealDelay time.Duration

	// Backend
	client *api.Client

	// Voice input
	voiceAdapter voice.Adapter
	capturing    bool

	// Display rows
	rows []row

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	header    *components.Header
	panel     *components.InsightsPanel
	showPanel bool

	// Status
	statusMsg string
}

// Options configures a new chat model.
type Options struct {
	Theme       *styles.Theme
	Client      *api.Client
	Voice       voice.Adapter
	RevealDelay time.Duration
	ShowPanel   bool
	Welcome     string
}

// New creates a chat model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = defaultPlaceholder
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Theme.Spinner

	vp := viewport.New(0, 0)

	if opts.RevealDelay <= 0 {
		opts.RevealDelay = 15 * time.Millisecond
	}

	m := Model{
		state:        StateReady,
		theme:        opts.Theme,
		transcript:   model.NewTranscript(),
		client:       opts.Client,
		voiceAdapter: opts.Voice,
		revealDelay:  opts.RevealDelay,
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		header:       components.NewHeader(opts.Theme),
		panel:        components.NewInsightsPanel(opts.Theme),
		showPanel:    opts.ShowPanel,
	}

	if opts.Welcome != "" {
		m.rows = append(m.rows, row{kind: rowSystem, content: opts.Welcome})
	}
	return m
}

// Transcript exposes the conversational record, mainly for tests.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		fetchSiteConfigCmd(m.client),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case RevealTickMsg:
		return m.handleRevealTick()

	case AlertMsg:
		return m.handleAlert(msg)

	case AlertChannelClosedMsg:
		m.panel.SetNotice("Live alerts disconnected")
		return m, nil

	case UploadResultMsg:
		return m.handleUploadResult(msg)

	case VoiceResultMsg:
		return m.handleVoiceResult(msg)

	case SiteConfigMsg:
		if msg.Err == nil && msg.Config != nil {
			m.panel.SetSiteConfig(msg.Config)
			m.header.Subtitle = msg.Config.Branding.PoweredBy
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == StateBusy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.updateViewport() // the pending row embeds the spinner frame
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		return m.submitInput()

	case "ctrl+p":
		m.showPanel = !m.showPanel
		return m.relayout()

	case "ctrl+r":
		return m.startVoiceCapture()

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

// submitInput dispatches the typed message. Empty input is a no-op; a
// second send while one is outstanding is refused, keeping the input
// intact.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	if m.state == StateBusy {
		m.statusMsg = "Still working on the previous request"
		return m, nil
	}

	m.statusMsg = ""
	m.finishRevealNow()

	userTurn := model.NewUserTurn(text)
	m.rows = append(m.rows, row{kind: rowUser, content: text})
	m.input.Reset()

	m.pendingTurn = userTurn
	m.pendingID = userTurn.ID
	m.rows = append(m.rows, row{kind: rowPending, id: m.pendingID})
	m.state = StateBusy
	m.updateViewport()

	// History is snapshotted before the command runs in a goroutine.
	history := m.transcript.History()
	return m, tea.Batch(sendCmd(m.client, userTurn, history), m.spinner.Tick)
}

func (m Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	if msg.RequestID != m.pendingID {
		return m, nil // stale result, its pending row is already gone
	}

	m.removePending(msg.RequestID)
	m.pendingID = ""
	m.state = StateReady

	if msg.Err != nil {
		text := applicationFailureText
		if api.IsTransport(msg.Err) {
			text = transportFailureText
		}
		return m.startReveal(rowSystem, text)
	}

	m.transcript.AppendExchange(m.pendingTurn, model.NewAssistantTurn(msg.Reply))
	if ins, ok := insight.Extract(msg.Reply); ok {
		m.panel.Apply(ins)
		m.panel.SetNotice("Flight details updated")
	}
	return m.startReveal(rowAssistant, msg.Reply)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	cmd, rest, _ := strings.Cut(text, " ")
	switch cmd {
	case "/panel":
		m.input.Reset()
		m.showPanel = !m.showPanel
		return m.relayout()

	case "/upload":
		return m.submitUpload(strings.TrimSpace(rest))

	case "/voice":
		m.input.Reset()
		return m.startVoiceCapture()

	case "/quit":
		return m, tea.Quit
	}

	m.statusMsg = "Unknown command: " + cmd
	return m, nil
}

// =============================================================================
// DOCUMENT INTAKE
// =============================================================================

// submitUpload runs the ingestion pipeline. It mirrors the send pipeline's
// rendering but never touches the transcript: uploads are a side channel,
// not conversational turns.
func (m Model) submitUpload(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		m.statusMsg = "Usage: /upload <file>"
		return m, nil
	}
	if m.state == StateBusy {
		m.statusMsg = "Still working on the previous request"
		return m, nil
	}

	m.statusMsg = ""
	m.finishRevealNow()

	m.rows = append(m.rows, row{kind: rowUser, content: "📎 " + filepath.Base(path)})
	m.input.Reset()

	m.pendingID = "upload_" + filepath.Base(path)
	m.rows = append(m.rows, row{kind: rowPending, id: m.pendingID})
	m.state = StateBusy
	m.updateViewport()

	return m, tea.Batch(uploadCmd(m.client, path, m.pendingID), m.spinner.Tick)
}

func (m Model) handleUploadResult(msg UploadResultMsg) (tea.Model, tea.Cmd) {
	if msg.RequestID != m.pendingID {
		return m, nil
	}

	m.removePending(msg.RequestID)
	m.pendingID = ""
	m.state = StateReady

	if msg.Err != nil {
		return m.startReveal(rowSystem, uploadFailureText)
	}
	return m.startReveal(rowAssistant, formatDocument(msg.Doc))
}

// formatDocument renders the classification line plus extracted fields.
// Keys are sorted so the output is stable.
func formatDocument(doc *api.ExtractedDocument) string {
	var b strings.Builder
	b.WriteString(doc.Message)

	keys := make([]string, 0, len(doc.Fields))
	for k := range doc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(strings.ReplaceAll(k, "_", " "))
		b.WriteString(": ")
		b.WriteString(doc.Fields[k])
	}
	return b.String()
}

// =============================================================================
// ALERTS
// =============================================================================

// handleAlert renders a push alert instantly, bypassing the typewriter,
// and syncs the gate field when the text names one.
func (m Model) handleAlert(msg AlertMsg) (tea.Model, tea.Cmd) {
	m.rows = append(m.rows, row{kind: rowAlert, content: msg.Message, severity: msg.Severity})
	if gate := insight.MatchGate(msg.Message); gate != "" {
		m.panel.SetGate(gate)
	}
	m.updateViewport()
	return m, nil
}

// =============================================================================
// VOICE INPUT
// =============================================================================

func (m Model) startVoiceCapture() (tea.Model, tea.Cmd) {
	if m.voiceAdapter == nil || !m.voiceAdapter.Supported() {
		return m, nil // control is inert without a transcriber
	}
	if m.capturing || m.state == StateBusy {
		return m, nil
	}

	m.capturing = true
	m.input.Placeholder = listeningPlaceholder
	return m, voiceCmd(m.voiceAdapter)
}

func (m Model) handleVoiceResult(msg VoiceResultMsg) (tea.Model, tea.Cmd) {
	m.capturing = false
	m.input.Placeholder = defaultPlaceholder

	if msg.Err != nil {
		return m, nil // idle state restored, nothing to send
	}

	// Recognized speech takes the same path as typed input.
	m.input.SetValue(msg.Text)
	return m.submitInput()
}

// =============================================================================
// REVEAL ANIMATION
// =============================================================================

// startReveal appends a row and begins animating its text. Only one reveal
// runs at a time; a still-running one is completed instantly first.
func (m Model) startReveal(kind rowKind, text string) (tea.Model, tea.Cmd) {
	m.finishRevealNow()

	m.rows = append(m.rows, row{kind: kind, revealing: true})
	m.reveal = NewReveal(text, m.revealDelay)
	m.revealRow = len(m.rows) - 1

	if m.reveal.Done() { // empty text completes with zero steps
		m.rows[m.revealRow].revealing = false
		m.reveal = nil
		m.updateViewport()
		return m, nil
	}

	m.updateViewport()
	return m, revealTickCmd(m.revealDelay)
}

func (m Model) handleRevealTick() (tea.Model, tea.Cmd) {
	if m.reveal == nil {
		return m, nil
	}

	delay := m.reveal.Step()
	m.rows[m.revealRow].content = m.reveal.Visible()
	m.updateViewport()

	if m.reveal.Done() {
		m.rows[m.revealRow].revealing = false
		m.reveal = nil
		return m, nil
	}
	return m, revealTickCmd(delay)
}

// finishRevealNow completes an in-flight reveal instantly.
func (m *Model) finishRevealNow() {
	if m.reveal == nil {
		return
	}
	m.rows[m.revealRow].content = m.reveal.Full()
	m.rows[m.revealRow].revealing = false
	m.reveal = nil
}

// =============================================================================
// HELPERS
// =============================================================================

// removePending drops the pending indicator for a request. Each request
// has at most one, so this runs exactly once per outcome.
func (m *Model) removePending(id string) {
	for i, r := range m.rows {
		if r.kind == rowPending && r.id == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return
		}
	}
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	return m.relayout()
}
