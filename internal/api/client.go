// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/morganforge/concierge-tui/internal/model"
)

// StatusSuccess is the status string the backend uses for a completed
// request; anything else is an application failure.
const StatusSuccess = "success"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL of the concierge backend (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for chat and config requests (default: 30s)
	Timeout time.Duration

	// UploadTimeout for document ingestion, which runs OCR server-side
	// and can take longer (default: 60s)
	UploadTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       30 * time.Second,
		UploadTimeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the concierge backend.
// It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	uploadHTTP *http.Client
	log        zerolog.Logger
}

// NewClient creates a backend client with the given configuration,
// filling in defaults for any zero values.
func NewClient(config *ClientConfig, log zerolog.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 60 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		uploadHTTP: &http.Client{Timeout: config.UploadTimeout},
		log:        log.With().Str("component", "api").Logger(),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CONVERSATION ENDPOINT
// =============================================================================

// chatRequest is the wire format of the conversation endpoint.
type chatRequest struct {
	Message string     `json:"message"`
	History []wireTurn `json:"history"`
}

// wireTurn is the role/content pair the endpoint expects for history.
type wireTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the conversation endpoint's reply envelope.
type chatResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

// SendMessage posts the user's message plus the full transcript history and
// returns the assistant's reply text.
//
// A *TransportError means the request never completed; a *StatusError means
// the server answered with a non-success status. Neither is retried.
func (c *Client) SendMessage(ctx context.Context, message string, history []model.Turn) (string, error) {
	wire := make([]wireTurn, 0, len(history))
	for _, turn := range history {
		wire = append(wire, wireTurn{Role: turn.Role.String(), Content: turn.Content})
	}

	body, err := json.Marshal(chatRequest{Message: message, History: wire})
	if err != nil {
		return "", &TransportError{Op: "chat", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Op: "chat", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("chat request failed")
		return "", &TransportError{Op: "chat", Cause: err}
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.log.Warn().Err(err).Msg("chat response body unparseable")
		return "", &TransportError{Op: "chat", Cause: err}
	}

	if parsed.Status != StatusSuccess {
		c.log.Warn().Str("status", parsed.Status).Msg("chat request rejected by server")
		return "", &StatusError{Op: "chat", Status: parsed.Status}
	}

	return parsed.Response, nil
}

// =============================================================================
// UPLOAD ENDPOINT
// =============================================================================

// ExtractedDocument is the result of a successful document ingestion.
type ExtractedDocument struct {
	// Message is the server's classification line, e.g. "Passport Detected".
	Message string

	// Fields are the extracted key/value pairs, e.g. name and passport
	// number. Keys are the wire keys; order is not significant.
	Fields map[string]string
}

// uploadResponse is the ingestion endpoint's reply envelope.
type uploadResponse struct {
	Status        string            `json:"status"`
	Message       string            `json:"message"`
	ExtractedData map[string]string `json:"extracted_data"`
}

// UploadDocument sends the file at path as a multipart upload and returns
// the extracted document. The file field is named "file", matching the
// ingestion endpoint's contract.
func (c *Client) UploadDocument(ctx context.Context, path string) (*ExtractedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TransportError{Op: "upload", Cause: err}
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, &TransportError{Op: "upload", Cause: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, &TransportError{Op: "upload", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &TransportError{Op: "upload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/upload", &buf)
	if err != nil {
		return nil, &TransportError{Op: "upload", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.uploadHTTP.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("upload request failed")
		return nil, &TransportError{Op: "upload", Cause: err}
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &TransportError{Op: "upload", Cause: err}
	}

	if parsed.Status != StatusSuccess {
		return nil, &StatusError{Op: "upload", Status: parsed.Status}
	}

	return &ExtractedDocument{
		Message: parsed.Message,
		Fields:  parsed.ExtractedData,
	}, nil
}
