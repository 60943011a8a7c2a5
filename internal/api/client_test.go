// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/morganforge/concierge-tui/internal/model"
	"github.com/rs/zerolog"
)

func testClient(url string) *Client {
	return NewClient(&ClientConfig{BaseURL: url}, zerolog.Nop())
}

// =============================================================================
// CONVERSATION ENDPOINT TESTS
// =============================================================================

func TestSendMessage_Success(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("path = %q, want /chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(chatResponse{Status: "success", Response: "Gate B5."})
	}))
	defer srv.Close()

	history := []model.Turn{
		model.NewUserTurn("hi"),
		model.NewAssistantTurn("hello"),
	}

	reply, err := testClient(srv.URL).SendMessage(context.Background(), "where?", history)
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply != "Gate B5." {
		t.Errorf("reply = %q, want %q", reply, "Gate B5.")
	}

	if gotReq.Message != "where?" {
		t.Errorf("request message = %q, want %q", gotReq.Message, "where?")
	}
	if len(gotReq.History) != 2 {
		t.Fatalf("request history length = %d, want 2", len(gotReq.History))
	}
	if gotReq.History[0].Role != "user" || gotReq.History[1].Role != "assistant" {
		t.Errorf("history roles = %q, %q, want user, assistant",
			gotReq.History[0].Role, gotReq.History[1].Role)
	}
}

func TestSendMessage_ApplicationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Status: "error"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SendMessage(context.Background(), "hi", nil)
	if err == nil {
		t.Fatal("expected an error for non-success status")
	}
	if !IsApplication(err) {
		t.Errorf("IsApplication(%v) = false, want true", err)
	}
	if IsTransport(err) {
		t.Errorf("IsTransport(%v) = true, want false", err)
	}
}

func TestSendMessage_TransportFailure(t *testing.T) {
	tests := []struct {
		name   string
		client *Client
	}{
		{
			name:   "unreachable host",
			client: testClient("http://127.0.0.1:1"),
		},
		{
			name: "malformed body",
			client: func() *Client {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte("not json"))
				}))
				t.Cleanup(srv.Close)
				return testClient(srv.URL)
			}(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.client.SendMessage(context.Background(), "hi", nil)
			if err == nil {
				t.Fatal("expected a transport error")
			}
			if !IsTransport(err) {
				t.Errorf("IsTransport(%v) = false, want true", err)
			}
		})
	}
}

// =============================================================================
// UPLOAD ENDPOINT TESTS
// =============================================================================

func TestUploadDocument_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("path = %q, want /upload", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "passport.png" {
			t.Errorf("filename = %q, want passport.png", header.Filename)
		}
		json.NewEncoder(w).Encode(uploadResponse{
			Status:  "success",
			Message: "Passport Detected",
			ExtractedData: map[string]string{
				"name":            "John Doe",
				"passport_number": "X1234567",
			},
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "passport.png")
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := testClient(srv.URL).UploadDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}
	if doc.Message != "Passport Detected" {
		t.Errorf("Message = %q, want Passport Detected", doc.Message)
	}
	if doc.Fields["name"] != "John Doe" {
		t.Errorf("name field = %q, want John Doe", doc.Fields["name"])
	}
	if doc.Fields["passport_number"] != "X1234567" {
		t.Errorf("passport field = %q, want X1234567", doc.Fields["passport_number"])
	}
}

func TestUploadDocument_MissingFile(t *testing.T) {
	_, err := testClient("http://127.0.0.1:1").UploadDocument(context.Background(), "/nonexistent/file.png")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !IsTransport(err) {
		t.Errorf("IsTransport(%v) = false, want true", err)
	}
}

// =============================================================================
// SITE CONFIG TESTS
// =============================================================================

func TestFetchSiteConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config.json" {
			t.Errorf("path = %q, want /config.json", r.URL.Path)
		}
		json.NewEncoder(w).Encode(SiteConfig{
			Company: CompanyInfo{
				Hotline: "+1 800 555 0100",
				Email:   "concierge@example.com",
				Address: "1 Terminal Way",
				Hours:   CompanyHours{Weekday: "08:00-20:00", Weekend: "10:00-16:00"},
				Products: []string{
					"Lounge access",
					"Priority boarding",
				},
			},
			Branding: BrandingInfo{PoweredBy: "Morgan Forge", PoweredByPhone: "+1 800 555 0199"},
		})
	}))
	defer srv.Close()

	cfg, err := testClient(srv.URL).FetchSiteConfig(context.Background())
	if err != nil {
		t.Fatalf("FetchSiteConfig() error = %v", err)
	}
	if cfg.Company.Hotline != "+1 800 555 0100" {
		t.Errorf("Hotline = %q", cfg.Company.Hotline)
	}
	if len(cfg.Company.Products) != 2 {
		t.Errorf("Products length = %d, want 2", len(cfg.Company.Products))
	}
	if cfg.Branding.PoweredBy != "Morgan Forge" {
		t.Errorf("PoweredBy = %q", cfg.Branding.PoweredBy)
	}
}

func TestFetchSiteConfig_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSiteConfig(context.Background())
	if err == nil {
		t.Fatal("expected an error for 404")
	}
}
