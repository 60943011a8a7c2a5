// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// =============================================================================
// SITE CONFIGURATION DOCUMENT
// =============================================================================

// SiteConfig is the static company/branding document served next to the
// backend. It is fetched once at startup and never cached or merged; a
// failed fetch leaves the UI defaults untouched.
type SiteConfig struct {
	Company  CompanyInfo  `json:"company"`
	Branding BrandingInfo `json:"branding"`
}

// CompanyInfo holds the contact block shown in the side panel.
type CompanyInfo struct {
	Hotline  string       `json:"hotline"`
	Email    string       `json:"email"`
	Address  string       `json:"address"`
	Hours    CompanyHours `json:"hours"`
	Products []string     `json:"products"`
}

// CompanyHours holds opening hours split by weekday and weekend.
type CompanyHours struct {
	Weekday string `json:"weekday"`
	Weekend string `json:"weekend"`
}

// BrandingInfo holds the powered-by attribution line.
type BrandingInfo struct {
	PoweredBy      string `json:"powered_by"`
	PoweredByPhone string `json:"powered_by_phone"`
}

// FetchSiteConfig performs the one-shot fetch of the site configuration
// document. Errors are transport failures only; the document has no
// status envelope.
func (c *Client) FetchSiteConfig(ctx context.Context) (*SiteConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/config.json", nil)
	if err != nil {
		return nil, &TransportError{Op: "config", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("site config fetch failed")
		return nil, &TransportError{Op: "config", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("code", resp.StatusCode).Msg("site config fetch rejected")
		return nil, &StatusError{Op: "config", Status: resp.Status}
	}

	var cfg SiteConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, &TransportError{Op: "config", Cause: err}
	}

	return &cfg, nil
}
