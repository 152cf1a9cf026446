// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package harvest orchestrates a harvest run: fetch the portal records,
// materialize one document per record, and write the results.
package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
)

// Client fetches dataset records from the portal harvest endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// harvestResponse is the portal's harvest payload envelope.
type harvestResponse struct {
	Data []record.Record `json:"data"`
}

// Fetch retrieves all records from the harvest endpoint. Records arrive
// as raw JSON objects; no schema is assumed.
func (c *Client) Fetch(ctx context.Context, url string) ([]record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build harvest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch records: unexpected status %s", resp.Status)
	}

	var payload harvestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode harvest response: %w", err)
	}
	return payload.Data, nil
}
