// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package harvest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/codelist"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/document"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/vocab"
)

// RecordID extracts the record identifier from the first attached file,
// falling back to a fresh UUID when the record carries none.
func RecordID(r record.Record) string {
	if id := r.String("files.0.id"); id != "" {
		return id
	}
	return uuid.NewString()
}

// Harvester runs one harvest: fetch, build, write. The reference data is
// loaded once by the caller and shared read-only across records.
type Harvester struct {
	Client   *Client
	Endpoint string

	Strategy  document.Strategy
	Mapping   *mapping.Mapping
	Vocab     *vocab.Table
	Registry  *codelist.Registry
	Templates fs.FS

	OutputDir string
	Log       zerolog.Logger
}

// Summary reports the outcome of a harvest run.
type Summary struct {
	Total   int
	Written int
	Failed  int
}

// Run fetches all records and writes one document per record. A record
// whose build fails is logged and skipped; only fetch or output-directory
// failures abort the run.
func (h *Harvester) Run(ctx context.Context) (Summary, error) {
	records, err := h.Client.Fetch(ctx, h.Endpoint)
	if err != nil {
		return Summary{}, err
	}
	h.Log.Info().Int("records", len(records)).Str("endpoint", h.Endpoint).Msg("fetched records")

	if err := os.MkdirAll(h.OutputDir, 0o750); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	summary := Summary{Total: len(records)}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		id := RecordID(rec)
		path, err := h.processRecord(rec, id)
		if err != nil {
			summary.Failed++
			h.Log.Error().Err(err).Str("record", id).Msg("record skipped")
			continue
		}
		summary.Written++
		h.Log.Info().Str("record", id).Str("file", path).Msg("document written")
	}
	return summary, nil
}

func (h *Harvester) processRecord(rec record.Record, id string) (string, error) {
	doc, err := h.Strategy.Build(document.BuildParams{
		Record:    rec,
		RecordID:  id,
		Mapping:   h.Mapping,
		Vocab:     h.Vocab,
		Registry:  h.Registry,
		Templates: h.Templates,
		Log:       h.Log,
	})
	if err != nil {
		return "", err
	}

	doc.Indent(2)
	path := filepath.Join(h.OutputDir, id+".xml")
	if err := doc.WriteToFile(path); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}
