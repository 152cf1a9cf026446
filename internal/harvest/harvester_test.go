// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package harvest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/assets"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/codelist"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/document"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/vocab"
)

const harvestPayload = `{
  "data": [
    {
      "files": [{"id": "rec-a"}],
      "title": "Salmon Counts",
      "edhProfile": {"datasetStatus": "Ongoing"}
    },
    {
      "files": [{"id": "rec-b"}],
      "title": "Habitat Survey"
    }
  ]
}`

func newTestHarvester(t *testing.T, endpoint string) *Harvester {
	t.Helper()

	m, err := mapping.Load(assets.FS(), assets.MappingPath)
	require.NoError(t, err)
	v, err := vocab.Load(assets.FS(), assets.VocabularyPath, zerolog.Nop())
	require.NoError(t, err)
	reg, err := codelist.Load(assets.FS(), assets.RegisterPath)
	require.NoError(t, err)
	templates, err := assets.Templates()
	require.NoError(t, err)
	strategy, err := document.Get(document.DefaultStrategy)
	require.NoError(t, err)

	return &Harvester{
		Client:    NewClient(5 * time.Second),
		Endpoint:  endpoint,
		Strategy:  strategy,
		Mapping:   m,
		Vocab:     v,
		Registry:  reg,
		Templates: templates,
		OutputDir: t.TempDir(),
		Log:       zerolog.Nop(),
	}
}

func TestHarvester_Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(harvestPayload))
	}))
	defer srv.Close()

	h := newTestHarvester(t, srv.URL)
	summary, err := h.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Written)
	assert.Equal(t, 0, summary.Failed)

	for _, id := range []string{"rec-a", "rec-b"} {
		data, err := os.ReadFile(filepath.Join(h.OutputDir, id+".xml")) //nolint:gosec // test path
		require.NoError(t, err)
		assert.Contains(t, string(data), "<gmd:MD_Metadata")
		assert.Contains(t, string(data), id)
	}
}

func TestHarvester_Run_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := newTestHarvester(t, srv.URL)
	_, err := h.Run(context.Background())
	assert.Error(t, err)
}

func TestHarvester_Run_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(harvestPayload))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestHarvester(t, srv.URL)
	_, err := h.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Fetch_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	records, err := NewClient(time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordID(t *testing.T) {
	withID := record.Record{
		"files": []any{map[string]any{"id": "abc-123"}},
	}
	assert.Equal(t, "abc-123", RecordID(withID))

	// No file id: a fresh UUID is generated per call.
	generated := RecordID(record.Record{})
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}
