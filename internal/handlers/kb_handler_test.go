package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/services/kb"
)

// mockKnowledgeService implements interfaces.KnowledgeService for testing
type mockKnowledgeService struct {
	ingestFunc func(ctx context.Context, tenantID, html string) (*interfaces.IngestResult, error)
	searchFunc func(ctx context.Context, tenantID, query string, topK int) ([]models.RankedChunk, error)
}

func (m *mockKnowledgeService) Ingest(ctx context.Context, tenantID, html string) (*interfaces.IngestResult, error) {
	if m.ingestFunc != nil {
		return m.ingestFunc(ctx, tenantID, html)
	}
	return &interfaces.IngestResult{Chunks: 1}, nil
}

func (m *mockKnowledgeService) Search(ctx context.Context, tenantID, query string, topK int) ([]models.RankedChunk, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, tenantID, query, topK)
	}
	return nil, nil
}

func newKBHandler(mock *mockKnowledgeService) *KBHandler {
	return NewKBHandler(mock, common.NewDefaultConfig(), common.GetLogger())
}

func TestIngestHandlerRequiresTenantID(t *testing.T) {
	handler := newKBHandler(&mockKnowledgeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/kb/ingest", strings.NewReader("<p>hi</p>"))
	rec := httptest.NewRecorder()

	handler.IngestHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unknown tenant", kb.ErrTenantNotFound, http.StatusNotFound},
		{"missing fixture", kb.ErrFixtureUnavailable, http.StatusNotFound},
		{"no usable text", kb.ErrNoChunks, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newKBHandler(&mockKnowledgeService{
				ingestFunc: func(ctx context.Context, tenantID, html string) (*interfaces.IngestResult, error) {
					return nil, tt.err
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/kb/ingest?tenantId=tenant_x", nil)
			rec := httptest.NewRecorder()

			handler.IngestHandler(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestIngestHandlerSuccess(t *testing.T) {
	var gotHTML string
	handler := newKBHandler(&mockKnowledgeService{
		ingestFunc: func(ctx context.Context, tenantID, html string) (*interfaces.IngestResult, error) {
			gotHTML = html
			return &interfaces.IngestResult{Chunks: 4}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/kb/ingest?tenantId=tenant_x", strings.NewReader("<p>body</p>"))
	rec := httptest.NewRecorder()

	handler.IngestHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>body</p>", gotHTML)

	var result interfaces.IngestResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 4, result.Chunks)
}

func TestSearchHandlerRequiresParams(t *testing.T) {
	handler := newKBHandler(&mockKnowledgeService{})

	tests := []struct {
		name string
		url  string
	}{
		{"missing tenantId", "/api/kb/search?q=hours"},
		{"missing query", "/api/kb/search?tenantId=tenant_x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			handler.SearchHandler(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	var gotTopK int
	handler := newKBHandler(&mockKnowledgeService{
		searchFunc: func(ctx context.Context, tenantID, query string, topK int) ([]models.RankedChunk, error) {
			gotTopK = topK
			return []models.RankedChunk{{ID: "chunk_1", Text: "open daily", Score: 2.5}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/kb/search?tenantId=tenant_x&q=hours&topK=5", nil)
	rec := httptest.NewRecorder()

	handler.SearchHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotTopK)

	var body struct {
		Results []models.RankedChunk `json:"results"`
		Count   int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "chunk_1", body.Results[0].ID)
	assert.Equal(t, 1, body.Count)
}
