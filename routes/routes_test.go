package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-nlpdocs/nlp"
	"go-nlpdocs/types"
)

type summaryOnly struct{}

func (summaryOnly) Name() string { return "stub" }

func (summaryOnly) Summarize(_ context.Context, text string, _ types.Options) (types.SummaryResult, error) {
	return types.SummaryResult{SummaryText: "summary: " + strings.Fields(text)[0]}, nil
}

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	adapter := nlp.NewAdapter(nlp.Backends{Summary: summaryOnly{}}, time.Second, zaptest.NewLogger(t))
	return SetupRouter(adapter, zaptest.NewLogger(t))
}

func TestSetupRouter_Root(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go-nlpdocs")
}

func TestSetupRouter_Extract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"configured task", `{"task":"summarization","text":"Traceability matters."}`, http.StatusOK},
		{"task without backend", `{"task":"ner","text":"Berlin"}`, http.StatusBadRequest},
		{"min above max", `{"task":"summarization","text":"x","options":{"max_length":10,"min_length":20}}`, http.StatusBadRequest},
		{"over input bound", `{"task":"summarization","text":"a b c","options":{"max_input_tokens":2}}`, http.StatusRequestEntityTooLarge},
	}
	r := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/nlpdocs/extract", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestSetupRouter_Compliance(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/nlpdocs/compliance", strings.NewReader(`{"text":"Electronic records must be trustworthy."}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "summary: Electronic", body["summary"])
}

func TestSetupRouter_DocumentationWithoutBackend(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/nlpdocs/documentation", strings.NewReader(`{"text":"Berlin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
