package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabaa/horary/chartbuilder"
)

type stubJudger struct {
	lastQuestion string
	lastSettings chartbuilder.Settings
	output       chartbuilder.Output
}

func (s *stubJudger) Judge(_ context.Context, question string, settings chartbuilder.Settings) chartbuilder.Output {
	s.lastQuestion = question
	s.lastSettings = settings
	return s.output
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(&stubJudger{}, "0")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestJudgeEndpointPassesQuestionAndSettings(t *testing.T) {
	stub := &stubJudger{output: chartbuilder.Output{Judgment: "NO", Confidence: 85}}
	srv := New(stub, "0")

	body := `{"question":"Will he marry me?","location":"Washington, DC","date":"03/02/2004","time":"22:00","ignore_radicality":true}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/judge", strings.NewReader(body))

	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Will he marry me?", stub.lastQuestion)
	assert.Equal(t, "Washington, DC", stub.lastSettings.Location)
	assert.True(t, stub.lastSettings.IgnoreRadicality)

	var out chartbuilder.Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "NO", out.Judgment)
	assert.Equal(t, 85, out.Confidence)
}

func TestJudgeEndpointRejectsBadJSON(t *testing.T) {
	srv := New(&stubJudger{}, "0")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/judge", strings.NewReader("{not json"))

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_BODY")
}

func TestJudgeEndpointRejectsGet(t *testing.T) {
	srv := New(&stubJudger{}, "0")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/judge", nil)

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	srv := New(&stubJudger{}, "0")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)

	srv.Handler().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
