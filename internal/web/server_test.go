package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"wsparse/internal/model"
	"wsparse/internal/warpscript"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const defaultEndpoint = "http://localhost:8080/api/v0/exec"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(warpscript.NewAnalyzer(defaultEndpoint, false), zaptest.NewLogger(t), 1024)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t)
	script := "// @endpoint=https://example.com/exec\n\"repo1\" WF.ADDREPO \"repo2\" WF.ADDREPO"

	rec := do(t, s, http.MethodPost, "/api/analyze", script)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[model.Analysis](t, rec)
	assert.Equal(t, "https://example.com/exec", got.Endpoint)
	assert.Equal(t, model.PreviewNone, got.Preview)
	assert.Equal(t, []string{"repo1", "repo2"}, got.Repositories)
	assert.Equal(t, model.DirectiveSet{model.DirectiveEndpoint: "https://example.com/exec"}, got.Directives)
	assert.Len(t, got.Statements, 6)
}

func TestAnalyzeEmptyBody(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/analyze", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Collections are encoded as empty, never null.
	body := rec.Body.String()
	assert.Contains(t, body, `"directives":{}`)
	assert.Contains(t, body, `"statements":[]`)
	assert.Contains(t, body, `"repositories":[]`)
}

func TestScriptTooLarge(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/analyze", strings.Repeat("DUP ", 1000))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "script too large", decode[map[string]string](t, rec)["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/analyze", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDoc(t *testing.T) {
	s := newTestServer(t)
	script := "'https://repo.example.com' WF.ADDREPO\n@my/macro"

	t.Run("word found", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/doc?line=2&col=3", script)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"endpoint": "http://localhost:8080/api/v0/exec",
			"macroName": "@my/macro",
			"wfRepos": ["https://repo.example.com"]
		}`, rec.Body.String())
	})

	t.Run("inside a string", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/doc?line=1&col=3", script)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing position", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/doc?line=2", script)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "line and col are required", decode[map[string]string](t, rec)["error"])
	})
}

func TestPlan(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/plan?tab=0", "// @preview image\nNEWGTS")
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decode[model.ExecutionPlan](t, rec)
	assert.Equal(t, model.ImageTab, plan.ResultTab)
	assert.Equal(t, defaultEndpoint, plan.URL)

	rec = do(t, s, http.MethodPost, "/api/plan?tab=2", "NEWGTS")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ResultsTab, decode[model.ExecutionPlan](t, rec).ResultTab)

	rec = do(t, s, http.MethodPost, "/api/plan?tab=x", "NEWGTS")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLineContext(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/line-context?line=2", "a\nb\nc")
	require.Equal(t, http.StatusOK, rec.Code)
	ctx := decode[model.LineContext](t, rec)
	assert.Equal(t, "b", ctx.Target)
	assert.Equal(t, "a", ctx.Before1)
	assert.Equal(t, "c", ctx.After1)

	rec = do(t, s, http.MethodPost, "/api/line-context", "a")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompletionKind(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/completion-kind?name=reducer.mean&tags=reducer,framework", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"name": "reducer.mean", "kind": "interface"}, decode[map[string]string](t, rec))

	rec = do(t, s, http.MethodGet, "/api/completion-kind?name=NOW", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "function", decode[map[string]string](t, rec)["kind"])

	rec = do(t, s, http.MethodGet, "/api/completion-kind", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHelpAndVersion(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/help", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "# wsparse "+model.Version)
	assert.NotContains(t, rec.Body.String(), "{{VERSION}}")

	rec = do(t, s, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Version, decode[map[string]string](t, rec)["version"])
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServeBadAddress(t *testing.T) {
	err := newTestServer(t).ListenAndServe(context.Background(), "not:an:address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving web API")
}
