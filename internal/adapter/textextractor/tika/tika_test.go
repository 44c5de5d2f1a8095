package tika_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepforge/ai-interview-coach/internal/adapter/textextractor/tika"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestClient_ExtractPath(t *testing.T) {
	path := writeTempFile(t, "%PDF-1.5 raw bytes")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tika", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "%PDF-1.5 raw bytes", string(body))

		_, _ = w.Write([]byte("Senior Go engineer with 7 years of experience.\x00"))
	}))
	defer ts.Close()

	c := tika.New(ts.URL)
	text, err := c.ExtractPath(context.Background(), "resume.pdf", path)
	require.NoError(t, err)
	// extractor output is sanitized before it is returned
	assert.Equal(t, "Senior Go engineer with 7 years of experience.", text)
}

func TestClient_ExtractPath_ServerError(t *testing.T) {
	path := writeTempFile(t, "content")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	c := tika.New(ts.URL)
	_, err := c.ExtractPath(context.Background(), "resume.pdf", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestClient_Healthz(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tika", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := tika.New(ts.URL)
	require.NoError(t, c.Healthz(context.Background()))

	down := tika.New("http://127.0.0.1:1")
	require.Error(t, down.Healthz(context.Background()))
}
