package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient("test-key", srv.URL+"/v1beta", "gemini-2.5-flash", 0)
}

func TestGenerateSendsExpectedRequest(t *testing.T) {
	var (
		gotPath   string
		gotKey    string
		gotQuery  string
		gotType   string
		gotMethod string
		gotBody   []byte
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-goog-api-key")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	_, err := client.Generate(context.Background(), "hello\nworld")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Empty(t, gotQuery, "api key must not travel in the URL")
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"contents":[{"parts":[{"text":"hello\nworld"}]}]}`, string(gotBody))
}

func TestGenerateSuccess(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantText   string
		wantReason string
	}{
		{
			name:       "first candidate first part",
			body:       `{"candidates":[{"content":{"parts":[{"text":"X"},{"text":"Y"}]},"finishReason":"STOP"},{"content":{"parts":[{"text":"Z"}]}}],"modelVersion":"gemini-2.5-flash"}`,
			wantText:   "X",
			wantReason: "STOP",
		},
		{
			name:     "no candidates",
			body:     `{}`,
			wantText: "",
		},
		{
			name:       "candidate without parts",
			body:       `{"candidates":[{"finishReason":"SAFETY"}]}`,
			wantText:   "",
			wantReason: "SAFETY",
		},
		{
			name:     "part without text",
			body:     `{"candidates":[{"content":{"parts":[{}]}}]}`,
			wantText: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			gen, err := client.Generate(context.Background(), "p")
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, gen.Text)
			assert.Equal(t, tt.wantReason, gen.FinishReason)
		})
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"message passthrough", http.StatusTooManyRequests, `{"error":{"message":"rate limited","code":429}}`, "rate limited"},
		{"empty message", http.StatusForbidden, `{"error":{"message":""}}`, DefaultUpstreamErrorMessage},
		{"no error object", http.StatusInternalServerError, `{}`, DefaultUpstreamErrorMessage},
		{"non json body", http.StatusBadGateway, `<html>bad gateway</html>`, DefaultUpstreamErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), "p")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "want *APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestGenerateInvalidSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGenerateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := NewGeminiClient("secret-key", baseURL, "gemini-2.5-flash", 0)
	_, err := client.Generate(context.Background(), "p")
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr), "want *RequestError, got %v", err)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestGenerateRequestShape(t *testing.T) {
	raw, err := json.Marshal(GenerateRequest{Contents: []Content{{Parts: []Part{{Text: "t"}}}}})
	require.NoError(t, err)
	assert.Equal(t, `{"contents":[{"parts":[{"text":"t"}]}]}`, string(raw))
}
