package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/siteproof/api/internal/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: `{"score": 90}`, want: `{"score": 90}`},
		{name: "fenced", in: "```json\n{\"score\": 80}\n```", want: `{"score": 80}`},
		{name: "bare fence", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding prose", in: `Sure! Here it is: {"issues": []} Hope this helps.`, want: `{"issues": []}`},
		{name: "no object", in: "no json here", wantErr: true},
		{name: "broken object", in: `{"score": }`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGenerate(t *testing.T) {
	var received GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GenerateResponse{Model: received.Model, Response: `{"score": 95}`, Done: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "qwen3:8b", httpclient.New(nil, httpclient.Options{RetryCount: 0}))
	out, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 95}`, out)
	assert.Equal(t, "qwen3:8b", received.Model)
	assert.Equal(t, "hello", received.Prompt)
	assert.False(t, received.Stream)
}

func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model loading"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "m", httpclient.New(nil, httpclient.Options{
		RetryCount:    1,
		RetryWaitTime: time.Millisecond,
	}))
	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestReviewPrompt(t *testing.T) {
	p, ok := ReviewPrompt("grammar", "en_US", "Their going home.", false)
	require.True(t, ok)
	assert.Contains(t, p, "Their going home.")
	assert.Contains(t, p, "en_US")

	deep, ok := ReviewPrompt("grammar", "en_US", "Their going home.", true)
	require.True(t, ok)
	assert.NotEqual(t, p, deep)

	_, ok = ReviewPrompt("spelling", "en", "x", false)
	assert.False(t, ok)
}
