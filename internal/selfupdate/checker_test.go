package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/quizgen/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0","html_url":"https://example.com/v1.2.0"}`)

	tests := []struct {
		name    string
		current string
		want    bool
	}{
		{"older", "v1.1.9", true},
		{"same", "v1.2.0", false},
		{"newer", "v1.3.0", false},
		{"no v prefix", "1.0.0", true},
		{"dev build", "(devel)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(WithBaseURL(server.URL), WithTimeout(5*time.Second))
			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, "v1.2.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.2.0", res.ReleaseURL)
		})
	}
}

func TestCheck_HTTPError(t *testing.T) {
	server := releaseServer(t, http.StatusForbidden, `{"message":"API rate limit exceeded"}`)

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestCheck_BadTag(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{"tag_name":"nightly"}`)

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
}

func TestCheck_MissingTag(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{}`)

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
}
