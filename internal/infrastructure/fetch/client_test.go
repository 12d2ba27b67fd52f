package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"StandingsScraper/internal/config"
)

func testConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:   2 * time.Second,
		UserAgent: "standings-test/1.0",
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<table></table>"))
	}))
	defer server.Close()

	body, err := NewClient(testConfig(), nil).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, "<table></table>", string(body))
	require.Equal(t, "standings-test/1.0", gotAgent)
}

func TestFetchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(), nil).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusForbidden, fetchErr.Status)
	require.Equal(t, server.URL, fetchErr.URL)
	require.ErrorIs(t, err, ErrStatus)
}

func TestFetchNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(testConfig(), nil).Fetch(context.Background(), url)
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	require.Zero(t, fetchErr.Status)
}

func TestFetchHonorsPoliteDelay(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.PoliteDelay = 150 * time.Millisecond
	client := NewClient(cfg, nil)

	started := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, time.Since(started), 300*time.Millisecond)
}

func TestFetchThroughMockTransport(t *testing.T) {
	t.Parallel()

	const page = "https://www.transfermarkt.fr/ligue-1/formtabelle/wettbewerb/FR1?saison_id=2025&min=1&max=1"
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, page, httpmock.NewStringResponder(http.StatusOK, "<table class=\"items\"></table>"))

	client := NewClient(testConfig(), nil)
	client.http.SetTransport(mock)

	body, err := client.Fetch(context.Background(), page)
	require.NoError(t, err)
	require.Contains(t, string(body), "items")
	require.Equal(t, 1, mock.GetTotalCallCount())

	_, err = client.Fetch(context.Background(), "https://www.transfermarkt.fr/unknown")
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	require.Zero(t, fetchErr.Status)
}
