package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "already normalized", input: "https://example.com/story", want: "https://example.com/story"},
		{name: "scheme added", input: "example.com/story", want: "https://example.com/story"},
		{name: "http kept", input: "http://example.com", want: "http://example.com"},
		{name: "uppercase scheme kept", input: "HTTPS://example.com", want: "HTTPS://example.com"},
		{name: "whitespace trimmed", input: "  https://example.com  ", want: "https://example.com"},
		{name: "empty input", input: "", wantErr: "Please paste a URL."},
		{name: "blank input", input: "   ", wantErr: "Please paste a URL."},
		{name: "missing host", input: "https:///path", wantErr: "Please use a valid URL (http/https)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				var inputErr *InputError
				require.ErrorAs(t, err, &inputErr)
				require.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		host string
		want strategy
	}{
		{host: "www.youtube.com", want: videoStrategy{}},
		{host: "youtu.be", want: videoStrategy{}},
		{host: "m.youtube.com", want: videoStrategy{}},
		{host: "twitter.com", want: socialStrategy{}},
		{host: "x.com", want: socialStrategy{}},
		{host: "www.msn.com", want: aggregatorStrategy{}},
		{host: "example.com", want: genericStrategy{}},
		{host: "www.reuters.com", want: genericStrategy{}},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			require.IsType(t, tt.want, strategyFor(tt.host))
		})
	}
}

func TestFetchRetriesTransientStatuses(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	sc := New(Config{})
	body, status, err := sc.fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", string(body))
	require.EqualValues(t, 3, calls.Load())
}

func TestFetchSurfacesFinalRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sc := New(Config{})
	_, status, err := sc.fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, status)
	require.EqualValues(t, FETCH_MAX_ATTEMPTS, calls.Load())
}

func TestFetchDoesNotRetryHardFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sc := New(Config{})
	_, status, err := sc.fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, status)
	require.EqualValues(t, 1, calls.Load())
}

func TestFetchSendsBrowserUserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	sc := New(Config{})
	_, _, err := sc.fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, BROWSER_USER_AGENT, agent)
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", cleanText("  a\n\tb   c  "))
	require.Equal(t, "", cleanText(" \n\t "))
}

func TestDecodeEscapedJSONString(t *testing.T) {
	require.Equal(t, "line one\nline two", decodeEscapedJSONString(`line one\nline two`))
	require.Equal(t, "tab\there", decodeEscapedJSONString(`tab\there`))
	require.Equal(t, "already plain", decodeEscapedJSONString("already plain"))
	// undecodable input comes back unchanged
	require.Equal(t, `trailing\`, decodeEscapedJSONString(`trailing\`))
}
