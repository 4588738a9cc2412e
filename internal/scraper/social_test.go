package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biaslens/biaslens/internal/models"
)

func TestSocialExtractEndToEnd(t *testing.T) {
	const postURL = "https://twitter.com/citywatch/status/17283941"

	var gotURL, gotOmitScript string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		gotOmitScript = r.URL.Query().Get("omit_script")
		fmt.Fprint(w, `{"html":"<blockquote class=\"twitter-tweet\"><p>Breaking: the council passed the transit budget tonight after a marathon session, with three amendments adopted on the floor.</p>&mdash; City Watch (@citywatch)</blockquote>","author_name":"City Watch","provider_name":"Twitter"}`)
	}))
	defer srv.Close()

	sc := New(Config{SocialOEmbedBase: srv.URL})
	tgt := mustTarget(t, postURL)

	res, err := socialStrategy{}.extract(context.Background(), sc, tgt)
	require.NoError(t, err)
	require.Equal(t, models.KindSocialPost, res.ContentKind)
	require.Equal(t, postURL, res.NormalizedURL)
	require.Equal(t, postURL, gotURL)
	require.Equal(t, "true", gotOmitScript)
	require.True(t, strings.HasPrefix(res.Text, "Source: Twitter. Author: City Watch. "))
	require.Contains(t, res.Text, "the council passed the transit budget")
}

func TestSocialExtractTooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"html":"<p>hi</p>","author_name":"","provider_name":""}`)
	}))
	defer srv.Close()

	sc := New(Config{SocialOEmbedBase: srv.URL})
	tgt := mustTarget(t, "https://twitter.com/someone/status/1")

	_, err := socialStrategy{}.extract(context.Background(), sc, tgt)
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	require.Equal(t, "Could not extract enough text from this social post.", err.Error())
}

func TestSocialExtractUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sc := New(Config{SocialOEmbedBase: srv.URL})
	tgt := mustTarget(t, "https://x.com/someone/status/1")

	_, err := socialStrategy{}.extract(context.Background(), sc, tgt)
	require.Error(t, err)

	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	require.Equal(t, http.StatusNotFound, scrapeErr.Status)
	require.Equal(t, "Could not fetch tweet details (HTTP 404).", err.Error())
}

func TestSocialExtractMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not-json`)
	}))
	defer srv.Close()

	sc := New(Config{SocialOEmbedBase: srv.URL})
	tgt := mustTarget(t, "https://twitter.com/someone/status/1")

	_, err := socialStrategy{}.extract(context.Background(), sc, tgt)
	require.Error(t, err)

	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	require.Contains(t, err.Error(), "Could not fetch tweet details (")
}
