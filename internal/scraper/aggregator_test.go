package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biaslens/biaslens/internal/models"
)

func TestAggregatorExtractSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"title":"Council approves transit budget",`+
			`"abstract":"The measure passed on a split vote after weeks of hearings.",`+
			`"body":"<div><p>Supporters said the plan protects core routes while funding deferred maintenance.</p><p>Opponents warned that fare increases would follow within two years.</p></div>"}`)
	}))
	defer srv.Close()

	sc := New(Config{AggregatorDetailBase: srv.URL})
	tgt := mustTarget(t, "https://www.msn.com/en-us/news/politics/ar-AA1test9")

	res, err := aggregatorStrategy{}.extract(context.Background(), sc, tgt)
	require.NoError(t, err)
	require.Equal(t, "/AA1test9", gotPath)
	require.Equal(t, models.KindMSNDetail, res.ContentKind)
	require.Equal(t,
		"Council approves transit budget "+
			"The measure passed on a split vote after weeks of hearings. "+
			"Supporters said the plan protects core routes while funding deferred maintenance. "+
			"Opponents warned that fare increases would follow within two years.",
		res.Text)
}

func TestAggregatorExtractNoArticleID(t *testing.T) {
	sc := New(Config{})
	tgt := mustTarget(t, "https://www.msn.com/en-us/news/politics")

	_, err := aggregatorStrategy{}.extract(context.Background(), sc, tgt)
	require.True(t, errors.Is(err, errNoAggregatorDetail))
}

func TestAggregatorExtractUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sc := New(Config{AggregatorDetailBase: srv.URL})
	tgt := mustTarget(t, "https://www.msn.com/en-us/news/politics/ar-AA1test9")

	_, err := aggregatorStrategy{}.extract(context.Background(), sc, tgt)
	require.Error(t, err)

	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	require.Equal(t, http.StatusForbidden, scrapeErr.Status)
	require.Equal(t, "Could not fetch article data from MSN (HTTP 403).", err.Error())
}

func TestAggregatorExtractMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer srv.Close()

	sc := New(Config{AggregatorDetailBase: srv.URL})
	tgt := mustTarget(t, "https://www.msn.com/en-us/news/politics/ar-AA1test9")

	_, err := aggregatorStrategy{}.extract(context.Background(), sc, tgt)
	require.Error(t, err)

	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	require.Contains(t, err.Error(), "Could not fetch article data from MSN (")
}
