package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/biaslens/biaslens/internal/models"
)

const MIN_AGGREGATOR_CHARS = 120

// errNoAggregatorDetail signals that the detail workaround produced
// nothing usable and the generic strategy should run instead.
var errNoAggregatorDetail = errors.New("no usable aggregator detail")

var aggregatorArticleIDRe = regexp.MustCompile(`/ar-([A-Za-z0-9]+)`)

// aggregatorStrategy works around JS-only article pages on the MSN
// aggregator by reading the article id out of the path and querying the
// JSON detail endpoint directly.
type aggregatorStrategy struct{}

func (aggregatorStrategy) extract(ctx context.Context, sc *Scraper, t target) (models.ExtractionResult, error) {
	m := aggregatorArticleIDRe.FindStringSubmatch(t.normalized)
	if m == nil {
		return models.ExtractionResult{}, errNoAggregatorDetail
	}

	detailURL := sc.cfg.AggregatorDetailBase + "/" + m[1]
	body, status, err := sc.fetch(ctx, detailURL)
	if err != nil {
		return models.ExtractionResult{}, &ScrapeError{
			msg: fmt.Sprintf("Could not fetch article data from MSN (%v).", err),
		}
	}
	if status < 200 || status >= 300 {
		return models.ExtractionResult{}, &ScrapeError{
			Status: status,
			msg:    fmt.Sprintf("Could not fetch article data from MSN (HTTP %d).", status),
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.ExtractionResult{}, &ScrapeError{
			msg: fmt.Sprintf("Could not fetch article data from MSN (%v).", err),
		}
	}

	title := cleanText(stringValue(payload["title"]))
	abstract := cleanText(stringValue(payload["abstract"]))

	bodyText := ""
	if bodyHTML, ok := payload["body"].(string); ok && strings.TrimSpace(bodyHTML) != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML)); err == nil {
			bodyText = paragraphsText(doc.Selection)
		}
	}

	combined := joinNonEmpty(title, abstract, bodyText)
	if runeLen(combined) < MIN_AGGREGATOR_CHARS {
		return models.ExtractionResult{}, errNoAggregatorDetail
	}

	return models.ExtractionResult{
		Text:          combined,
		NormalizedURL: t.normalized,
		ContentKind:   models.KindMSNDetail,
	}, nil
}
