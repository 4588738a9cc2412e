package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/biaslens/biaslens/internal/models"
)

const MIN_SOCIAL_CHARS = 60

// socialStrategy resolves a post through the provider's oEmbed endpoint
// and flattens the returned embed markup to plain text.
type socialStrategy struct{}

func (socialStrategy) extract(ctx context.Context, sc *Scraper, t target) (models.ExtractionResult, error) {
	oembedURL := sc.cfg.SocialOEmbedBase + "/oembed?omit_script=true&url=" + url.QueryEscape(t.normalized)

	body, status, err := sc.fetch(ctx, oembedURL)
	if err != nil {
		return models.ExtractionResult{}, &ScrapeError{
			msg: fmt.Sprintf("Could not fetch tweet details (%v).", err),
		}
	}
	if status < 200 || status >= 300 {
		return models.ExtractionResult{}, &ScrapeError{
			Status: status,
			msg:    fmt.Sprintf("Could not fetch tweet details (HTTP %d).", status),
		}
	}

	var payload struct {
		HTML         string `json:"html"`
		AuthorName   string `json:"author_name"`
		ProviderName string `json:"provider_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.ExtractionResult{}, &ScrapeError{
			msg: fmt.Sprintf("Could not fetch tweet details (%v).", err),
		}
	}

	text := cleanText(embedMarkupText(payload.HTML))
	author := cleanText(payload.AuthorName)
	provider := cleanText(payload.ProviderName)

	var parts []string
	if provider != "" {
		parts = append(parts, "Source: "+provider+".")
	}
	if author != "" {
		parts = append(parts, "Author: "+author+".")
	}
	if text != "" {
		parts = append(parts, text)
	}

	combined := cleanText(strings.Join(parts, " "))
	if runeLen(combined) < MIN_SOCIAL_CHARS {
		return models.ExtractionResult{}, &ExtractionError{
			msg: "Could not extract enough text from this social post.",
		}
	}

	return models.ExtractionResult{
		Text:          combined,
		NormalizedURL: t.normalized,
		ContentKind:   models.KindSocialPost,
	}, nil
}

func embedMarkupText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return doc.Text()
}
