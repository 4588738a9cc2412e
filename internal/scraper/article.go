package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/biaslens/biaslens/internal/models"
)

const (
	MIN_ARTICLE_CHARS        = 350
	MIN_ARTICLE_WORDS        = 60
	MIN_ARTICLE_SENTENCES    = 3
	MIN_ARTICLE_UNIQUE_WORDS = 40
	MIN_LIGHT_CHARS          = 180
	MIN_LIGHT_WORDS          = 40
	MAX_KEYWORD_BLOCKS       = 10
)

var (
	dateSegmentRe    = regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/`)
	longSlugRe       = regexp.MustCompile(`[a-z0-9-]{20,}`)
	sectionSegmentRe = regexp.MustCompile(`^[a-z-]{2,12}$`)
	ldArticleTypeRe  = regexp.MustCompile(`(?i)"@type"\s*:\s*"(NewsArticle|Article|ReportageNewsArticle)"`)

	embeddedFragmentRes = []*regexp.Regexp{
		regexp.MustCompile(`"articleBody"\s*:\s*"([^"]{80,})"`),
		regexp.MustCompile(`"description"\s*:\s*"([^"]{80,})"`),
		regexp.MustCompile(`"headline"\s*:\s*"([^"]{40,})"`),
		regexp.MustCompile(`"title"\s*:\s*"([^"]{40,})"`),
	}

	sectionNames = map[string]struct{}{
		"news":          {},
		"world":         {},
		"us":            {},
		"politics":      {},
		"business":      {},
		"sport":         {},
		"sports":        {},
		"entertainment": {},
		"video":         {},
		"live":          {},
	}
)

// genericStrategy handles ordinary web pages: gather text candidates from
// progressively looser selectors plus structured data, take the longest,
// and accept it only when the page plausibly is an article.
type genericStrategy struct{}

func (genericStrategy) extract(ctx context.Context, sc *Scraper, t target) (models.ExtractionResult, error) {
	body, status, err := sc.fetch(ctx, t.normalized)
	if err != nil {
		return models.ExtractionResult{}, &ScrapeError{
			msg: fmt.Sprintf("Could not load this page (%v).", err),
		}
	}
	if status < 200 || status >= 300 {
		return models.ExtractionResult{}, &ScrapeError{
			Status: status,
			msg: fmt.Sprintf(
				"Website blocked access (HTTP %d). Try a direct publisher link or a different source.", status),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return models.ExtractionResult{}, &ScrapeError{
			msg: fmt.Sprintf("Could not load this page (%v).", err),
		}
	}

	likelyArticle := likelyArticlePath(t.url.Path) ||
		(hasArticleSignals(doc) && !isHomeOrSectionPath(t.url.Path))

	var candidates []string

	if article := doc.Find("article").First(); article.Length() > 0 {
		candidates = append(candidates, paragraphsText(article))
	}
	if main := doc.Find("main").First(); main.Length() > 0 {
		candidates = append(candidates, paragraphsText(main))
	}

	doc.Find("[class*='article'], [class*='content'], [class*='story'], [id*='article']").
		EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= MAX_KEYWORD_BLOCKS {
				return false
			}
			candidates = append(candidates, paragraphsText(sel))
			return true
		})

	if fallback := paragraphsText(doc.Selection); fallback != "" {
		candidates = append(candidates, fallback)
	}
	if distilled := readabilityText(body, t); distilled != "" {
		candidates = append(candidates, distilled)
	}
	if ld := jsonLDText(doc); ld != "" {
		candidates = append(candidates, ld)
	}
	if embedded := embeddedScriptText(doc); embedded != "" {
		candidates = append(candidates, embedded)
	}
	if meta := titleAndDescription(doc); meta != "" {
		candidates = append(candidates, meta)
	}

	best := longestCandidate(candidates)
	length := runeLen(best)
	words := wordCount(best)
	sentences := sentenceCount(best)
	unique := uniqueAlphaWordCount(best)

	switch {
	case likelyArticle && length >= MIN_ARTICLE_CHARS && words >= MIN_ARTICLE_WORDS &&
		sentences >= MIN_ARTICLE_SENTENCES && unique >= MIN_ARTICLE_UNIQUE_WORDS:
		return models.ExtractionResult{
			Text:          best,
			NormalizedURL: t.normalized,
			ContentKind:   models.KindWebArticle,
		}, nil

	case likelyArticle && length >= MIN_LIGHT_CHARS && words >= MIN_LIGHT_WORDS:
		return models.ExtractionResult{
			Text:          best,
			NormalizedURL: t.normalized,
			ContentKind:   models.KindWebArticleLight,
		}, nil

	case !likelyArticle:
		return models.ExtractionResult{}, &ExtractionError{
			msg: "This link does not look like a direct article page. Open the article itself and paste that URL.",
		}

	default:
		return models.ExtractionResult{}, &ExtractionError{
			msg: "Could not extract enough article text from this page. Try the publisher's direct article link.",
		}
	}
}

func likelyArticlePath(path string) bool {
	lowered := strings.ToLower(path)
	if strings.Contains(lowered, "/ar-") {
		return true
	}
	if strings.Contains(lowered, "/article/") || strings.Contains(lowered, "/story/") {
		return true
	}
	if dateSegmentRe.MatchString(lowered) {
		return true
	}

	segments := nonEmptySegments(lowered)
	if len(segments) == 0 {
		return false
	}
	last := segments[len(segments)-1]
	return longSlugRe.MatchString(last) && strings.Contains(last, "-")
}

func isHomeOrSectionPath(path string) bool {
	segments := nonEmptySegments(strings.ToLower(path))
	if len(segments) == 0 {
		return true
	}
	if len(segments) != 1 {
		return false
	}
	if _, ok := sectionNames[segments[0]]; ok {
		return true
	}
	return sectionSegmentRe.MatchString(segments[0])
}

func nonEmptySegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func hasArticleSignals(doc *goquery.Document) bool {
	if doc.Find("article").Length() > 0 {
		return true
	}

	ogType, _ := doc.Find(`meta[property="og:type"]`).First().Attr("content")
	if strings.Contains(strings.ToLower(ogType), "article") {
		return true
	}

	if doc.Find(`meta[property="article:published_time"]`).Length() > 0 {
		return true
	}

	found := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if ldArticleTypeRe.MatchString(sel.Text()) {
			found = true
			return false
		}
		return true
	})
	return found
}

func jsonLDText(doc *goquery.Document) string {
	var chunks []string

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return
		}

		nodes, ok := payload.([]any)
		if !ok {
			nodes = []any{payload}
		}
		for _, node := range nodes {
			obj, ok := node.(map[string]any)
			if !ok {
				continue
			}
			for _, key := range []string{"articleBody", "headline", "description", "text"} {
				if value, ok := obj[key].(string); ok {
					chunks = append(chunks, value)
				}
			}
		}
	})

	return cleanText(strings.Join(chunks, " "))
}

func embeddedScriptText(doc *goquery.Document) string {
	var fragments []string

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		raw := sel.Text()
		if raw == "" {
			return
		}
		for _, re := range embeddedFragmentRes {
			for _, match := range re.FindAllStringSubmatch(raw, -1) {
				fragments = append(fragments, cleanText(fragmentUnescaper.Replace(match[1])))
			}
		}
	})

	return cleanText(strings.Join(fragments, " "))
}

func titleAndDescription(doc *goquery.Document) string {
	title := cleanText(doc.Find("title").First().Text())

	descTag := doc.Find(`meta[name="description"]`).First()
	if descTag.Length() == 0 {
		descTag = doc.Find(`meta[property="og:description"]`).First()
	}
	desc := cleanText(descTag.AttrOr("content", ""))

	return joinNonEmpty(title, desc)
}

// readabilityText runs the page through a readability pass as one more
// candidate; parse failures just drop the candidate.
func readabilityText(body []byte, t target) string {
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), t.url)
	if err != nil {
		return ""
	}
	return cleanText(article.TextContent)
}
