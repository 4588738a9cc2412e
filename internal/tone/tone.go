package tone

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// TONE_LABEL_THRESHOLD is the compound-score cutoff for the positive
// and negative labels.
const TONE_LABEL_THRESHOLD = 0.20

var analyzer = govader.NewSentimentIntensityAnalyzer()

var (
	markdownLinkRe = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLRe      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagRe      = regexp.MustCompile(`<[^>]+>`)
)

// Enrichment is the optional tone reading stored alongside an analysis.
// The zero value means no reading was produced.
type Enrichment struct {
	Score float64
	Label string
}

// RemoveLinks keeps the text of markdown links and drops bare URLs.
func RemoveLinks(input string) string {
	input = markdownLinkRe.ReplaceAllString(input, "$1")
	return bareURLRe.ReplaceAllString(input, "")
}

// flatten strips links, renders any markdown and collapses the result
// to one tag-free line.
func flatten(input string) string {
	plain := RemoveLinks(input)
	rendered := blackfriday.Run([]byte(plain), blackfriday.WithNoExtensions())
	text := htmlTagRe.ReplaceAllString(string(rendered), " ")
	return strings.Join(strings.Fields(text), " ")
}

// Analyze scores the text's overall tone with VADER. Empty input yields
// the zero enrichment.
func Analyze(text string) Enrichment {
	plain := flatten(text)
	if plain == "" {
		return Enrichment{}
	}

	score := analyzer.PolarityScores(plain).Compound

	label := "neutral"
	switch {
	case score >= TONE_LABEL_THRESHOLD:
		label = "positive"
	case score <= -TONE_LABEL_THRESHOLD:
		label = "negative"
	}

	return Enrichment{Score: score, Label: label}
}
