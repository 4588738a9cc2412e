package scraper

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]`)
	alphaWordRe  = regexp.MustCompile(`[A-Za-z]+`)
)

// escape sequences seen inside script-embedded JSON fragments
var fragmentUnescaper = strings.NewReplacer(
	`\n`, " ",
	`\t`, " ",
	`\"`, `"`,
	`\/`, "/",
	"&quot;", `"`,
)

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func sentenceCount(s string) int {
	return len(sentenceRe.FindAllString(s, -1))
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func uniqueAlphaWordCount(s string) int {
	seen := make(map[string]struct{})
	for _, w := range alphaWordRe.FindAllString(s, -1) {
		seen[strings.ToLower(w)] = struct{}{}
	}
	return len(seen)
}

// decodeEscapedJSONString interprets raw as the inside of a JSON string
// literal, turning backslash escapes into their characters. On failure the
// input is returned unchanged.
func decodeEscapedJSONString(raw string) string {
	quoted := `"` + strings.ReplaceAll(raw, `"`, `\"`) + `"`
	var out string
	if err := json.Unmarshal([]byte(quoted), &out); err != nil {
		return raw
	}
	return out
}

// paragraphsText joins the text of every <p> under sel.
func paragraphsText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanText(strings.Join(parts, " "))
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return cleanText(strings.Join(kept, " "))
}

func longestCandidate(candidates []string) string {
	best := ""
	for _, c := range candidates {
		if runeLen(c) > runeLen(best) {
			best = c
		}
	}
	return best
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
