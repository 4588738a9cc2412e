package source

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/biaslens/biaslens/internal/models"
)

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// Outlet lists are checked right -> left -> center; first substring match
// on the host wins.
var (
	rightOutlets = []string{
		"foxnews",
		"dailywire",
		"breitbart",
		"newsmax",
		"washingtontimes",
		"theblaze",
	}

	leftOutlets = []string{
		"msnbc",
		"huffpost",
		"vox",
		"motherjones",
		"slate",
		"salon",
	}

	centerOutlets = []string{
		"reuters",
		"apnews",
		"bbc",
		"npr",
		"axios",
		"usatoday",
	}
)

// Classify maps a URL's domain to a coarse editorial leaning. It never
// fails; anything unresolvable is unknown.
func Classify(rawURL string) models.SourceLabel {
	candidate := strings.TrimSpace(rawURL)
	if candidate != "" && !schemePrefix.MatchString(candidate) {
		candidate = "https://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return models.SourceUnknown
	}
	domain := strings.ToLower(parsed.Host)

	for _, s := range rightOutlets {
		if strings.Contains(domain, s) {
			return models.SourceRight
		}
	}
	for _, s := range leftOutlets {
		if strings.Contains(domain, s) {
			return models.SourceLeft
		}
	}
	for _, s := range centerOutlets {
		if strings.Contains(domain, s) {
			return models.SourceCenter
		}
	}

	return models.SourceUnknown
}
