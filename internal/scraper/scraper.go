package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/biaslens/biaslens/internal/models"
)

const (
	FETCH_MAX_ATTEMPTS    = 3
	FETCH_INITIAL_BACKOFF = 500 * time.Millisecond
	FETCH_TIMEOUT         = 20 * time.Second

	// Some publishers refuse requests without a browser user agent.
	BROWSER_USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// Config holds the strategy endpoint bases so tests can point them at
// local servers. Zero fields fall back to the production endpoints.
type Config struct {
	VideoWatchBase       string
	SocialOEmbedBase     string
	AggregatorDetailBase string
	Timeout              time.Duration
}

func DefaultConfig() Config {
	return Config{
		VideoWatchBase:       "https://www.youtube.com",
		SocialOEmbedBase:     "https://publish.twitter.com",
		AggregatorDetailBase: "https://assets.msn.com/content/view/v2/Detail/en-us",
		Timeout:              FETCH_TIMEOUT,
	}
}

// Scraper turns a URL into readable text by picking one strategy from a
// closed set (video, social, aggregator-detail, generic) and running it.
type Scraper struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Scraper {
	defaults := DefaultConfig()
	if cfg.VideoWatchBase == "" {
		cfg.VideoWatchBase = defaults.VideoWatchBase
	}
	if cfg.SocialOEmbedBase == "" {
		cfg.SocialOEmbedBase = defaults.SocialOEmbedBase
	}
	if cfg.AggregatorDetailBase == "" {
		cfg.AggregatorDetailBase = defaults.AggregatorDetailBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	return &Scraper{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// target is the resolved form of a request handed to a strategy.
type target struct {
	normalized string
	url        *url.URL
}

// strategy is one member of the closed extraction set.
type strategy interface {
	extract(ctx context.Context, sc *Scraper, t target) (models.ExtractionResult, error)
}

func strategyFor(host string) strategy {
	switch {
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be"):
		return videoStrategy{}
	case strings.Contains(host, "twitter.com") || strings.Contains(host, "x.com"):
		return socialStrategy{}
	case strings.Contains(host, "msn.com"):
		return aggregatorStrategy{}
	default:
		return genericStrategy{}
	}
}

// NormalizeURL trims the input, prepends https:// when no scheme is
// present and rejects anything that is not an http(s) URL with a host.
func NormalizeURL(rawURL string) (string, error) {
	candidate := strings.TrimSpace(rawURL)
	if candidate == "" {
		return "", &InputError{msg: "Please paste a URL."}
	}

	if !schemePrefix.MatchString(candidate) {
		candidate = "https://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &InputError{msg: "Please use a valid URL (http/https)."}
	}
	return candidate, nil
}

// Extract normalizes the URL, classifies it and runs the matching
// strategy. The aggregator strategy may decline, in which case the
// generic strategy runs against the same target.
func (s *Scraper) Extract(ctx context.Context, rawURL string) (models.ExtractionResult, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return models.ExtractionResult{}, err
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return models.ExtractionResult{}, &InputError{msg: "Please use a valid URL (http/https)."}
	}

	t := target{normalized: normalized, url: parsed}
	host := strings.ToLower(parsed.Host)

	result, err := strategyFor(host).extract(ctx, s, t)
	if errors.Is(err, errNoAggregatorDetail) {
		slog.Debug("[Scraper] No usable aggregator detail, using generic extraction",
			slog.String("url", normalized))
		result, err = genericStrategy{}.extract(ctx, s, t)
	}
	return result, err
}

// fetch GETs a URL with the browser user agent, retrying transport errors
// and transient upstream statuses with doubling backoff. A final
// retryable status is returned to the caller rather than erased.
func (s *Scraper) fetch(ctx context.Context, rawURL string) ([]byte, int, error) {
	var (
		lastErr    error
		lastBody   []byte
		lastStatus int
	)

	backoff := FETCH_INITIAL_BACKOFF
	for attempt := 1; attempt <= FETCH_MAX_ATTEMPTS; attempt++ {
		body, status, err := s.doGet(ctx, rawURL)
		if err == nil && !retryableStatus(status) {
			return body, status, nil
		}

		if err != nil {
			lastErr = err
			lastBody, lastStatus = nil, 0
		} else {
			lastErr = fmt.Errorf("upstream returned HTTP %d", status)
			lastBody, lastStatus = body, status
		}

		if attempt < FETCH_MAX_ATTEMPTS {
			slog.Warn("[Scraper] Request failed, will retry",
				slog.String("url", rawURL),
				slog.Int("attempt", attempt),
				slog.String("error", lastErr.Error()))
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	if lastStatus != 0 {
		return lastBody, lastStatus, nil
	}
	return nil, 0, lastErr
}

func (s *Scraper) doGet(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", BROWSER_USER_AGENT)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
