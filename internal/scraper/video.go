package scraper

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/biaslens/biaslens/internal/models"
)

const (
	MIN_VIDEO_CHARS      = 100
	TRANSCRIPT_MAX_CHARS = 6000
)

var (
	shortDescriptionRe = regexp.MustCompile(`(?s)"shortDescription":"(.*?)"`)
	captionTracksRe    = regexp.MustCompile(`(?s)"captionTracks":(\[.*?\])`)

	videoPathSections = map[string]struct{}{
		"shorts": {},
		"live":   {},
		"embed":  {},
	}
)

// videoStrategy pulls what text a video page offers: oEmbed title and
// channel (best effort), the embedded short description, and the first
// caption track flattened into a transcript excerpt.
type videoStrategy struct{}

func (videoStrategy) extract(ctx context.Context, sc *Scraper, t target) (models.ExtractionResult, error) {
	videoID := extractVideoID(t.url)
	if videoID == "" {
		return models.ExtractionResult{}, &InputError{
			msg: "Could not parse YouTube video ID from this URL.",
		}
	}

	canonical := sc.cfg.VideoWatchBase + "/watch?v=" + url.QueryEscape(videoID)
	var parts []string

	// Optional enrichment: metadata failures are logged and dropped.
	meta, err := sc.videoMetadata(ctx, canonical)
	if err != nil {
		slog.Warn("[Scraper] Video metadata lookup failed",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
	} else {
		if meta.Title != "" {
			parts = append(parts, "Video title: "+meta.Title+".")
		}
		if meta.Author != "" {
			parts = append(parts, "Channel: "+meta.Author+".")
		}
	}

	body, status, err := sc.fetch(ctx, canonical)
	if err != nil || status < 200 || status >= 300 {
		slog.Warn("[Scraper] Video page fetch failed",
			slog.String("video_id", videoID),
			slog.Int("status", status))
	} else {
		pageHTML := string(body)

		if m := shortDescriptionRe.FindStringSubmatch(pageHTML); m != nil {
			if desc := cleanText(decodeEscapedJSONString(m[1])); desc != "" {
				parts = append(parts, "Description: "+desc)
			}
		}

		if m := captionTracksRe.FindStringSubmatch(pageHTML); m != nil {
			if transcript := sc.captionTranscript(ctx, m[1]); transcript != "" {
				parts = append(parts, "Transcript excerpt: "+truncateRunes(transcript, TRANSCRIPT_MAX_CHARS))
			}
		}
	}

	joined := cleanText(strings.Join(parts, " "))
	if runeLen(joined) < MIN_VIDEO_CHARS {
		return models.ExtractionResult{}, &ExtractionError{
			msg: "Could not extract enough text from this YouTube video. If captions are disabled, try a related article URL.",
		}
	}

	return models.ExtractionResult{
		Text:          joined,
		NormalizedURL: t.normalized,
		ContentKind:   models.KindYouTubeVideo,
	}, nil
}

// extractVideoID resolves the canonical video id from the URL shapes we
// support: short links, watch?v=, and shorts/live/embed paths.
func extractVideoID(u *url.URL) string {
	host := strings.ToLower(u.Host)

	if strings.Contains(host, "youtu.be") {
		trimmed := strings.Trim(u.Path, "/")
		return strings.SplitN(trimmed, "/", 2)[0]
	}

	if strings.Contains(host, "youtube.com") {
		if v := u.Query().Get("v"); v != "" {
			return v
		}

		segments := nonEmptySegments(u.Path)
		if len(segments) >= 2 {
			if _, ok := videoPathSections[segments[0]]; ok {
				return segments[1]
			}
		}
	}

	return ""
}

type videoMeta struct {
	Title  string
	Author string
}

func (sc *Scraper) videoMetadata(ctx context.Context, canonical string) (videoMeta, error) {
	oembedURL := sc.cfg.VideoWatchBase + "/oembed?url=" + url.QueryEscape(canonical) + "&format=json"

	body, status, err := sc.fetch(ctx, oembedURL)
	if err != nil {
		return videoMeta{}, err
	}
	if status < 200 || status >= 300 {
		return videoMeta{}, fmt.Errorf("oembed returned HTTP %d", status)
	}

	var payload struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return videoMeta{}, err
	}

	return videoMeta{
		Title:  cleanText(payload.Title),
		Author: cleanText(payload.AuthorName),
	}, nil
}

// captionTranscript fetches the first caption track listed in the watch
// page and flattens its <text> nodes. Any failure yields an empty string;
// captions are a bonus, not a requirement.
func (sc *Scraper) captionTranscript(ctx context.Context, tracksJSON string) string {
	var tracks []struct {
		BaseURL string `json:"baseUrl"`
	}
	if err := json.Unmarshal([]byte(tracksJSON), &tracks); err != nil || len(tracks) == 0 {
		return ""
	}
	if tracks[0].BaseURL == "" {
		return ""
	}

	body, status, err := sc.fetch(ctx, tracks[0].BaseURL)
	if err != nil || status < 200 || status >= 300 {
		return ""
	}

	var doc struct {
		Lines []struct {
			Value string `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return ""
	}

	var lines []string
	for _, line := range doc.Lines {
		if cleaned := cleanText(html.UnescapeString(line.Value)); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return cleanText(strings.Join(lines, " "))
}
