package models

type ContentKind string

const (
	KindWebArticle      ContentKind = "web-article"
	KindWebArticleLight ContentKind = "web-article-light"
	KindYouTubeVideo    ContentKind = "youtube-video"
	KindSocialPost      ContentKind = "social-post"
	KindMSNDetail       ContentKind = "msn-detail"
)

// ExtractionResult carries the readable text pulled out of a URL along with
// how it was obtained. Text is whitespace-collapsed and trimmed.
type ExtractionResult struct {
	Text          string      `json:"text"`
	NormalizedURL string      `json:"normalized_url"`
	ContentKind   ContentKind `json:"content_kind"`
}
