package models

// SourceLabel is the coarse editorial leaning of a URL's domain.
type SourceLabel string

const (
	SourceLeft    SourceLabel = "left"
	SourceCenter  SourceLabel = "center"
	SourceRight   SourceLabel = "right"
	SourceUnknown SourceLabel = "unknown"
)
