package scraper

// InputError means the caller handed us something we cannot work with:
// an empty or malformed URL, or a video link with no resolvable id.
// The message is safe to show verbatim.
type InputError struct {
	msg string
}

func NewInputError(msg string) *InputError { return &InputError{msg: msg} }

func (e *InputError) Error() string { return e.msg }

// ScrapeError means an upstream fetch failed. Status is the HTTP status
// when one was received, zero on transport errors.
type ScrapeError struct {
	Status int
	msg    string
}

func NewScrapeError(status int, msg string) *ScrapeError {
	return &ScrapeError{Status: status, msg: msg}
}

func (e *ScrapeError) Error() string { return e.msg }

// ExtractionError means every applicable strategy ran but none produced
// acceptable text. The message distinguishes "not an article page" from
// "not enough text".
type ExtractionError struct {
	msg string
}

func NewExtractionError(msg string) *ExtractionError { return &ExtractionError{msg: msg} }

func (e *ExtractionError) Error() string { return e.msg }
