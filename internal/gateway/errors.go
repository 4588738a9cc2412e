package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("GROQ_API_KEY not set")
	ErrNoModels      = errors.New("no models available")
)

// ModelCallError is the terminal failure of a completion after every
// attempt has been used up.
type ModelCallError struct {
	Err error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call failed after retries: %v", e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }
