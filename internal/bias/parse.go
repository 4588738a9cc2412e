package bias

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ResponseFormatError means the model's output never became valid JSON,
// even after the repair pass.
type ResponseFormatError struct {
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("model response was not valid JSON: %v", e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// ParseModelJSON parses raw as a JSON object. When the whole string does
// not parse, it retries on the slice between the first '{' and the last
// '}', which recovers objects wrapped in prose or markdown fences.
func ParseModelJSON(raw string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("no JSON object found")
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
