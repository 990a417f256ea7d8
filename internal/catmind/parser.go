package catmind

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy of the pipeline. Structural errors abort the whole
// invocation; only a mood outside its enum is recovered locally.
var (
	// ErrGenerationFailed wraps any transport/auth/provider failure of the
	// model call itself.
	ErrGenerationFailed = errors.New("model generation failed")

	// ErrMalformedResponse means the model output contains no
	// brace-delimited JSON object at all.
	ErrMalformedResponse = errors.New("model response contains no JSON object")

	// ErrInvalidJSON means the brace-delimited substring is not parseable.
	ErrInvalidJSON = errors.New("model response JSON is invalid")
)

// extractJSON locates the JSON object embedded in free-form model output.
// Greedy: from the first '{' to the last '}', which tolerates the model
// wrapping JSON in prose or code fences. Mis-extraction when two separate
// JSON fragments appear is an accepted trade-off against model verbosity.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return "", ErrMalformedResponse
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", ErrMalformedResponse
	}
	return raw[start : end+1], nil
}

// decodeObject extracts and parses the JSON object in raw.
func decodeObject(raw string) (map[string]interface{}, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return obj, nil
}

// stringField reads a string field leniently: missing or non-string values
// default to "" rather than failing the response.
func stringField(obj map[string]interface{}, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}
