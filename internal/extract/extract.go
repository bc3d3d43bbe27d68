// Package extract isolates the JSON object embedded in a raw model
// reply. The provider is instructed to return only JSON but in practice
// prepends and appends commentary; taking the widest {...} span is the
// most robust heuristic against that drift. The heuristic lives behind
// this package so it can be swapped for a schema-constrained response
// mode without touching the sanitizer or orchestrator.
package extract

import (
	"errors"
	"strings"

	"autoinspect/internal/util/jsonutil"
)

// ErrPayloadNotFound means no parsable JSON object span exists in the
// reply. Missing braces, an inverted span and a syntax error all
// collapse into this one error: the caller's recovery is identical.
var ErrPayloadNotFound = errors.New("extract: no JSON payload in reply")

// Payload returns the decoded JSON document between the first '{' and
// the last '}' of raw, inclusive.
func Payload(raw string) (any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < 0 || end <= start {
		return nil, ErrPayloadNotFound
	}
	span := raw[start : end+1]
	var out any
	if err := jsonutil.UnmarshalFlex([]byte(span), &out); err != nil {
		return nil, ErrPayloadNotFound
	}
	return out, nil
}
