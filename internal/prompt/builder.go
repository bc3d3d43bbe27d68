// Package prompt assembles the deterministic instruction strings sent to
// the inference service. The same inputs always render byte-identical
// output: no randomness, no clock reads.
package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"autoinspect/internal/util/jsonutil"
)

// System is the system instruction shared by all analysis kinds.
const System = "You are a certified vehicle inspection expert. " +
	"You assess damage, estimate repair costs and value vehicles from photographs. " +
	"You always answer with a single JSON object and nothing else."

// Field documents one output field the model must produce.
type Field struct {
	Name        string
	Type        string
	Allowed     string // closed value set, empty for free fields
	Description string
}

// Spec defines the sections of one analysis prompt.
type Spec struct {
	Purpose string
	Context []string // pre-rendered, deterministic context lines
	Fields  []Field
	Rules   []string
	Example string // worked, fully-populated response
}

// Render produces the final instruction string. Sections appear in a
// fixed order; maps never leak iteration order into the output.
func (s Spec) Render() string {
	var buf bytes.Buffer
	buf.WriteString("[PURPOSE]\n")
	buf.WriteString(strings.TrimSpace(s.Purpose))
	buf.WriteString("\n")
	if len(s.Context) > 0 {
		buf.WriteString("\n[CONTEXT]\n")
		for _, line := range s.Context {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	buf.WriteString("\n[OUTPUT]\nReturn a JSON object with exactly these fields:\n")
	for _, f := range s.Fields {
		buf.WriteString("- ")
		buf.WriteString(f.Name)
		buf.WriteString(" (")
		buf.WriteString(f.Type)
		buf.WriteString(")")
		if f.Allowed != "" {
			buf.WriteString(" one of: ")
			buf.WriteString(f.Allowed)
		}
		if f.Description != "" {
			buf.WriteString(" - ")
			buf.WriteString(f.Description)
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n[CRITICAL RULES]\n")
	for i, r := range s.Rules {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, r)
	}
	if s.Example != "" {
		buf.WriteString("\n[EXAMPLE]\nA fully populated response looks like:\n")
		buf.WriteString(s.Example)
		buf.WriteString("\n")
	}
	return buf.String()
}

// baseRules are appended to every kind's rule list.
var baseRules = []string{
	"Return ONLY the JSON object. No prose, no markdown fences, no comments.",
	"Never omit a field. Use the documented default when unsure.",
	"Use numeric JSON types for numeric fields, never quoted numbers.",
	"All confidence and percentage fields are integers between 0 and 100.",
	"All cost fields are non-negative numbers.",
	"Every list field must be present, even when empty.",
}

func withBaseRules(rules ...string) []string {
	out := make([]string, 0, len(rules)+len(baseRules))
	out = append(out, rules...)
	out = append(out, baseRules...)
	return out
}

// contextJSON renders v as a single deterministic JSON line for
// inclusion in a [CONTEXT] section.
func contextJSON(label string, v any) string {
	b, err := jsonutil.MarshalNoEscape(v)
	if err != nil {
		return label + ": {}"
	}
	return label + ": " + string(b)
}
