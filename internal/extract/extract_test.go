package extract

import (
	"errors"
	"testing"
)

func TestPayload_ProseWrappedObject(t *testing.T) {
	out, err := Payload(`Sure! Here you go: {"a":1} Hope that helps.`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T, want object", out)
	}
	if m["a"] != float64(1) {
		t.Fatalf("a = %v, want 1", m["a"])
	}
}

func TestPayload_NoBraces(t *testing.T) {
	_, err := Payload("no braces here")
	if !errors.Is(err, ErrPayloadNotFound) {
		t.Fatalf("err = %v, want ErrPayloadNotFound", err)
	}
}

func TestPayload_WidestSpanKeepsNestedObject(t *testing.T) {
	out, err := Payload(`{"a": {"b": 1}}`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	m := out.(map[string]any)
	inner, ok := m["a"].(map[string]any)
	if !ok {
		t.Fatalf("a = %v, want nested object", m["a"])
	}
	if inner["b"] != float64(1) {
		t.Fatalf("a.b = %v, want 1", inner["b"])
	}
}

func TestPayload_InvertedSpan(t *testing.T) {
	_, err := Payload(`} text before any open brace {`)
	if !errors.Is(err, ErrPayloadNotFound) {
		t.Fatalf("err = %v, want ErrPayloadNotFound", err)
	}
}

func TestPayload_SyntaxErrorInSpan(t *testing.T) {
	_, err := Payload(`prefix {"a": } suffix`)
	if !errors.Is(err, ErrPayloadNotFound) {
		t.Fatalf("err = %v, want ErrPayloadNotFound", err)
	}
}

func TestPayload_MarkdownFencedReply(t *testing.T) {
	raw := "```json\n{\"confidence\": 80}\n```"
	out, err := Payload(raw)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if out.(map[string]any)["confidence"] != float64(80) {
		t.Fatalf("confidence missing from %v", out)
	}
}
