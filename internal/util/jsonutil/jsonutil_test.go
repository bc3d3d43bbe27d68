package jsonutil

import (
	"strings"
	"testing"
)

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"op": "a > b & c < d"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	if strings.Contains(got, `\u003e`) || strings.Contains(got, `\u0026`) {
		t.Fatalf("HTML characters escaped: %s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("trailing newline left in output: %q", got)
	}
	if got != `{"op":"a > b & c < d"}` {
		t.Fatalf("marshal = %s", got)
	}
}

func TestNormalizeUnicode_DecodesEscapes(t *testing.T) {
	norm, err := NormalizeUnicode([]byte(`{"cmp":"x > y"}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if string(norm) != `{"cmp":"x > y"}` {
		t.Fatalf("normalize = %s", norm)
	}
}

func TestUnmarshalFlex_Direct(t *testing.T) {
	var out struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	if err := UnmarshalFlex([]byte(`{"name":"rear bumper","n":2}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Name != "rear bumper" || out.N != 2 {
		t.Fatalf("out = %+v", out)
	}
}

func TestUnmarshalFlex_RejectsGarbage(t *testing.T) {
	var out map[string]any
	if err := UnmarshalFlex([]byte("definitely not json"), &out); err == nil {
		t.Fatal("garbage input accepted")
	}
}
