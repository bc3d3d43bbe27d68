package fingerprint

import (
	"strings"
	"testing"

	"autoinspect/internal/analysis"
)

func TestSum_StableAndContentSensitive(t *testing.T) {
	a := Sum([]byte("image-bytes"))
	b := Sum([]byte("image-bytes"))
	c := Sum([]byte("image-bytes2"))
	if a != b {
		t.Fatal("identical content produced different digests")
	}
	if a == c {
		t.Fatal("different content produced identical digests")
	}
	if len(a) != 64 {
		t.Fatalf("digest length = %d, want 64 hex chars", len(a))
	}
}

func TestSumAll_DistinguishesSplitContent(t *testing.T) {
	merged := SumAll([]byte("frontrear"))
	split := SumAll([]byte("front"), []byte("rear"))
	if merged == split {
		t.Fatal("one blob and its two-blob split share a digest")
	}
	resplit := SumAll([]byte("f"), []byte("rontrear"))
	if split == resplit {
		t.Fatal("different splits of the same bytes share a digest")
	}
	if SumAll([]byte("front"), []byte("rear")) != split {
		t.Fatal("identical sequences produced different digests")
	}
	if len(split) != 64 {
		t.Fatalf("digest length = %d, want 64 hex chars", len(split))
	}
}

func TestKey_Format(t *testing.T) {
	sum := Sum([]byte("x"))
	key := Key(sum, analysis.KindValuation, "vehicle+dmg")
	want := sum + ":valuation:vehicle+dmg"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
	if !strings.HasPrefix(key, sum+":") {
		t.Fatal("key must start with the content digest")
	}
}
