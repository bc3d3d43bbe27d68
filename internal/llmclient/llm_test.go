package llmclient

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type tagged struct {
	Client
	tag   string
	trace *[]string
}

func (c *tagged) GenerateVision(ctx context.Context, req VisionRequest) (string, error) {
	*c.trace = append(*c.trace, c.tag)
	return c.Client.GenerateVision(ctx, req)
}

func TestWrap_AppliesLeftToRight(t *testing.T) {
	var trace []string
	mw := func(tag string) Middleware {
		return func(next Client) Client {
			return &tagged{Client: next, tag: tag, trace: &trace}
		}
	}
	c := Wrap(NewFake(), mw("outer"), mw("inner"))
	if _, err := c.GenerateVision(context.Background(), VisionRequest{Prompt: "p"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(trace) != 2 || trace[0] != "outer" || trace[1] != "inner" {
		t.Fatalf("trace = %v, want [outer inner]", trace)
	}
}

func TestRateLimit_PassThroughAndCancel(t *testing.T) {
	fake := NewFake(FakeStep{Reply: "{}"})
	c := Wrap(fake, WithLogging(zap.NewNop()), RateLimit(0, 0))
	out, err := c.GenerateVision(context.Background(), VisionRequest{Prompt: "p"})
	if err != nil || out != "{}" {
		t.Fatalf("generate = %q, %v", out, err)
	}
	if c.Name() != fake.Name() {
		t.Fatalf("middleware changed client name to %q", c.Name())
	}

	// A bucket of one token per hour: the second call must block, so a
	// canceled context surfaces as a transport error.
	c = Wrap(NewFake(), RateLimit(1.0/3600, 1))
	if _, err := c.GenerateVision(context.Background(), VisionRequest{}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.GenerateVision(ctx, VisionRequest{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestFake_ScriptRepeatsLastStep(t *testing.T) {
	boom := errors.New("boom")
	f := NewFake(FakeStep{Reply: "first"}, FakeStep{Err: boom})
	if out, _ := f.GenerateVision(context.Background(), VisionRequest{}); out != "first" {
		t.Fatalf("step 1 = %q", out)
	}
	for i := 0; i < 3; i++ {
		if _, err := f.GenerateVision(context.Background(), VisionRequest{}); !errors.Is(err, boom) {
			t.Fatalf("step %d err = %v, want boom", i+2, err)
		}
	}
	if f.Calls() != 4 {
		t.Fatalf("calls = %d, want 4", f.Calls())
	}
}

func TestClassify(t *testing.T) {
	if err := classify("m", errors.New("429 RESOURCE_EXHAUSTED: quota exceeded")); err != nil {
		var qe *QuotaError
		if !errors.As(err, &qe) {
			t.Fatalf("quota message classified as %T", err)
		}
		if IsPermanent(err) {
			t.Fatal("quota errors must stay retryable")
		}
	}

	err := classify("gemini-x", errors.New("model gemini-x is not found"))
	var ue *UnsupportedModelError
	if !errors.As(err, &ue) {
		t.Fatalf("missing model classified as %T", err)
	}
	if !IsPermanent(err) {
		t.Fatal("missing model must be permanent")
	}
	if err := classify("gemini-x", errors.New("status NOT_FOUND")); !IsPermanent(err) {
		t.Fatalf("structured NOT_FOUND status classified as %T", err)
	}

	// An intermediary's 404 body that does not name the model is a
	// transport fault, not a missing model, and must stay retryable.
	err = classify("gemini-x", errors.New("upstream proxy: 404 not found"))
	if errors.As(err, &ue) || IsPermanent(err) {
		t.Fatalf("proxy 404 classified as %T, want retryable transport error", err)
	}

	err = classify("m", errors.New("connection reset by peer"))
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("network failure classified as %T", err)
	}
	if classify("m", nil) != nil {
		t.Fatal("nil error classified as failure")
	}
}
