package llmclient

import (
	"context"
	"sync"
)

// Fake is a scripted client for offline use and tests. Each call pops
// the next scripted step; when the script is exhausted the last step
// repeats. It counts calls so tests can assert memoization behavior.
type Fake struct {
	mu    sync.Mutex
	steps []FakeStep
	calls int
}

// FakeStep is one scripted reply or failure.
type FakeStep struct {
	Reply string
	Err   error
}

func NewFake(steps ...FakeStep) *Fake {
	if len(steps) == 0 {
		steps = []FakeStep{{Reply: "{}"}}
	}
	return &Fake{steps: steps}
}

func (f *Fake) Name() string { return "FakeLLM" }
func (f *Fake) Close() error { return nil }

// Calls returns how many times GenerateVision ran.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) GenerateVision(ctx context.Context, req VisionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TransportError{Err: err}
	}
	f.mu.Lock()
	i := f.calls
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	step := f.steps[i]
	f.calls++
	f.mu.Unlock()
	return step.Reply, step.Err
}
