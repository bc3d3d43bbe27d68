package resultcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCache_GetPutClear(t *testing.T) {
	c, err := New[string](4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Put("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("get = %q,%v, want v,true", v, ok)
	}
	c.Clear()
	if _, ok := c.Get("k"); ok {
		t.Fatal("clear did not drop the entry")
	}
}

func TestCache_BoundedEviction(t *testing.T) {
	c, err := New[int](2)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	if c.Len() != 2 {
		t.Fatalf("len = %d, want capacity 2", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("oldest entry survived past capacity")
	}
}

func TestCache_GetOrComputeMemoizes(t *testing.T) {
	c, err := New[int](4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return 7, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(context.Background(), "k", compute)
		if err != nil || v != 7 {
			t.Fatalf("GetOrCompute = %d,%v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestCache_FailedComputeNotCached(t *testing.T) {
	c, err := New[int](4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	boom := errors.New("boom")
	if _, err := c.GetOrCompute(context.Background(), "k", func(context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	v, err := c.GetOrCompute(context.Background(), "k", func(context.Context) (int, error) {
		return 9, nil
	})
	if err != nil || v != 9 {
		t.Fatalf("retry after failure = %d,%v, want 9,nil", v, err)
	}
}

func TestCache_CollapsesConcurrentSameKeyCallers(t *testing.T) {
	c, err := New[int](4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	var computes int32
	release := make(chan struct{})
	compute := func(context.Context) (int, error) {
		atomic.AddInt32(&computes, 1)
		<-release
		return 42, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute(context.Background(), "same", compute)
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
			}
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&computes); n != 1 {
		t.Fatalf("compute ran %d times for one key, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Fatalf("caller %d got %d, want 42", i, v)
		}
	}
}
