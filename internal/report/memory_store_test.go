package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"autoinspect/internal/analysis"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	st := NewMemoryStore()
	blob := []byte(`{"damageAreas":[]}`)

	if err := st.Save(context.Background(), "rep-1", analysis.KindDamage, blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Load(context.Background(), "rep-1", analysis.KindDamage)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("load = %q, want %q", got, blob)
	}

	// The store hands out copies, not aliases.
	got[0] = 'X'
	again, err := st.Load(context.Background(), "rep-1", analysis.KindDamage)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !bytes.Equal(again, blob) {
		t.Fatalf("stored blob mutated through a returned slice: %q", again)
	}
}

func TestMemoryStore_KindsAreSeparateSlots(t *testing.T) {
	st := NewMemoryStore()
	if err := st.Save(context.Background(), "rep-1", analysis.KindDamage, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save damage: %v", err)
	}
	if err := st.Save(context.Background(), "rep-1", analysis.KindValuation, []byte(`{"b":2}`)); err != nil {
		t.Fatalf("save valuation: %v", err)
	}
	got, err := st.Load(context.Background(), "rep-1", analysis.KindDamage)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("damage slot = %q, want {\"a\":1}", got)
	}
}

func TestMemoryStore_MissingIsErrNotFound(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.Load(context.Background(), "rep-1", analysis.KindReport); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_RejectsBadKeys(t *testing.T) {
	st := NewMemoryStore()
	if err := st.Save(context.Background(), "  ", analysis.KindDamage, []byte("{}")); err == nil {
		t.Fatal("blank report id accepted")
	}
	if err := st.Save(context.Background(), "rep-1", analysis.Kind("bogus"), []byte("{}")); err == nil {
		t.Fatal("unknown kind accepted")
	}
}
