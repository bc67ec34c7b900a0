package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestSaveAssignsIDAndTime(t *testing.T) {
	h := openTemp(t)
	fixed := time.Date(2026, 2, 3, 4, 5, 6, 7, time.UTC)
	h.now = func() time.Time { return fixed }

	e, err := h.Save(context.Background(), Entry{Kind: "budget", Output: "**Summary**"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", e.ID, err)
	}
	if !e.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, fixed)
	}

	got, err := h.Get(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Output != "**Summary**" || !got.CreatedAt.Equal(fixed) || string(got.Input) != "{}" {
		t.Fatalf("Get = %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	h := openTemp(t)
	if _, err := h.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecentOrderLimitAndKind(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []string{"nlu", "budget", "budget", "insights"} {
		_, err := h.Save(ctx, Entry{Kind: kind, Output: kind, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := h.Recent(ctx, 0, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 4 || all[0].Kind != "insights" || all[3].Kind != "nlu" {
		t.Fatalf("Recent(all) kinds out of order: %+v", all)
	}

	two, err := h.Recent(ctx, 2, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(two) != 2 {
		t.Fatalf("len = %d, want 2", len(two))
	}

	budgets, err := h.Recent(ctx, 10, "budget")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(budgets) != 2 {
		t.Fatalf("len(budget) = %d, want 2", len(budgets))
	}

	n, err := h.Count(ctx, "budget")
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v; want 2", n, err)
	}
}

func TestRecordEncodesInput(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()
	in := map[string]float64{"income": 4000}
	if err := h.Record(ctx, "budget", "student", in, "out"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := h.Recent(ctx, 1, "budget")
	if err != nil || len(got) != 1 {
		t.Fatalf("Recent = %v, %v", got, err)
	}
	var back map[string]float64
	if err := json.Unmarshal(got[0].Input, &back); err != nil {
		t.Fatalf("input not JSON: %v", err)
	}
	if back["income"] != 4000 || got[0].Persona != "student" {
		t.Fatalf("entry = %+v", got[0])
	}

	if err := h.Record(ctx, "budget", "", func() {}, "out"); err == nil {
		t.Fatal("expected encode error for func input")
	}
}
