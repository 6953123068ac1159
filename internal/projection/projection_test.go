package projection

import (
	"errors"
	"testing"

	"suitcase-cli/internal/model"
)

func threeItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
}

func TestReloadReplacesContents(t *testing.T) {
	l := New()
	l.Append(model.Item{ID: 9, Name: "stale"})

	l.Reload(threeItems())
	if l.Len() != 3 {
		t.Fatalf("expected 3 items; got %d", l.Len())
	}
	it, err := l.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if it.ID != 1 {
		t.Fatalf("expected reload to keep snapshot order; got %+v", it)
	}
}

func TestReloadCopiesInput(t *testing.T) {
	src := threeItems()
	l := New()
	l.Reload(src)

	src[0].Name = "mutated"
	it, err := l.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if it.Name != "A" {
		t.Fatalf("projection aliases caller slice: %+v", it)
	}
}

func TestAppendAndReplaceAt(t *testing.T) {
	l := New()
	l.Reload(threeItems())

	l.Append(model.Item{ID: 4, Name: "D"})
	if l.Len() != 4 {
		t.Fatalf("expected 4 after append; got %d", l.Len())
	}

	if err := l.ReplaceAt(1, model.Item{ID: 2, Name: "B2"}); err != nil {
		t.Fatalf("ReplaceAt: %v", err)
	}
	it, err := l.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if it.Name != "B2" {
		t.Fatalf("replace did not apply: %+v", it)
	}
	// Position preserved, neighbors untouched.
	if got := l.IndexOf(2); got != 1 {
		t.Fatalf("IndexOf(2) = %d, want 1", got)
	}
}

func TestRemoveAtShiftsIndices(t *testing.T) {
	l := New()
	l.Reload(threeItems())

	if err := l.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 after remove; got %d", l.Len())
	}
	it, err := l.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if it.ID != 2 {
		t.Fatalf("expected B to shift to index 0; got %+v", it)
	}
}

func TestToggleAt(t *testing.T) {
	l := New()
	l.Reload(threeItems())

	if err := l.ToggleAt(2); err != nil {
		t.Fatalf("ToggleAt: %v", err)
	}
	it, _ := l.At(2)
	if !it.Purchased {
		t.Fatalf("expected toggle to set purchased")
	}
	if err := l.ToggleAt(2); err != nil {
		t.Fatalf("ToggleAt: %v", err)
	}
	it, _ = l.At(2)
	if it.Purchased {
		t.Fatalf("expected second toggle to restore")
	}
}

func TestOutOfRangeIsIndexError(t *testing.T) {
	l := New()
	l.Reload(threeItems())

	for _, idx := range []int{-1, 3, 100} {
		if _, err := l.At(idx); err == nil {
			t.Fatalf("At(%d): expected error", idx)
		} else {
			var ie IndexError
			if !errors.As(err, &ie) {
				t.Fatalf("At(%d): expected IndexError; got %v", idx, err)
			}
			if ie.Index != idx || ie.Len != 3 {
				t.Fatalf("At(%d): bad error context: %+v", idx, ie)
			}
		}
		if err := l.RemoveAt(idx); err == nil {
			t.Fatalf("RemoveAt(%d): expected error", idx)
		}
		if err := l.ReplaceAt(idx, model.Item{}); err == nil {
			t.Fatalf("ReplaceAt(%d): expected error", idx)
		}
		if err := l.ToggleAt(idx); err == nil {
			t.Fatalf("ToggleAt(%d): expected error", idx)
		}
	}
}

func TestIndexOf(t *testing.T) {
	l := New()
	l.Reload(threeItems())

	if got := l.IndexOf(3); got != 2 {
		t.Fatalf("IndexOf(3) = %d, want 2", got)
	}
	if got := l.IndexOf(99); got != -1 {
		t.Fatalf("IndexOf(99) = %d, want -1", got)
	}
}

func TestIdentityRemovalIsOrderIndependent(t *testing.T) {
	// [A, B, C]; remove B and C by identity in both orders; [A] remains.
	for _, order := range [][]int64{{2, 3}, {3, 2}} {
		l := New()
		l.Reload(threeItems())

		for _, id := range order {
			idx := l.IndexOf(id)
			if idx < 0 {
				t.Fatalf("order %v: id %d missing", order, id)
			}
			if err := l.RemoveAt(idx); err != nil {
				t.Fatalf("order %v: RemoveAt(%d): %v", order, idx, err)
			}
		}

		if l.Len() != 1 {
			t.Fatalf("order %v: expected 1 left; got %d", order, l.Len())
		}
		it, _ := l.At(0)
		if it.ID != 1 {
			t.Fatalf("order %v: expected A to remain; got %+v", order, it)
		}
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	l := New()
	l.Reload(threeItems())

	got := l.Items()
	got[0].Name = "mutated"

	it, _ := l.At(0)
	if it.Name != "A" {
		t.Fatalf("Items() leaked the backing slice")
	}
}
