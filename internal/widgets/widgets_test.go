package widgets

import (
	"path/filepath"
	"testing"

	"linglong/internal/logger"
	"linglong/internal/storage"
)

func TestCarousel(t *testing.T) {
	c := NewCarousel(5)

	tests := []struct {
		name string
		op   func() int
		want int
	}{
		{"prev wraps to last", c.Prev, 4},
		{"next wraps to first", c.Next, 0},
		{"next", c.Next, 1},
		{"set", func() int { return c.Set(3) }, 3},
		{"set past end", func() int { return c.Set(7) }, 2},
		{"set negative", func() int { return c.Set(-1) }, 4},
	}

	for _, tt := range tests {
		if got := tt.op(); got != tt.want {
			t.Fatalf("%s: index = %d, want %d", tt.name, got, tt.want)
		}
	}

	empty := NewCarousel(0)
	if empty.Next() != 0 || empty.Prev() != 0 {
		t.Fatalf("empty carousel must stay at 0")
	}

	c.Resize(2)
	if c.Index() != 0 || c.Len() != 2 || c.Prev() != 1 {
		t.Fatalf("resize: index=%d len=%d", c.Index(), c.Len())
	}
}

func TestChecklist(t *testing.T) {
	c := NewChecklist("Watch reels", "Finish level 1", "Practice speaking")

	if c.Count() != "0/3" {
		t.Fatalf("Count() = %q", c.Count())
	}
	if !c.Toggle(1) || !c.Toggle(2) {
		t.Fatalf("toggle must mark items done")
	}
	if c.Count() != "2/3" {
		t.Fatalf("Count() = %q", c.Count())
	}
	if c.Toggle(1) || c.Done(1) {
		t.Fatalf("second toggle must clear the item")
	}
	if c.Toggle(10) || c.Toggle(-1) {
		t.Fatalf("out of range toggle must be ignored")
	}
	if c.Count() != "1/3" {
		t.Fatalf("Count() = %q", c.Count())
	}
}

func TestSidebarPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	s := NewSidebar(storage.Flags{Store: store}, logger.Nop())
	if s.Collapsed() {
		t.Fatalf("sidebar must start expanded")
	}
	if !s.Toggle() {
		t.Fatalf("Toggle() must collapse")
	}
	store.Close()

	reopened, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := reopened.Get(SidebarKey); !ok || v != "true" {
		t.Fatalf("stored value = %q, %v", v, ok)
	}
	if !NewSidebar(storage.Flags{Store: reopened}, logger.Nop()).Collapsed() {
		t.Fatalf("collapsed state must survive reopen")
	}
}
