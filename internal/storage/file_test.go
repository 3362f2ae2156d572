package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("linglong_token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.Get("linglong_token")
	if err != nil || !ok || v != "abc" {
		t.Fatalf("Get = %q, %v, %v; want abc, true, nil", v, ok, err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatalf("expected key to be gone")
	}
	if err := s.Delete("missing"); err != nil {
		t.Fatalf("deleting a missing key should be a no-op, got %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("corrupt file must not fail the store: %v", err)
	}
	if s.Quarantined() != path+".corrupt" {
		t.Fatalf("Quarantined() = %q", s.Quarantined())
	}
	if data, err := os.ReadFile(path + ".corrupt"); err != nil || string(data) != "{not json" {
		t.Fatalf("corrupt file must be kept aside: %q, %v", data, err)
	}
	if _, ok, _ := s.Get("linglong_level1_complete"); ok {
		t.Fatalf("store must start empty")
	}

	if err := s.Set("sidebarCollapsed", "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	reopened, err := NewFileStore(path)
	if err != nil || reopened.Quarantined() != "" {
		t.Fatalf("reopen: %v, quarantined %q", err, reopened.Quarantined())
	}
	if v, _, _ := reopened.Get("sidebarCollapsed"); v != "true" {
		t.Fatalf("value after recovery = %q", v)
	}
}

func TestFlags(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flags := Flags{Store: s}

	got, err := flags.Bool("sidebarCollapsed")
	if err != nil || got {
		t.Fatalf("missing flag = %v, %v; want false, nil", got, err)
	}

	if err := flags.SetBool("sidebarCollapsed", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, _, _ := s.Get("sidebarCollapsed")
	if raw != "true" {
		t.Fatalf("raw value = %q, want %q", raw, "true")
	}

	got, err = flags.Bool("sidebarCollapsed")
	if err != nil || !got {
		t.Fatalf("flag = %v, %v; want true, nil", got, err)
	}

	if err := s.Set("garbage", "yes please"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := flags.Bool("garbage"); got {
		t.Fatalf("unparsable value should read as false")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestMemoryStore(t *testing.T) {
	var s Store = NewMemoryStore()
	flags := Flags{Store: s}

	if err := flags.SetBool("linglong_level1_complete", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if done, err := flags.Bool("linglong_level1_complete"); err != nil || !done {
		t.Fatalf("Bool = %v, %v", done, err)
	}
	if err := s.Delete("linglong_level1_complete"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get("linglong_level1_complete"); ok {
		t.Fatalf("key must be deleted")
	}
}
