package storage

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, err := s.Get("sidebarCollapsed"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	flags := Flags{Store: s}
	if err := flags.SetBool("sidebarCollapsed", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Повторная запись обновляет значение
	if err := flags.SetBool("sidebarCollapsed", false); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("linglong_token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(BackendSQLite, filepath.Dir(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	collapsed, err := Flags{Store: reopened}.Bool("sidebarCollapsed")
	if err != nil || collapsed {
		t.Fatalf("Bool = %v, %v; want false, nil", collapsed, err)
	}

	if err := reopened.Delete("linglong_token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := reopened.Get("linglong_token"); ok {
		t.Fatalf("key must be deleted")
	}
}
