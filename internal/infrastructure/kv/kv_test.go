package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func exerciseMedium(t *testing.T, m Medium) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := m.Get(ctx, "skills"); err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}

	if err := m.Set(ctx, "skills", []byte(`[1]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(ctx, "skills", []byte(`[1,2]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	b, found, err := m.Get(ctx, "skills")
	if err != nil || !found {
		t.Fatalf("expected value, found=%v err=%v", found, err)
	}
	if string(b) != `[1,2]` {
		t.Fatalf("unexpected value %q", b)
	}

	if err := m.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseMedium(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	src := []byte("abc")
	_ = m.Set(ctx, "k", src)
	src[0] = 'z'

	b, _, _ := m.Get(ctx, "k")
	if string(b) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %q", b)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	exerciseMedium(t, f)

	if _, err := os.Stat(filepath.Join(dir, "skills.json")); err != nil {
		t.Fatalf("expected skills.json on disk: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}

func TestFile_EscapesKey(t *testing.T) {
	dir := t.TempDir()
	f, _ := NewFile(dir)
	if err := f.Set(context.Background(), "../outside", []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "outside.json")); err == nil {
		t.Fatalf("key escaped storage dir")
	}
}

func TestNewFile_EmptyDir(t *testing.T) {
	if _, err := NewFile(" "); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
