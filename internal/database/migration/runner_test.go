package migration

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortsAndChecksums(t *testing.T) {
	src := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "first" || migs[0].SQL != "SELECT 1;" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("expected distinct checksums")
	}
}

func TestLoadMigrations_Duplicate(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(src); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestLoadMigrations_Empty(t *testing.T) {
	src := fstest.MapFS{"V1__empty.sql": {Data: []byte("   ")}}
	if _, err := loadMigrations(src); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := Runner{}.source()
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	migs, err := loadMigrations(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migs) == 0 || migs[0].Name != "kv_store" {
		t.Fatalf("expected embedded kv_store migration, got %+v", migs)
	}
}
