package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"devskillshub/internal/database"
	"devskillshub/internal/infrastructure/kv"

	"github.com/jackc/pgx/v5"
)

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("scan dest mismatch")
	}
	d, ok := dest[0].(*string)
	if !ok {
		return fmt.Errorf("scan type mismatch")
	}
	*d = r.val
	return nil
}

type fakeDB struct {
	mu   sync.Mutex
	rows map[string]string
}

func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close() error               { return nil }
func (db *fakeDB) SQLDB() *sql.DB             { return nil }

func (db *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if !strings.Contains(query, "INSERT INTO kv_store") {
		return 0, fmt.Errorf("unexpected query")
	}
	db.rows[args[0].(string)] = args[1].(string)
	return 1, nil
}

func (db *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	db.mu.Lock()
	defer db.mu.Unlock()
	v, ok := db.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{val: v}
}

func TestKVRepository_RoundTrip(t *testing.T) {
	repo := NewKVRepository(&fakeDB{rows: map[string]string{}})
	ctx := context.Background()

	if _, found, err := repo.Get(ctx, "devskillshub_skills"); err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}
	if err := repo.Set(ctx, "devskillshub_skills", []byte("not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, found, err := repo.Get(ctx, "devskillshub_skills")
	if err != nil || !found || string(b) != "not json" {
		t.Fatalf("unexpected get: %q found=%v err=%v", b, found, err)
	}
}

func TestKVRepository_NilDB(t *testing.T) {
	repo := NewKVRepository(nil)
	if _, _, err := repo.Get(context.Background(), "k"); !errors.Is(err, kv.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
