package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/xonecas/gridsel/internal/sheet"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	c, err := Open(dbPath, ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func testSheet() *sheet.Sheet {
	return sheet.New("Sheet1", [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}, []sheet.Merge{{X1: 0, Y1: 0, X2: 1, Y2: 0}})
}

func TestSheetCache_PutGet(t *testing.T) {
	c := openTestCache(t, 24*time.Hour)
	mtime := time.Unix(1700000000, 123)

	// Miss on empty.
	if _, ok := c.GetSheet("/tmp/book.xlsx", "Sheet1", mtime); ok {
		t.Fatal("expected miss")
	}

	c.PutSheet("/tmp/book.xlsx", "Sheet1", mtime, testSheet())

	got, ok := c.GetSheet("/tmp/book.xlsx", "Sheet1", mtime)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Value(2, 1) != "3" {
		t.Errorf("Value(2, 1) = %q, want 3", got.Value(2, 1))
	}
	if got.ColSpan(0, 0) != 1 || !got.IsSpanContinuation(1, 0) {
		t.Error("cached sheet lost its merges")
	}
}

func TestSheetCache_MtimeMismatch(t *testing.T) {
	c := openTestCache(t, 24*time.Hour)
	mtime := time.Unix(1700000000, 0)
	c.PutSheet("/tmp/book.xlsx", "Sheet1", mtime, testSheet())

	if _, ok := c.GetSheet("/tmp/book.xlsx", "Sheet1", mtime.Add(time.Second)); ok {
		t.Fatal("expected miss for modified file")
	}
	if _, ok := c.GetSheet("/tmp/book.xlsx", "Other", mtime); ok {
		t.Fatal("expected miss for another sheet")
	}
}

func TestSheetCache_Expiry(t *testing.T) {
	c := openTestCache(t, 1*time.Second)
	mtime := time.Unix(1700000000, 0)
	c.PutSheet("/tmp/book.xlsx", "Sheet1", mtime, testSheet())

	// Backdate the entry.
	c.db.Exec("UPDATE sheet_cache SET created = ? WHERE path = ?",
		time.Now().Add(-2*time.Second).Unix(), "/tmp/book.xlsx")

	if _, ok := c.GetSheet("/tmp/book.xlsx", "Sheet1", mtime); ok {
		t.Fatal("expected stale miss")
	}
}

func TestSheetCache_CorruptPayload(t *testing.T) {
	c := openTestCache(t, 24*time.Hour)
	mtime := time.Unix(1700000000, 0)
	c.PutSheet("/tmp/book.xlsx", "Sheet1", mtime, testSheet())
	c.db.Exec("UPDATE sheet_cache SET payload = 'not json'")

	if _, ok := c.GetSheet("/tmp/book.xlsx", "Sheet1", mtime); ok {
		t.Fatal("expected miss on corrupt payload")
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	c.PutSheet("p", "s", time.Now(), testSheet())
	if _, ok := c.GetSheet("p", "s", time.Now()); ok {
		t.Error("nil cache should miss")
	}
	c.RecordOpen("p", "s")
	if files, err := c.Recent(5); err != nil || files != nil {
		t.Errorf("Recent() on nil = %v, %v", files, err)
	}
	if err := c.ForgetRecent("p"); err != nil {
		t.Error(err)
	}
	if err := c.Close(); err != nil {
		t.Error(err)
	}
}

func TestRecentFiles(t *testing.T) {
	c := openTestCache(t, 24*time.Hour)
	c.RecordOpen("/a.xlsx", "Sheet1")
	c.RecordOpen("/b.xlsx", "Data")
	c.RecordOpen("/c.csv", "")

	// Pin the order.
	for i, p := range []string{"/a.xlsx", "/b.xlsx", "/c.csv"} {
		c.db.Exec("UPDATE recent_files SET opened = ? WHERE path = ?", int64(i+1)*1000, p)
	}
	c.RecordOpen("/a.xlsx", "Sheet2")

	files, err := c.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(files) != 2 || files[0].Path != "/a.xlsx" || files[0].Sheet != "Sheet2" || files[1].Path != "/c.csv" {
		t.Fatalf("Recent(2) = %+v", files)
	}

	if err := c.ForgetRecent("/a.xlsx"); err != nil {
		t.Fatal(err)
	}
	files, _ = c.Recent(10)
	if len(files) != 2 || files[0].Path != "/c.csv" {
		t.Errorf("after forget: %+v", files)
	}
}

func TestPurgeStale(t *testing.T) {
	c := openTestCache(t, 1*time.Second)
	mtime := time.Unix(1700000000, 0)
	c.PutSheet("/old.xlsx", "Sheet1", mtime, testSheet())

	// Backdate.
	c.db.Exec("UPDATE sheet_cache SET created = ?", time.Now().Add(-2*time.Second).Unix())

	// Add a fresh entry.
	c.PutSheet("/new.xlsx", "Sheet1", mtime, testSheet())

	c.purgeStale()

	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM sheet_cache").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows after purge = %d, want 1", n)
	}
	if _, ok := c.GetSheet("/new.xlsx", "Sheet1", mtime); !ok {
		t.Error("fresh sheet should survive purge")
	}
}

func TestOpenMigratesLegacyTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE sheet_cache (path TEXT PRIMARY KEY, payload TEXT, created INTEGER)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	c, err := Open(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()
	if !hasColumn(c.db, "sheet_cache", "mtime") {
		t.Error("legacy sheet_cache was not rebuilt")
	}
}
