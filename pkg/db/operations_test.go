package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return database
}

func TestInsertMessage(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id1, err := db.InsertMessage("inbox/a.eml", "hash-1", "English")
	if err != nil {
		t.Fatalf("InsertMessage() failed: %v", err)
	}
	if id1 == 0 {
		t.Fatal("InsertMessage() returned 0 ID")
	}

	// Re-inserting the same path keeps the ID and refreshes the metadata.
	id2, err := db.InsertMessage("inbox/a.eml", "hash-2", "French")
	if err != nil {
		t.Fatalf("InsertMessage() on existing path failed: %v", err)
	}
	if id2 != id1 {
		t.Errorf("re-insert got ID %d, want %d", id2, id1)
	}

	var hash, language string
	err = db.QueryRow("SELECT content_hash, language FROM messages WHERE message_id = ?", id1).
		Scan(&hash, &language)
	if err != nil {
		t.Fatalf("failed to query message: %v", err)
	}
	if hash != "hash-2" {
		t.Errorf("content_hash = %q, want %q", hash, "hash-2")
	}
	if language != "French" {
		t.Errorf("language = %q, want %q", language, "French")
	}
}

func TestInsertDetectionDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, err := db.InsertMessage("inbox/b.eml", "hash", "")
	if err != nil {
		t.Fatalf("InsertMessage() failed: %v", err)
	}
	if err := db.InsertDetection(id, "text", "", "", 0); err != nil {
		t.Fatalf("InsertDetection() failed: %v", err)
	}

	var rule, boundary string
	err = db.QueryRow("SELECT rule, boundary FROM detections WHERE message_id = ?", id).
		Scan(&rule, &boundary)
	if err != nil {
		t.Fatalf("failed to query detection: %v", err)
	}
	if rule != "none" {
		t.Errorf("rule = %q, want %q", rule, "none")
	}
	if boundary != "unknown" {
		t.Errorf("boundary = %q, want %q", boundary, "unknown")
	}
}

func TestRuleCounts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		path string
		rule string
	}{
		{path: "a.eml", rule: "gmail-quote"},
		{path: "b.eml", rule: "gmail-quote"},
		{path: "c.eml", rule: "outlook-separator"},
		{path: "d.eml", rule: ""},
	}
	for _, tt := range tests {
		id, err := db.InsertMessage(tt.path, "h", "")
		if err != nil {
			t.Fatalf("InsertMessage(%s) failed: %v", tt.path, err)
		}
		if err := db.InsertDetection(id, "html", tt.rule, "reply", 0); err != nil {
			t.Fatalf("InsertDetection(%s) failed: %v", tt.path, err)
		}
	}

	counts, err := db.RuleCounts()
	if err != nil {
		t.Fatalf("RuleCounts() failed: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("got %d rules, want 3: %+v", len(counts), counts)
	}
	if counts[0].Rule != "gmail-quote" || counts[0].Count != 2 {
		t.Errorf("top rule = %+v, want gmail-quote x2", counts[0])
	}
}

func TestLanguageCounts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, m := range []struct{ path, lang string }{
		{path: "a.eml", lang: "English"},
		{path: "b.eml", lang: "English"},
		{path: "c.eml", lang: "French"},
		{path: "d.eml", lang: ""},
	} {
		if _, err := db.InsertMessage(m.path, "h", m.lang); err != nil {
			t.Fatalf("InsertMessage(%s) failed: %v", m.path, err)
		}
	}

	counts, err := db.LanguageCounts()
	if err != nil {
		t.Fatalf("LanguageCounts() failed: %v", err)
	}
	if counts["English"] != 2 || counts["French"] != 1 {
		t.Errorf("counts = %v, want English:2 French:1", counts)
	}
	if _, ok := counts[""]; ok {
		t.Error("empty language should not be counted")
	}
}

func TestForeignKeyCascade(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, err := db.InsertMessage("gone.eml", "h", "")
	if err != nil {
		t.Fatalf("InsertMessage() failed: %v", err)
	}
	if err := db.InsertDetection(id, "html", "gmail-quote", "reply", 0); err != nil {
		t.Fatalf("InsertDetection() failed: %v", err)
	}
	if _, err := db.Exec("DELETE FROM messages WHERE message_id = ?", id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM detections WHERE message_id = ?", id).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("detections remaining = %d, want 0 (cascade delete)", n)
	}
}
