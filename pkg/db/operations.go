package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// InsertMessage records a processed message file, returning its ID. An
// already-known path gets its hash and language refreshed and keeps its ID.
func (db *DB) InsertMessage(sourcePath, contentHash, language string) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT message_id FROM messages WHERE source_path = ?", sourcePath).Scan(&existingID)
	if err == nil {
		_, err = db.Exec(`
			UPDATE messages SET content_hash = ?, language = ?, updated_at = CURRENT_TIMESTAMP
			WHERE message_id = ?
		`, contentHash, language, existingID)
		if err != nil {
			return 0, fmt.Errorf("failed to update message: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing message: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO messages (source_path, content_hash, language)
		VALUES (?, ?, ?)
	`, sourcePath, contentHash, language)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}
	messageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get message ID: %w", err)
	}
	return messageID, nil
}

// InsertDetection records the detection outcome for one representation of a
// message. Rule "none" means nothing matched.
func (db *DB) InsertDetection(messageID int64, representation, rule, boundary string, depth int) error {
	if rule == "" {
		rule = "none"
	}
	if boundary == "" {
		boundary = "unknown"
	}
	_, err := db.Exec(`
		INSERT INTO detections (message_id, representation, rule, boundary, depth)
		VALUES (?, ?, ?, ?, ?)
	`, messageID, representation, rule, boundary, depth)
	if err != nil {
		return fmt.Errorf("failed to insert detection: %w", err)
	}
	return nil
}

// RuleCount is one row of the per-rule hit summary.
type RuleCount struct {
	Rule  string
	Count int
}

// RuleCounts summarizes how often each rule fired, most frequent first.
func (db *DB) RuleCounts() ([]RuleCount, error) {
	rows, err := db.Query(`
		SELECT rule, COUNT(*) AS hits
		FROM detections
		GROUP BY rule
		ORDER BY hits DESC, rule
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rule counts: %w", err)
	}
	defer rows.Close()

	var counts []RuleCount
	for rows.Next() {
		var rc RuleCount
		if err := rows.Scan(&rc.Rule, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan rule count: %w", err)
		}
		counts = append(counts, rc)
	}
	return counts, rows.Err()
}

// LanguageCounts summarizes authored-content languages across the corpus.
func (db *DB) LanguageCounts() (map[string]int, error) {
	rows, err := db.Query(`
		SELECT language, COUNT(*) FROM messages
		WHERE language IS NOT NULL AND language != ''
		GROUP BY language
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query language counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, fmt.Errorf("failed to scan language count: %w", err)
		}
		counts[lang] = n
	}
	return counts, rows.Err()
}
