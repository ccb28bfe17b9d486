package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per processed message file.
CREATE TABLE IF NOT EXISTS messages (
    message_id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_path TEXT NOT NULL UNIQUE,
    content_hash TEXT,
    language TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- One row per representation (html/text) that produced a detection,
-- or a 'none' row when nothing matched, so miss rates are queryable.
CREATE TABLE IF NOT EXISTS detections (
    detection_id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id INTEGER NOT NULL,
    representation TEXT NOT NULL,
    rule TEXT NOT NULL DEFAULT 'none',
    boundary TEXT NOT NULL DEFAULT 'unknown',
    depth INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (message_id) REFERENCES messages(message_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_detections_rule ON detections(rule);
CREATE INDEX IF NOT EXISTS idx_detections_message ON detections(message_id);
CREATE INDEX IF NOT EXISTS idx_messages_language ON messages(language);
`
