package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reports (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    persona     TEXT NOT NULL DEFAULT '',
    input       TEXT NOT NULL DEFAULT '{}',
    output      TEXT NOT NULL,
    created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind, created_at);
`
