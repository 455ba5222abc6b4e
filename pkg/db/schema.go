package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Documents: one row per distinct file content
CREATE TABLE IF NOT EXISTS documents (
    doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL,
    content_hash TEXT NOT NULL UNIQUE,
    format TEXT,
    total_pages INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path);

-- Runs: one pipeline execution over a document
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    doc_id INTEGER NOT NULL,
    method TEXT NOT NULL,          -- winning strategy or fallback tag
    language TEXT,
    summary_pages TEXT,            -- JSON array of page numbers
    filtered_pages TEXT,           -- JSON array of page numbers
    summary_chars INTEGER NOT NULL DEFAULT 0,
    filtered_chars INTEGER NOT NULL DEFAULT 0,
    sentence_count INTEGER NOT NULL DEFAULT 0,
    target_sentences INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (doc_id) REFERENCES documents(doc_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_doc ON runs(doc_id);
CREATE INDEX IF NOT EXISTS idx_runs_method ON runs(method);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Run metrics: per-strategy scores of a run
CREATE TABLE IF NOT EXISTS run_metrics (
    metric_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    method TEXT NOT NULL,
    rouge1 REAL NOT NULL DEFAULT 0,
    rouge2 REAL NOT NULL DEFAULT 0,
    rouge_l REAL NOT NULL DEFAULT 0,
    readability REAL NOT NULL DEFAULT 0,
    compression_ratio REAL NOT NULL DEFAULT 0,
    sentence_count INTEGER NOT NULL DEFAULT 0,
    overall_score REAL,            -- NULL when the strategy failed
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, method)
);

CREATE INDEX IF NOT EXISTS idx_run_metrics_run ON run_metrics(run_id);
`
