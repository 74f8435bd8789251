package taskstore

const schema = `
CREATE TABLE IF NOT EXISTS task_history (
    id INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    title TEXT NOT NULL,
    input_length INTEGER NOT NULL,
    status TEXT NOT NULL,
    error TEXT,
    service_used TEXT,
    chunks_translated INTEGER,
    created_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_status ON task_history(status);
CREATE INDEX IF NOT EXISTS idx_history_finished_at ON task_history(finished_at);
`
