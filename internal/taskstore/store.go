// Package taskstore keeps a session-scoped history of finished tasks in
// SQLite.
package taskstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

// Store provides SQLite-backed task history
type Store struct {
	db *sql.DB
}

// New creates a Store at the given database path (":memory:" for a
// purely session-scoped history)
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// The in-memory database lives in a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a finished task into the history. Called from the
// queue's update path, so it only persists terminal states.
func (s *Store) Record(task *domain.Task) error {
	if !task.Status.Terminal() {
		return nil
	}

	var serviceUsed string
	var chunks int
	if tr, ok := task.Result.(*domain.TranslationResult); ok {
		serviceUsed = tr.ServiceUsed
		chunks = tr.ChunksTranslated
	}

	_, err := s.db.Exec(`
		INSERT INTO task_history (id, kind, title, input_length, status, error, service_used, chunks_translated, created_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			finished_at = excluded.finished_at
	`,
		task.ID,
		string(task.Kind),
		task.Title,
		len([]rune(task.Input)),
		string(task.Status),
		task.Err,
		serviceUsed,
		chunks,
		task.CreatedAt,
		task.FinishedAt,
	)
	return err
}

// Entry is one row of the task history
type Entry struct {
	ID               int64
	Kind             domain.TaskKind
	Title            string
	InputLength      int
	Status           domain.TaskStatus
	Error            string
	ServiceUsed      string
	ChunksTranslated int
	CreatedAt        time.Time
	FinishedAt       time.Time
}

// List returns history entries, most recently finished first
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, kind, title, input_length, status, error, service_used, chunks_translated, created_at, finished_at
		FROM task_history ORDER BY finished_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, status string
		var errMsg, service sql.NullString
		if err := rows.Scan(&e.ID, &kind, &e.Title, &e.InputLength, &status, &errMsg, &service, &e.ChunksTranslated, &e.CreatedAt, &e.FinishedAt); err != nil {
			return nil, err
		}
		e.Kind = domain.TaskKind(kind)
		e.Status = domain.TaskStatus(status)
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		if service.Valid {
			e.ServiceUsed = service.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Sweep deletes completed history entries finished before the cutoff,
// returning how many were removed. Failed entries are kept so their
// errors stay inspectable.
func (s *Store) Sweep(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := s.db.Exec(`DELETE FROM task_history WHERE status = ? AND finished_at < ?`,
		string(domain.StatusCompleted), cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
