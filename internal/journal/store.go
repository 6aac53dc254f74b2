// Package journal keeps an optional sqlite audit trail of completed move
// operations. Journal failures are reported but never fail a move.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type OperationKind string

const (
	KindMoveFile   OperationKind = "move-file"
	KindMoveFolder OperationKind = "move-folder"
	KindRewrite    OperationKind = "rewrite-imports"
)

type Operation struct {
	ID             string
	Kind           OperationKind
	OldModule      string
	NewModule      string
	FilesScanned   int
	FilesRewritten int
	FilesSkipped   int
	FailureCount   int
	Timestamp      time.Time
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("journal path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("journal path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite journal %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite journal %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize journal schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records one completed operation. A zero ID or timestamp is filled
// in here so callers only describe what happened.
func (s *Store) Append(op Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`INSERT INTO operations
  (id, kind, old_module, new_module, files_scanned, files_rewritten, files_skipped, failure_count, ts_utc)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID, string(op.Kind), op.OldModule, op.NewModule,
		op.FilesScanned, op.FilesRewritten, op.FilesSkipped, op.FailureCount,
		op.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append journal operation: %w", err)
	}
	return nil
}

// Recent returns the latest operations, newest first.
func (s *Store) Recent(limit int) ([]Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT id, kind, old_module, new_module,
  files_scanned, files_rewritten, files_skipped, failure_count, ts_utc
  FROM operations ORDER BY ts_utc DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		var kind, ts string
		if err := rows.Scan(&op.ID, &kind, &op.OldModule, &op.NewModule,
			&op.FilesScanned, &op.FilesRewritten, &op.FilesSkipped, &op.FailureCount, &ts); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		op.Kind = OperationKind(kind)
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			op.Timestamp = parsed
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
