package recorder

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaSQL string

// SQLiteSink mirrors ledger entries into an insert-only SQLite table.
type SQLiteSink struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSQLiteSink opens (or creates) the database at path and applies the schema.
func NewSQLiteSink(path string, logger logging.Logger) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// one writer keeps inserts strictly ordered
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	logger.Info("sqlite decision sink ready", logging.Field{Key: "path", Value: path})
	return &SQLiteSink{db: db, logger: logger}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Append(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e.Evaluation)
	if err != nil {
		return fmt.Errorf("encoding evaluation: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO decisions (evaluation_id, ledger_seq, recorded_at, is_approved, emergency, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Evaluation.ID, e.Seq, e.RecordedAt.UTC().Format(time.RFC3339Nano),
		boolInt(e.Evaluation.IsApproved), boolInt(e.Evaluation.EmergencyStatus), string(payload))
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

func (s *SQLiteSink) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT ledger_seq, recorded_at, payload FROM (
		   SELECT id, ledger_seq, recorded_at, payload FROM decisions ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e        Entry
			recorded string
			payload  string
		)
		if err := rows.Scan(&e.Seq, &recorded, &payload); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		var ev model.EthicalEvaluation
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("decoding decision payload: %w", err)
		}
		e.Evaluation = ev
		out = append(out, e)
	}
	return out, rows.Err()
}

// DB exposes the underlying handle for tests and maintenance tooling.
func (s *SQLiteSink) DB() *sql.DB { return s.db }

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
