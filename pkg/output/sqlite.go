package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dooblpls/json-gpo/pkg/projector"
)

// SQLiteWriter persists projected language sets into a single database so
// downstream tooling can query categories and policies across languages.
//
// Rows are keyed by (language, id) and upserted, so re-running a conversion
// into an existing database replaces stale rows instead of duplicating them.
type SQLiteWriter struct {
	db        *sql.DB
	dbPath    string
	mu        sync.Mutex
	closeOnce sync.Once

	categoryStmt *sql.Stmt
	policyStmt   *sql.Stmt
}

// SQLiteWriterConfig configures the SQLite sink.
type SQLiteWriterConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteWriter creates a SQLite sink with default settings.
func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	return NewSQLiteWriterWithConfig(SQLiteWriterConfig{DBPath: dbPath})
}

// NewSQLiteWriterWithConfig creates a SQLite sink with custom configuration.
func NewSQLiteWriterWithConfig(cfg SQLiteWriterConfig) (*SQLiteWriter, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	w := &SQLiteWriter{db: db, dbPath: cfg.DBPath}

	if err := w.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return w, nil
}

// initSchema creates the database schema if it doesn't exist.
func (w *SQLiteWriter) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		language     TEXT NOT NULL,
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		display_name TEXT NOT NULL,
		parent       TEXT,
		children     TEXT,
		policies     TEXT,
		written_at   INTEGER NOT NULL,
		PRIMARY KEY (language, id)
	);

	CREATE TABLE IF NOT EXISTS policies (
		language     TEXT NOT NULL,
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		class        TEXT NOT NULL,
		display_name TEXT NOT NULL,
		explain_text TEXT,
		supported_on TEXT,
		category_id  TEXT,
		registry     TEXT,
		presentation TEXT,
		written_at   INTEGER NOT NULL,
		PRIMARY KEY (language, id)
	);

	CREATE INDEX IF NOT EXISTS idx_policies_category ON policies(language, category_id);
	`

	_, err := w.db.Exec(schema)
	return err
}

// prepareStatements prepares the upsert statements for reuse.
func (w *SQLiteWriter) prepareStatements() error {
	var err error

	w.categoryStmt, err = w.db.Prepare(`
		INSERT INTO categories (language, id, name, display_name, parent, children, policies, written_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (language, id) DO UPDATE SET
			name = excluded.name,
			display_name = excluded.display_name,
			parent = excluded.parent,
			children = excluded.children,
			policies = excluded.policies,
			written_at = excluded.written_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare category statement: %w", err)
	}

	w.policyStmt, err = w.db.Prepare(`
		INSERT INTO policies (language, id, name, class, display_name, explain_text,
			supported_on, category_id, registry, presentation, written_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (language, id) DO UPDATE SET
			name = excluded.name,
			class = excluded.class,
			display_name = excluded.display_name,
			explain_text = excluded.explain_text,
			supported_on = excluded.supported_on,
			category_id = excluded.category_id,
			registry = excluded.registry,
			presentation = excluded.presentation,
			written_at = excluded.written_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare policy statement: %w", err)
	}

	return nil
}

// WriteSet persists one language set in a single transaction.
func (w *SQLiteWriter) WriteSet(ctx context.Context, set *projector.LanguageSet) error {
	if set == nil {
		return fmt.Errorf("language set cannot be nil")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()

	catStmt := tx.StmtContext(ctx, w.categoryStmt)
	for _, cat := range set.AllCategories {
		children, err := marshalList(cat.Children)
		if err != nil {
			return fmt.Errorf("failed to marshal children of %s: %w", cat.ID, err)
		}
		policies, err := marshalList(cat.Policies)
		if err != nil {
			return fmt.Errorf("failed to marshal policies of %s: %w", cat.ID, err)
		}
		if _, err := catStmt.ExecContext(ctx,
			set.Language, cat.ID, cat.Name, cat.DisplayName, cat.Parent,
			children, policies, now,
		); err != nil {
			return fmt.Errorf("failed to write category %s: %w", cat.ID, err)
		}
	}

	polStmt := tx.StmtContext(ctx, w.policyStmt)
	for _, pol := range set.AllPolicies {
		registry, err := marshalOptional(pol.Registry)
		if err != nil {
			return fmt.Errorf("failed to marshal registry of %s: %w", pol.ID, err)
		}
		presentation, err := marshalOptional(pol.Presentation)
		if err != nil {
			return fmt.Errorf("failed to marshal presentation of %s: %w", pol.ID, err)
		}
		if _, err := polStmt.ExecContext(ctx,
			set.Language, pol.ID, pol.Name, pol.Class, pol.DisplayName,
			pol.ExplainText, pol.SupportedOn, pol.CategoryID,
			registry, presentation, now,
		); err != nil {
			return fmt.Errorf("failed to write policy %s: %w", pol.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close releases the prepared statements and the database handle.
// Close is idempotent and safe to call multiple times.
func (w *SQLiteWriter) Close() error {
	var closeErr error

	w.closeOnce.Do(func() {
		if w.categoryStmt != nil {
			w.categoryStmt.Close()
		}
		if w.policyStmt != nil {
			w.policyStmt.Close()
		}
		if w.db != nil {
			_, _ = w.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = w.db.Close()
		}
	})

	return closeErr
}

func marshalList(list []string) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	return string(data), err
}

func marshalOptional[T any](v *T) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	return string(data), err
}
