package invocation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Store is the optional host-side idempotence ledger: a cache of
// (event key, policy name) -> already-computed result, so a replayed
// at-least-once delivery short-circuits instead of re-running a policy
// whose side effects (an action, a queued notification) already
// happened. The orchestrator works without one; Build wires it in only
// when LEDGER_DSN is set.
type Store struct {
	db         *sql.DB
	isPostgres bool
}

// StoreConfig configures the idempotence ledger.
type StoreConfig struct {
	// DSN is the data-source name. A "postgres://" or "postgresql://"
	// prefix selects the pgx backend; anything else is treated as a
	// SQLite file path.
	DSN string
}

// rebind rewrites ? placeholders into $N placeholders for PostgreSQL.
func rebind(isPostgres bool, query string) string {
	if !isPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// NewStore opens (and migrates) the idempotence ledger.
func NewStore(cfg StoreConfig) (*Store, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "invocations.db"
	}
	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")

	var db *sql.DB
	var err error
	if isPostgres {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres ledger: %w", err)
		}
	} else {
		if dir := filepath.Dir(dsn); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create ledger directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite ledger: %w", err)
		}
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	pkDef := "INTEGER PRIMARY KEY AUTOINCREMENT"
	createdAt := "TEXT DEFAULT CURRENT_TIMESTAMP"
	if isPostgres {
		pkDef = "BIGSERIAL PRIMARY KEY"
		createdAt = "TIMESTAMPTZ DEFAULT NOW()"
	}
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS policy_results (
		id %s,
		event_key TEXT NOT NULL,
		policy_name TEXT NOT NULL,
		result_json TEXT NOT NULL,
		recorded_at %s,
		UNIQUE(event_key, policy_name)
	);
	`, pkDef, createdAt)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create policy_results table: %w", err)
	}

	return &Store{db: db, isPostgres: isPostgres}, nil
}

// Get reports whether a result was already recorded for (eventKey,
// policyName) and, if so, decodes it into dest.
func (s *Store) Get(ctx context.Context, eventKey, policyName string, dest any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, rebind(s.isPostgres, `
		SELECT result_json FROM policy_results WHERE event_key = ? AND policy_name = ?
	`), eventKey, policyName).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode ledger entry: %w", err)
	}
	return true, nil
}

// Put records result for (eventKey, policyName), replacing any prior
// entry — a replay that recomputes the same result is a harmless no-op
// write.
func (s *Store) Put(ctx context.Context, eventKey, policyName string, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode ledger entry: %w", err)
	}

	query := `INSERT INTO policy_results (event_key, policy_name, result_json) VALUES (?, ?, ?)
		ON CONFLICT (event_key, policy_name) DO UPDATE SET result_json = excluded.result_json`
	if !s.isPostgres {
		query = `INSERT INTO policy_results (event_key, policy_name, result_json) VALUES (?, ?, ?)
			ON CONFLICT(event_key, policy_name) DO UPDATE SET result_json = excluded.result_json`
	}
	_, err = s.db.ExecContext(ctx, rebind(s.isPostgres, query), eventKey, policyName, string(raw))
	if err != nil {
		return fmt.Errorf("write ledger entry: %w", err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
