package hunt

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Collection names. Each is a table of (id TEXT PRIMARY KEY, data JSONB)
// rows created by the migrations package.
const (
	CollectionTeams    = "teams"
	CollectionCards    = "cards"
	CollectionCounters = "counters"
)

// Store is a document store over SQLite. Documents are JSON-encoded Go
// structs addressed by (collection, id). All game-state mutation goes
// through RunTransaction; plain Get/Set/Delete exist for reads and for
// the admin-only bulk operations that tolerate weaker consistency.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get unmarshals the document into dest, or returns ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, id string, dest any) error {
	return getDoc(ctx, s.db, collection, id, dest)
}

// Set fully replaces the document (insert or overwrite, never a merge).
func (s *Store) Set(ctx context.Context, collection, id string, doc any) error {
	return setDoc(ctx, s.db, collection, id, doc)
}

// Delete removes the document, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, collection), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Conn so the document
// helpers work inside and outside transactions.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getDoc(ctx context.Context, q querier, collection, id string, dest any) error {
	var data string
	err := q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s WHERE id = ?`, collection), id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func setDoc(ctx context.Context, q querier, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, data) VALUES (?, jsonb(?))`, collection),
		id, string(data),
	)
	return err
}

// Teams returns all teams sorted by score descending.
func (s *Store) Teams(ctx context.Context) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT json(data) FROM teams
		ORDER BY json_extract(data, '$.score') DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var t Team
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Cards returns all cards ordered by id.
func (s *Store) Cards(ctx context.Context) ([]Card, error) {
	return s.queryCards(ctx, `SELECT json(data) FROM cards ORDER BY id`)
}

// UncaughtCards returns every card not yet claimed by a team.
func (s *Store) UncaughtCards(ctx context.Context) ([]Card, error) {
	return s.queryCards(ctx, `
		SELECT json(data) FROM cards
		WHERE json_extract(data, '$.isCaught') = 0
		ORDER BY id
	`)
}

// CardsCaughtBy returns the cards claimed by the given team.
func (s *Store) CardsCaughtBy(ctx context.Context, teamID string) ([]Card, error) {
	return s.queryCards(ctx, `
		SELECT json(data) FROM cards
		WHERE json_extract(data, '$.caughtByTeam') = ?
		ORDER BY id
	`, teamID)
}

func (s *Store) queryCards(ctx context.Context, query string, args ...any) ([]Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var c Card
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// Tx is the transactional handle passed to RunTransaction callbacks.
// Reads observe writes made earlier in the same transaction.
type Tx struct {
	conn *sql.Conn
}

// Get reads a document inside the transaction.
func (t *Tx) Get(ctx context.Context, collection, id string, dest any) error {
	return getDoc(ctx, t.conn, collection, id, dest)
}

// Set fully replaces a document inside the transaction.
func (t *Tx) Set(ctx context.Context, collection, id string, doc any) error {
	return setDoc(ctx, t.conn, collection, id, doc)
}

// txAttempts is the internal retry budget for contended transactions.
const txAttempts = 3

// RunTransaction runs fn inside a SQLite transaction. All writes commit
// atomically when fn returns nil and are discarded when it returns an
// error. Busy/locked failures are retried up to txAttempts with a short
// backoff; once the budget is exhausted the error is surfaced as
// ErrTransient, which is safe to retry since no writes were applied.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < txAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}

		err := s.runOnce(ctx, fn)
		if err == nil || !isBusy(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", ErrTransient, lastErr)
}

// runOnce executes fn inside BEGIN IMMEDIATE on a dedicated connection.
// Taking the write lock up front makes concurrent writers queue on the
// busy timeout instead of failing a deferred read-to-write upgrade, so
// racing catch transactions serialize and the loser re-reads committed
// state on retry.
func (s *Store) runOnce(ctx context.Context, fn func(tx *Tx) error) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	// busy_timeout is per connection and the pool hands out fresh ones,
	// so re-apply it here before taking the write lock.
	rows, err := conn.QueryContext(ctx, "PRAGMA busy_timeout=5000")
	if err != nil {
		return err
	}
	rows.Close()

	if _, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	if err = fn(&Tx{conn: conn}); err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx, "COMMIT")
	return err
}

// isBusy reports whether err is SQLite write contention. The libsql
// driver does not export typed errors, so match the message.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
