// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrNoSuchTable is returned (wrapped) by [Store] implementations when a
// statement references a partition table that has not been created yet.
// [Consumer.Fetch] treats this as an empty result rather than an error, per
// spec: a topic with no produced messages is a valid empty stream.
var ErrNoSuchTable = errors.New("klite: no such table")

// Statement is a single parameterized SQL statement.
type Statement struct {
	SQL  string
	Args []any
}

// Result reports the outcome of executing a single [Statement].
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Store is the thin adapter over the backing SQL engine that [Producer] and
// [Consumer] build on. Any engine offering ordered auto-incrementing row ids
// and atomic batched writes (SQLite-class engines) can implement it.
type Store interface {
	// Execute runs a single statement and reports its result.
	Execute(ctx context.Context, stmt Statement) (Result, error)

	// Batch runs every statement atomically: either all commit or none do.
	// The returned slice has one Result per input statement, in order; for
	// a multi-row insert batch, each Result's LastInsertID is populated so
	// callers can derive row N's id as firstID + N without re-querying.
	Batch(ctx context.Context, stmts []Statement) ([]Result, error)

	// Query runs a single read-only statement and returns the resulting
	// rows. Callers must close the returned *sql.Rows.
	Query(ctx context.Context, stmt Statement) (*sql.Rows, error)
}

// sqlStore adapts a [database/sql.DB] to [Store].
type sqlStore struct {
	db *sql.DB
}

// NewStore wraps db as a [Store]. db is expected to be backed by a
// SQLite-class driver (e.g. modernc.org/sqlite); db should typically be
// configured with a single open connection, since SQLite serializes writes
// at the file/connection level and klite relies on that serialization for
// the auto-increment id guarantees described in spec §5.
func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Execute(ctx context.Context, stmt Statement) (Result, error) {
	res, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return Result{}, classifyErr(err)
	}
	return resultOf(res)
}

func (s *sqlStore) Batch(ctx context.Context, stmts []Statement) ([]Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classifyErr(err)
	}

	results := make([]Result, len(stmts))
	for i, stmt := range stmts {
		res, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			_ = tx.Rollback()
			return nil, classifyErr(err)
		}

		r, err := resultOf(res)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		results[i] = r
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyErr(err)
	}

	// The driver only guarantees LastInsertId accuracy for the statement
	// that produced it; for a multi-row insert batch within one
	// transaction, SQLite's rowid allocation is sequential, so every
	// statement's own LastInsertId from ExecContext is already correct.
	// If a driver only reliably reports the first, derive the rest.
	if len(results) > 1 && allZeroButFirst(results) {
		first := results[0].LastInsertID
		for i := range results {
			results[i].LastInsertID = first + int64(i)
		}
	}

	return results, nil
}

func (s *sqlStore) Query(ctx context.Context, stmt Statement) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, classifyErr(err)
	}
	return rows, nil
}

func resultOf(res sql.Result) (Result, error) {
	id, err := res.LastInsertId()
	if err != nil {
		// Not every statement produces an insert id (UPDATE, DDL); that's
		// fine, callers that care about LastInsertID only do so for inserts.
		id = 0
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}
	return Result{LastInsertID: id, RowsAffected: affected}, nil
}

func allZeroButFirst(results []Result) bool {
	if results[0].LastInsertID == 0 {
		return false
	}
	for _, r := range results[1:] {
		if r.LastInsertID != 0 {
			return false
		}
	}
	return true
}

func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "no such table") {
		return errors.Join(ErrNoSuchTable, err)
	}
	return err
}

// IsNoSuchTable reports whether err indicates a missing partition table.
func IsNoSuchTable(err error) bool {
	return errors.Is(err, ErrNoSuchTable)
}
