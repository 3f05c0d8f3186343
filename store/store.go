// Package store persists calculation history and variables in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
)

// ErrNotFound is returned when a requested history entry does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is a database of calculation history and variables.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	input TEXT NOT NULL,
	params TEXT NOT NULL,
	answer TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS variables (
	display TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	ord INTEGER NOT NULL
);
`

// Open opens the database at path, creating it and its tables if necessary.
// The path ":memory:" opens a private in-memory database. If log is nil,
// nothing is logged.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writers and keeps in-memory databases
	// alive between statements.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db, path: path, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Entry is a calculation in the history. Later entries have greater
// positions.
type Entry struct {
	Position int64
	ID       string
	Input    calculator.Expression
	Params   *calculator.Params
	Answer   arith.Complex
	Created  time.Time
}

// Result returns the entry as a calculation result.
func (e Entry) Result() *calculator.Result {
	return &calculator.Result{Input: e.Input, Answer: e.Answer, Params: e.Params}
}

// AddResult appends a result to the history.
func (s *Store) AddResult(ctx context.Context, r *calculator.Result) (Entry, error) {
	e := Entry{
		ID:      uuid.New().String(),
		Input:   r.Input,
		Params:  r.Params,
		Answer:  r.Answer,
		Created: time.Now().UTC(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO history (id, input, params, answer, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, EncodeExpression(e.Input), EncodeParams(e.Params), EncodeComplex(e.Answer), e.Created,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting history: %w", err)
	}
	if e.Position, err = res.LastInsertId(); err != nil {
		return Entry{}, fmt.Errorf("getting history position: %w", err)
	}
	return e, nil
}

// Record appends a result to the history. It allows a Store to serve as the
// history of a calculator.Manager.
func (s *Store) Record(ctx context.Context, r *calculator.Result) error {
	_, err := s.AddResult(ctx, r)
	return err
}

var _ calculator.History = (*Store)(nil)

const historyColumns = `position, id, input, params, answer, created_at`

// History returns up to limit entries, newest first. If limit is not
// positive, it returns all entries.
func (s *Store) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM history ORDER BY position DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	var r []Entry
	for rows.Next() {
		e, err := s.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		r = append(r, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return r, nil
}

// Newest returns the most recent entry. If the history is empty, the error
// is ErrNotFound.
func (s *Store) Newest(ctx context.Context) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM history ORDER BY position DESC LIMIT 1`)
	e, err := s.scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Delete removes the entry with the given ID. If there is no such entry, the
// error is ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes all history.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanEntry(row scanner) (Entry, error) {
	var (
		e                     Entry
		input, params, answer string
	)
	if err := row.Scan(&e.Position, &e.ID, &input, &params, &answer, &e.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning history entry: %w", err)
	}
	var err error
	if e.Input, err = DecodeExpression(input); err != nil {
		return Entry{}, fmt.Errorf("history entry %s: %w", e.ID, err)
	}
	if e.Answer, err = DecodeComplex(answer); err != nil {
		return Entry{}, fmt.Errorf("history entry %s: %w", e.ID, err)
	}
	var dropped int
	e.Params, dropped, err = DecodeParams(params)
	if err != nil || dropped > 0 {
		s.log.Warn("invalid params in history entry",
			slog.String("id", e.ID),
			slog.Int("dropped", dropped),
			slog.Any("err", err),
		)
	}
	return e, nil
}

// Variable is a stored variable binding. Order is the position of the
// variable in listings.
type Variable struct {
	Unit  calculator.Unit
	Value arith.Complex
	Order int
}

// PopulateDefaults stores zero for every user variable that has no stored
// value.
func (s *Store) PopulateDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("populating variables: %w", err)
	}
	defer tx.Rollback()
	zero := EncodeComplex(arith.Complex{})
	for i, u := range calculator.Variables() {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO variables (display, value, ord) VALUES (?, ?, ?)`,
			u.String(), zero, i)
		if err != nil {
			return fmt.Errorf("populating variable %s: %w", u, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("populating variables: %w", err)
	}
	return nil
}

// Variables returns the stored variables in order. Rows that do not hold a
// valid variable are skipped.
func (s *Store) Variables(ctx context.Context) ([]Variable, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT display, value, ord FROM variables ORDER BY ord ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying variables: %w", err)
	}
	defer rows.Close()
	var r []Variable
	for rows.Next() {
		var (
			disp, val string
			v         Variable
		)
		if err := rows.Scan(&disp, &val, &v.Order); err != nil {
			return nil, fmt.Errorf("scanning variable: %w", err)
		}
		u, ok := calculator.Lookup(disp)
		if !ok || !u.IsVariable() {
			s.log.Warn("skipping unknown variable", slog.String("display", disp))
			continue
		}
		x, err := DecodeComplex(val)
		if err == nil {
			x, err = arith.Finish(x, nil)
		}
		if err != nil {
			s.log.Warn("skipping invalid variable", slog.String("display", disp), slog.Any("err", err))
			continue
		}
		v.Unit, v.Value = u, x
		r = append(r, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading variables: %w", err)
	}
	return r, nil
}

// SetVariable stores the value of a variable.
func (s *Store) SetVariable(ctx context.Context, u calculator.Unit, v arith.Complex) error {
	if !u.IsVariable() {
		return &calculator.VariableKeyError{Unit: u}
	}
	ord := slices.Index(calculator.Variables(), u)
	if ord < 0 {
		ord = len(calculator.Variables())
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO variables (display, value, ord) VALUES (?, ?, ?)
		ON CONFLICT(display) DO UPDATE SET value = excluded.value`,
		u.String(), EncodeComplex(v), ord)
	if err != nil {
		return fmt.Errorf("setting variable %s: %w", u, err)
	}
	return nil
}

// Params returns params with the given angle unit binding every stored
// variable.
func (s *Store) Params(ctx context.Context, angle arith.AngleUnit) (*calculator.Params, error) {
	vars, err := s.Variables(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[calculator.Unit]arith.Complex, len(vars))
	for _, v := range vars {
		m[v.Unit] = v.Value
	}
	return calculator.NewParams(calculator.Angle(angle), calculator.SetVars(m))
}
