// Package storage persists games and positions in a SQLite database.
//
// Each record holds a move string in digit notation; the board is rebuilt
// by replaying it. Games and positions share one table and are told apart
// by their kind.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
)

// Kind distinguishes stored games from stored positions.
type Kind int

const (
	Game     Kind = iota // A complete game record
	Position             // A position to continue from
)

// String returns the name of the kind.
func (k Kind) String() string {
	if k == Position {
		return "position"
	}
	return "game"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseKind parses "game" or "position".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "game", "games":
		return Game, nil
	case "position", "positions":
		return Position, nil
	}
	return Game, fmt.Errorf("%w: unknown record kind %q", errors.ErrInvalidConfig, s)
}

const schema = `
CREATE TABLE IF NOT EXISTS store (
	file_id    INTEGER PRIMARY KEY,
	file_type  INTEGER NOT NULL,
	data       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// Record is one stored game or position.
type Record struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	Moves     string    `json:"moves"`
	CreatedAt time.Time `json:"createdAt"`
}

// Board replays the record's moves.
func (r Record) Board() (*board.Board, error) {
	return board.Parse(r.Moves)
}

// Store is a handle to the database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
// The path ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if path == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create schema in %s", path)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a move string and returns its id. The moves must replay
// legally from the empty board.
func (s *Store) Save(ctx context.Context, kind Kind, moves string) (int64, error) {
	if _, err := board.Parse(moves); err != nil {
		return 0, errors.Wrapf(err, "save %s", kind)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO store (file_type, data, created_at) VALUES (?, ?, ?)`,
		int(kind), moves, time.Now().UTC())
	if err != nil {
		return 0, errors.Wrapf(err, "save %s", kind)
	}
	return res.LastInsertId()
}

// SaveBoard stores the move history of b.
func (s *Store) SaveBoard(ctx context.Context, kind Kind, b *board.Board) (int64, error) {
	return s.Save(ctx, kind, b.String())
}

// List returns every record of the given kind, oldest first.
func (s *Store) List(ctx context.Context, kind Kind) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_id, file_type, data, created_at FROM store WHERE file_type = ? ORDER BY file_id`,
		int(kind))
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", kind)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "list %s", kind)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "list %s", kind)
	}
	return records, nil
}

// Get returns the record with the given id.
// It fails with ErrRecordNotFound when no such record exists.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT file_id, file_type, data, created_at FROM store WHERE file_id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("record %d: %w", id, errors.ErrRecordNotFound)
	}
	if err != nil {
		return Record{}, errors.Wrapf(err, "record %d", id)
	}
	return r, nil
}

// Delete removes the record with the given id.
// It fails with ErrRecordNotFound when no such record exists.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM store WHERE file_id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete record %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "delete record %d", id)
	}
	if n == 0 {
		return fmt.Errorf("record %d: %w", id, errors.ErrRecordNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord reads one row and checks that its moves still replay.
func scanRecord(sc scanner) (Record, error) {
	var (
		r    Record
		kind int
	)
	if err := sc.Scan(&r.ID, &kind, &r.Moves, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	r.Kind = Kind(kind)
	if _, err := board.ParseMoves(r.Moves); err != nil {
		return Record{}, errors.Wrapf(err, "record %d", r.ID)
	}
	return r, nil
}
