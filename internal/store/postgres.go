// Package store implements codetest.Store on a single PostgreSQL session.
package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/db"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

//go:embed schema.sql
var schemaSQL string

const (
	insertPlaceSQL = `INSERT INTO places (city, county, country) VALUES ($1, $2, $3)`

	insertPersonSQL = `INSERT INTO people (given_name, family_name, date_of_birth, place_of_birth) VALUES ($1, $2, $3, $4)`

	// Unmatched people and places drop out of the inner join. A NULL country
	// counts together with the empty string.
	countPeopleByCountrySQL = `
SELECT COALESCE(p.country, '') AS country, COUNT(*) AS count
FROM people pe
JOIN places p ON pe.place_of_birth = p.city
GROUP BY COALESCE(p.country, '')
ORDER BY COALESCE(p.country, '') COLLATE "C"`
)

// Postgres is a codetest.Store bound to one connection. Not safe for
// concurrent use.
type Postgres struct {
	conn   *pgx.Conn
	closer io.Closer
}

// New wraps an open connection. Close closes it.
func New(conn *pgx.Conn) *Postgres {
	return &Postgres{conn: conn}
}

// Open connects through connector. If the connector holds resources of its
// own (the Cloud SQL dialer) they are released by Close.
func Open(ctx context.Context, connector codetest.Connector) (*Postgres, error) {
	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	s := New(conn)
	if c, ok := connector.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// Opener returns a codetest.StoreOpener that picks the connector for the
// configured auth method.
func Opener(logger codetest.Logger) codetest.StoreOpener {
	return func(ctx context.Context, cfg *codetest.ConnectionConfig) (codetest.Store, error) {
		connector, err := db.NewConnector(cfg, logger)
		if err != nil {
			return nil, err
		}
		return Open(ctx, connector)
	}
}

// EnsureSchema creates the places and people tables if they are absent.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", storeError(err))
	}
	return nil
}

func (s *Postgres) Begin(ctx context.Context) (codetest.Tx, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storeError(err))
	}
	return &pgTx{tx: tx}, nil
}

func (s *Postgres) CountPeopleByCountry(ctx context.Context) ([]codetest.CountryCount, error) {
	rows, err := s.conn.Query(ctx, countPeopleByCountrySQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codetest.ErrQueryFailed, describe(err))
	}

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[codetest.CountryCount])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codetest.ErrQueryFailed, describe(err))
	}
	return counts, nil
}

func (s *Postgres) Close(ctx context.Context) error {
	err := s.conn.Close(ctx)
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
		s.closer = nil
	}
	return err
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertPlace(ctx context.Context, p codetest.Place) error {
	if _, err := t.tx.Exec(ctx, insertPlaceSQL, p.City, p.County, p.Country); err != nil {
		return storeError(err)
	}
	return nil
}

// InsertPerson sends date_of_birth as text; the column type parses it.
func (t *pgTx) InsertPerson(ctx context.Context, p codetest.Person) error {
	if _, err := t.tx.Exec(ctx, insertPersonSQL, p.GivenName, p.FamilyName, p.DateOfBirth, p.PlaceOfBirth); err != nil {
		return storeError(err)
	}
	return nil
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed: %w", storeError(err))
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", codetest.ErrStoreWrite, describe(err))
}

// ServerError is a *pgconn.PgError rendered with its detail, hint and
// SQLSTATE class.
type ServerError struct {
	*pgconn.PgError
}

func (e *ServerError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	if e.Hint != "" {
		b.WriteString("; hint: ")
		b.WriteString(e.Hint)
	}
	fmt.Fprintf(&b, " [SQLSTATE %s, %s]", e.Code, classOf(e.Code))
	return b.String()
}

func (e *ServerError) Unwrap() error {
	return e.PgError
}

func describe(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	return &ServerError{PgError: pgErr}
}

// classOf names the SQLSTATE class of code.
func classOf(code string) string {
	if len(code) < 2 {
		return "unknown class"
	}
	switch code[:2] {
	case "08":
		return "connection exception"
	case "22":
		return "data exception"
	case "23":
		return "integrity constraint violation"
	case "42":
		return "syntax error or access rule violation"
	case "53":
		return "insufficient resources"
	case "57":
		return "operator intervention"
	default:
		return "class " + code[:2]
	}
}
