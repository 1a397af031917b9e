package codetest

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Store is the relational store both jobs share. It is the only coordination
// point between Loader and Reporter.
//
// Implementations are NOT safe for concurrent use: each job opens its own
// Store, uses it exclusively, and closes it when done.
type Store interface {
	// Begin opens the unit of work for one table.
	Begin(ctx context.Context) (Tx, error)

	// CountPeopleByCountry inner-joins people to places on
	// place_of_birth = city and counts people per country.
	// Countries without a matched person are absent.
	CountPeopleByCountry(ctx context.Context) ([]CountryCount, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// Tx is an open unit of work. Each Insert is one discrete insert operation;
// nothing is visible to other sessions until Commit.
type Tx interface {
	InsertPlace(ctx context.Context, p Place) error
	InsertPerson(ctx context.Context, p Person) error
	Commit(ctx context.Context) error

	// Rollback discards uncommitted rows. Safe to call after Commit.
	Rollback(ctx context.Context) error
}

// StoreOpener opens a Store for the given connection parameters.
type StoreOpener func(ctx context.Context, cfg *ConnectionConfig) (Store, error)

// Connector establishes a single database connection.
type Connector interface {
	Connect(ctx context.Context) (*pgx.Conn, error)
}

// Loader transfers both input files into the store.
type Loader interface {
	Load(ctx context.Context, cfg LoadConfig) (LoadResult, error)
}

// Reporter aggregates the stored rows and writes the summary file.
type Reporter interface {
	Report(ctx context.Context, cfg ReportConfig) ([]CountryCount, error)
}
