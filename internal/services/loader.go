package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/checksum"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/files/filesystem"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/files/table"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// LoadService implements codetest.Loader.
type LoadService struct {
	openStore codetest.StoreOpener
	fs        filesystem.FileSystemProvider
	logger    codetest.Logger
}

// NewLoadService panics on nil dependencies; they are wiring mistakes, not
// runtime conditions.
func NewLoadService(openStore codetest.StoreOpener, fs filesystem.FileSystemProvider, logger codetest.Logger) *LoadService {
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LoadService{openStore: openStore, fs: fs, logger: logger}
}

// Load inserts every places row and commits, then every people row and
// commits. Any failure stops the run: the table being loaded is rolled back,
// places already committed stay committed.
func (s *LoadService) Load(ctx context.Context, cfg codetest.LoadConfig) (codetest.LoadResult, error) {
	var result codetest.LoadResult

	if err := cfg.Validate(); err != nil {
		return result, err
	}

	store, err := s.openStore(ctx, cfg.Connection)
	if err != nil {
		return result, withClass(err, codetest.ErrConnectionFailed)
	}
	defer closeStore(ctx, store, s.logger)

	s.logger.Verbose("Loading %s into %s", cfg.PlacesPath, codetest.PlacesTable)
	result.Places, result.PlacesSHA256, err = s.loadTable(ctx, store, cfg.PlacesPath, cfg.Delimiter, codetest.PlaceColumns,
		func(tx codetest.Tx, rec table.Record) error {
			return tx.InsertPlace(ctx, codetest.Place{
				City:    rec.Get(codetest.ColumnCity),
				County:  rec.Get(codetest.ColumnCounty),
				Country: rec.Get(codetest.ColumnCountry),
			})
		})
	if err != nil {
		return result, err
	}
	s.logger.Info("Committed %d rows to %s (%s sha256 %s)", result.Places, codetest.PlacesTable, cfg.PlacesPath, result.PlacesSHA256)

	s.logger.Verbose("Loading %s into %s", cfg.PeoplePath, codetest.PeopleTable)
	result.People, result.PeopleSHA256, err = s.loadTable(ctx, store, cfg.PeoplePath, cfg.Delimiter, codetest.PersonColumns,
		func(tx codetest.Tx, rec table.Record) error {
			return tx.InsertPerson(ctx, codetest.Person{
				GivenName:    rec.Get(codetest.ColumnGivenName),
				FamilyName:   rec.Get(codetest.ColumnFamilyName),
				DateOfBirth:  rec.Get(codetest.ColumnDateOfBirth),
				PlaceOfBirth: rec.Get(codetest.ColumnPlaceOfBirth),
			})
		})
	if err != nil {
		return result, err
	}
	s.logger.Info("Committed %d rows to %s (%s sha256 %s)", result.People, codetest.PeopleTable, cfg.PeoplePath, result.PeopleSHA256)

	return result, nil
}

// loadTable streams one file into one transaction. It returns the number of
// rows committed and the checksum of the file, both zero on any error.
func (s *LoadService) loadTable(
	ctx context.Context,
	store codetest.Store,
	path string,
	delimiter rune,
	columns []string,
	insert func(codetest.Tx, table.Record) error,
) (int, string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", codetest.ErrInputUnreadable, err)
	}
	defer f.Close()

	sum := checksum.NewReader(f)
	r, err := table.NewReader(sum, delimiter, columns)
	if err != nil {
		return 0, "", inputError(path, err)
	}
	s.logger.Verbose("%s columns: %s", path, strings.Join(r.Header(), ", "))

	tx, err := store.Begin(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", path, withClass(err, codetest.ErrStoreWrite))
	}

	n, err := insertAll(r, tx, path, insert)
	if err == nil {
		err = tx.Commit(ctx)
		if err != nil {
			err = fmt.Errorf("%s: %w", path, withClass(err, codetest.ErrStoreWrite))
		}
	}
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error("rollback of %s failed: %v", path, rbErr)
		}
		return 0, "", err
	}

	s.logger.Verbose("Read %d bytes from %s", sum.Size(), path)
	return n, sum.Sum(), nil
}

func insertAll(r *table.Reader, tx codetest.Tx, path string, insert func(codetest.Tx, table.Record) error) (int, error) {
	n := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, inputError(path, err)
		}

		if err := insert(tx, rec); err != nil {
			return n, fmt.Errorf("%s line %d: %w", path, rec.Line, withClass(err, codetest.ErrStoreWrite))
		}
		n++
	}
}

// inputError classifies a table read failure: syntax and header problems
// are invalid input, anything else means the file could not be read.
func inputError(path string, err error) error {
	switch {
	case errors.Is(err, table.ErrMalformed),
		errors.Is(err, table.ErrMissingHeader),
		errors.Is(err, table.ErrMissingColumn),
		errors.Is(err, table.ErrDuplicateColumn):
		return fmt.Errorf("%s: %w: %w", path, codetest.ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w: %w", path, codetest.ErrInputUnreadable, err)
	}
}
