// Package memory provides an in-process codetest.Store with the same
// join semantics as the PostgreSQL store, for tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

var errTxDone = errors.New("transaction has already been committed or rolled back")

// Store keeps committed rows in memory. Rows inserted through a Tx become
// visible on Commit only.
type Store struct {
	mu     sync.Mutex
	places []codetest.Place
	people []codetest.Person

	opens  int
	closes int

	failPlaceAt  int
	failPersonAt int
	insertErr    error
	commitErrs   []error
	queryErr     error
	openErr      error
}

func New() *Store {
	return &Store{}
}

// Opener returns a codetest.StoreOpener that always hands out s, so that
// a load followed by a summary sees the same rows.
func (s *Store) Opener() codetest.StoreOpener {
	return func(context.Context, *codetest.ConnectionConfig) (codetest.Store, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.openErr != nil {
			return nil, s.openErr
		}
		s.opens++
		return s, nil
	}
}

// FailOpen makes the opener return err.
func (s *Store) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// FailPlaceInsert makes the nth place insert (1-based, counted across
// transactions) return err.
func (s *Store) FailPlaceInsert(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPlaceAt, s.insertErr = n, err
}

// FailPersonInsert makes the nth person insert (1-based) return err.
func (s *Store) FailPersonInsert(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPersonAt, s.insertErr = n, err
}

// FailCommits sets the results of the next commits in order. A nil entry
// lets that commit succeed.
func (s *Store) FailCommits(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErrs = errs
}

// FailQuery makes CountPeopleByCountry return err.
func (s *Store) FailQuery(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryErr = err
}

// Seed commits rows directly, bypassing transactions.
func (s *Store) Seed(places []codetest.Place, people []codetest.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = append(s.places, places...)
	s.people = append(s.people, people...)
}

// Places returns a copy of the committed places.
func (s *Store) Places() []codetest.Place {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]codetest.Place(nil), s.places...)
}

// People returns a copy of the committed people.
func (s *Store) People() []codetest.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]codetest.Person(nil), s.people...)
}

// Opens and Closes report how often the store was handed out and released.
func (s *Store) Opens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens
}

func (s *Store) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func (s *Store) Begin(context.Context) (codetest.Tx, error) {
	return &tx{store: s}, nil
}

// CountPeopleByCountry inner-joins people to places on exact string equality.
// Every place row whose city matches contributes, so duplicate cities
// multiply. Output is ordered by country in byte order.
func (s *Store) CountPeopleByCountry(context.Context) ([]codetest.CountryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queryErr != nil {
		return nil, s.queryErr
	}

	countriesByCity := make(map[string][]string)
	for _, p := range s.places {
		countriesByCity[p.City] = append(countriesByCity[p.City], p.Country)
	}

	counts := make(map[string]int64)
	for _, person := range s.people {
		for _, country := range countriesByCity[person.PlaceOfBirth] {
			counts[country]++
		}
	}

	result := make([]codetest.CountryCount, 0, len(counts))
	for country, n := range counts {
		result = append(result, codetest.CountryCount{Country: country, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Country < result[j].Country })
	return result, nil
}

func (s *Store) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

type tx struct {
	store  *Store
	places []codetest.Place
	people []codetest.Person
	done   bool
}

func (t *tx) InsertPlace(_ context.Context, p codetest.Place) error {
	if t.done {
		return errTxDone
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failPlaceAt > 0 {
		s.failPlaceAt--
		if s.failPlaceAt == 0 {
			return s.insertErr
		}
	}
	t.places = append(t.places, p)
	return nil
}

func (t *tx) InsertPerson(_ context.Context, p codetest.Person) error {
	if t.done {
		return errTxDone
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failPersonAt > 0 {
		s.failPersonAt--
		if s.failPersonAt == 0 {
			return s.insertErr
		}
	}
	t.people = append(t.people, p)
	return nil
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.commitErrs) > 0 {
		err := s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
		if err != nil {
			return err
		}
	}
	s.places = append(s.places, t.places...)
	s.people = append(s.people, t.people...)
	return nil
}

func (t *tx) Rollback(context.Context) error {
	t.done = true
	t.places, t.people = nil, nil
	return nil
}
