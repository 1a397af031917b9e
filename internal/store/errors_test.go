package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

func TestStoreError_WrapsServerError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "places_city_key"`,
		Detail:  "Key (city)=(London) already exists.",
	}

	err := storeError(pgErr)

	assert.ErrorIs(t, err, codetest.ErrStoreWrite)
	var got *pgconn.PgError
	assert.True(t, errors.As(err, &got))
	assert.Same(t, pgErr, got)

	var serverErr *ServerError
	assert.True(t, errors.As(err, &serverErr))
	assert.Equal(t, `duplicate key value violates unique constraint "places_city_key" (Key (city)=(London) already exists.) [SQLSTATE 23505, integrity constraint violation]`, serverErr.Error())
}

func TestStoreError_PassesOtherErrors(t *testing.T) {
	cause := errors.New("conn closed")

	err := storeError(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, codetest.ErrStoreWrite)
	assert.Equal(t, "store write failed: conn closed", err.Error())
}

func TestClassOf(t *testing.T) {
	tests := map[string]string{
		"22007": "data exception",
		"42P01": "syntax error or access rule violation",
		"XX000": "class XX",
		"":      "unknown class",
	}
	for code, want := range tests {
		assert.Equal(t, want, classOf(code), code)
	}
}
