package testing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/testinfra"
)

// withStarter swaps the container starter and clears the cached result for
// the duration of the test.
func withStarter(t *testing.T, start func(context.Context) (*testinfra.PostgresContainer, error)) {
	t.Helper()

	prevStart := startContainer
	startContainer = start
	testContainerOnce = sync.Once{}
	testContainerConn, testContainerErr = "", nil

	t.Cleanup(func() {
		startContainer = prevStart
		testContainerOnce = sync.Once{}
		testContainerConn, testContainerErr = "", nil
	})
}

func TestGetOrStartTestContainer_PanicBecomesError(t *testing.T) {
	withStarter(t, func(context.Context) (*testinfra.PostgresContainer, error) {
		panic("rootless Docker not found")
	})

	conn, err := getOrStartTestContainer()
	if err == nil {
		t.Fatal("expected an error from a panicking starter")
	}
	if conn != "" {
		t.Errorf("conn = %q, want empty", conn)
	}
	if !strings.Contains(err.Error(), "rootless Docker not found") {
		t.Errorf("error %q does not carry the panic value", err)
	}

	// The result is cached; the starter is not retried.
	_, again := getOrStartTestContainer()
	if again != err {
		t.Errorf("second call returned %v, want cached %v", again, err)
	}
}

func TestGetOrStartTestContainer_StartErrorIsReturned(t *testing.T) {
	startErr := errors.New("no daemon")
	withStarter(t, func(context.Context) (*testinfra.PostgresContainer, error) {
		return nil, startErr
	})

	if _, err := getOrStartTestContainer(); !errors.Is(err, startErr) {
		t.Fatalf("err = %v, want %v", err, startErr)
	}
}

func TestGetTestConnectionString_SkipsWithoutDocker(t *testing.T) {
	t.Setenv(TestConnEnvVar, "")
	withStarter(t, func(context.Context) (*testinfra.PostgresContainer, error) {
		panic("rootless Docker not found")
	})

	var inner *testing.T
	t.Run("inner", func(t *testing.T) {
		inner = t
		GetTestConnectionString(t)
		t.Error("GetTestConnectionString returned instead of skipping")
	})
	if !inner.Skipped() {
		t.Error("inner test was not skipped")
	}
}

func TestGetTestConnectionString_PrefersEnv(t *testing.T) {
	t.Setenv(TestConnEnvVar, "postgres://u@example:5432/db")
	withStarter(t, func(context.Context) (*testinfra.PostgresContainer, error) {
		t.Fatal("starter must not run when the env var is set")
		return nil, nil
	})

	if got := GetTestConnectionString(t); got != "postgres://u@example:5432/db" {
		t.Errorf("got %q", got)
	}
}
