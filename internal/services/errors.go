package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// withClass makes sure err carries sentinel, without wrapping it twice.
func withClass(err, sentinel error) error {
	if err == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func closeStore(ctx context.Context, store codetest.Store, logger codetest.Logger) {
	if err := store.Close(ctx); err != nil {
		logger.Error("failed to close database connection: %v", err)
	}
}
