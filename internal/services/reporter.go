package services

import (
	"context"
	"fmt"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/files/filesystem"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/report"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// ReportService implements codetest.Reporter.
type ReportService struct {
	openStore codetest.StoreOpener
	fs        filesystem.FileSystemProvider
	logger    codetest.Logger
}

// NewReportService panics on nil dependencies.
func NewReportService(openStore codetest.StoreOpener, fs filesystem.FileSystemProvider, logger codetest.Logger) *ReportService {
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReportService{openStore: openStore, fs: fs, logger: logger}
}

// Report counts people per country of birth and replaces the file at
// cfg.OutputPath with the result. The file is left untouched if the query
// fails.
func (s *ReportService) Report(ctx context.Context, cfg codetest.ReportConfig) ([]codetest.CountryCount, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := s.openStore(ctx, cfg.Connection)
	if err != nil {
		return nil, withClass(err, codetest.ErrConnectionFailed)
	}
	defer closeStore(ctx, store, s.logger)

	counts, err := store.CountPeopleByCountry(ctx)
	if err != nil {
		return nil, withClass(err, codetest.ErrQueryFailed)
	}
	s.logger.Verbose("Summary query returned %d countries", len(counts))

	data, err := report.Encode(counts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codetest.ErrOutputWrite, err)
	}

	if err := s.fs.WriteFile(cfg.OutputPath, data); err != nil {
		return nil, fmt.Errorf("%w: %w", codetest.ErrOutputWrite, err)
	}
	s.logger.Info("Wrote %d countries to %s", len(counts), cfg.OutputPath)

	return counts, nil
}
