// Package services implements the two batch jobs: LoadService transfers the
// places and people files into the store, ReportService aggregates the
// stored rows into the country summary file.
//
// Both open their own Store through an injected codetest.StoreOpener, use
// it exclusively, and close it before returning. Neither is safe for
// concurrent calls on the same instance.
package services
