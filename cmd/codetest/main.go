package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/cli"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(codetest.ExitPanic)
		}
	}()

	if os.Getenv("CODETEST_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(codetest.ExitCodeForError(err))
	}
}
