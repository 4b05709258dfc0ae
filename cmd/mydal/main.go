package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mydal-project/mydal/internal/cli"
	"github.com/mydal-project/mydal/pkg/mydal"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(mydal.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mydal.ExitCodeForError(err))
	}
}
