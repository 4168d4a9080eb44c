package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// A signal-driven cancellation already reported itself; only
		// real failures need a line here.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "stagehand: %v\n", err)
		}
		os.Exit(1)
	}
}
