package main

import (
	"errors"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitGenerateError = 2
	ExitWriteError    = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		var cErr *commandError
		if errors.As(err, &cErr) {
			return cErr.ExitCode
		}
		return ExitConfigError
	}
	return ExitSuccess
}
