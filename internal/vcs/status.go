package vcs

import (
	"context"

	"github.com/temirov/uncommitted/internal/execshell"
)

// LineReader runs a version control tool and returns its decoded output lines.
// Failures of any kind produce no lines.
type LineReader interface {
	Lines(executionContext context.Context, commandName execshell.CommandName, workingDirectory string, arguments ...string) []string
}

// StatusOptions tunes what the adapters report.
type StatusOptions struct {
	Untracked              bool
	NonTracking            bool
	Stash                  bool
	IgnoreSubversionStates string
}

// StatusResult is the normalized outcome of interrogating one working copy.
// Suppressed means nothing is reported for the working copy, not even in verbose mode.
// Empty Lines with Suppressed unset means the working copy is clean.
type StatusResult struct {
	Lines           []string
	Suppressed      bool
	Subrepositories []string
}

// StatusAdapter interrogates a single kind of working copy.
type StatusAdapter interface {
	Status(executionContext context.Context, directory string, ignoreSet *IgnoreSet, options StatusOptions) StatusResult
}
