package vcs

import (
	"context"
	"strings"

	"github.com/temirov/uncommitted/internal/execshell"
)

const (
	mercurialConfigFlagConstant         = "--config"
	mercurialDisableColorOptionConstant = "extensions.color=!"
	mercurialStatusSubcommandConstant   = "st"
	mercurialUntrackedPrefixConstant    = "?"
	reportLineIndentationConstant       = " "
)

// MercurialStatusAdapter reports modified files in Mercurial working copies.
type MercurialStatusAdapter struct {
	lineReader LineReader
}

// NewMercurialStatusAdapter constructs the Mercurial adapter.
func NewMercurialStatusAdapter(lineReader LineReader) *MercurialStatusAdapter {
	return &MercurialStatusAdapter{lineReader: lineReader}
}

// Status lists every tracked change, indented by one space. Untracked files are never reported.
func (adapter *MercurialStatusAdapter) Status(executionContext context.Context, directory string, ignoreSet *IgnoreSet, options StatusOptions) StatusResult {
	outputLines := adapter.lineReader.Lines(
		executionContext,
		execshell.CommandMercurial,
		directory,
		mercurialConfigFlagConstant, mercurialDisableColorOptionConstant, mercurialStatusSubcommandConstant,
	)

	var reportLines []string
	for _, outputLine := range outputLines {
		if strings.HasPrefix(outputLine, mercurialUntrackedPrefixConstant) {
			continue
		}
		reportLines = append(reportLines, reportLineIndentationConstant+outputLine)
	}
	return StatusResult{Lines: reportLines}
}
