package vcs

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/temirov/uncommitted/internal/execshell"
)

const (
	subversionStatusSubcommandConstant = "st"
	subversionVerboseFlagConstant      = "-v"
	subversionBannerPrefixConstant     = "Performing"
	subversionSkippedStatusesConstant  = "X?"
	subversionStatusWidthConstant      = 8
	subversionMaximumFieldsConstant    = 4
)

// SubversionStatusAdapter reports modified entries in Subversion working copies and records every listed
// path so that nested working copies already covered by a parent report are not interrogated again.
type SubversionStatusAdapter struct {
	lineReader LineReader
}

// NewSubversionStatusAdapter constructs the Subversion adapter.
func NewSubversionStatusAdapter(lineReader LineReader) *SubversionStatusAdapter {
	return &SubversionStatusAdapter{lineReader: lineReader}
}

// Status suppresses directories already listed by an enclosing working copy; otherwise it reports every
// entry with a non-blank status code as " <status><filename>".
func (adapter *SubversionStatusAdapter) Status(executionContext context.Context, directory string, ignoreSet *IgnoreSet, options StatusOptions) StatusResult {
	if ignoreSet.Contains(directory) {
		return StatusResult{Suppressed: true}
	}

	var reportLines []string
	for _, outputLine := range adapter.lineReader.Lines(executionContext, execshell.CommandSubversion, directory, subversionStatusSubcommandConstant, subversionVerboseFlagConstant) {
		if len(strings.TrimSpace(outputLine)) == 0 {
			continue
		}
		if strings.HasPrefix(outputLine, subversionBannerPrefixConstant) || strings.ContainsRune(subversionSkippedStatusesConstant, rune(outputLine[0])) {
			continue
		}

		statusCode, remainder := splitStatusColumns(outputLine)
		fields := splitLeadingFields(remainder, subversionMaximumFieldsConstant)
		if len(fields) == 0 {
			continue
		}
		filename := fields[len(fields)-1]

		trimmedStatusCode := strings.TrimSpace(statusCode)
		if consistsOnlyOf(trimmedStatusCode, options.IgnoreSubversionStates) {
			continue
		}

		ignoreSet.Add(filepath.Join(directory, filename), directory)
		if len(trimmedStatusCode) > 0 {
			reportLines = append(reportLines, reportLineIndentationConstant+statusCode+filename)
		}
	}

	return StatusResult{Lines: reportLines}
}

func splitStatusColumns(outputLine string) (string, string) {
	if len(outputLine) <= subversionStatusWidthConstant {
		return outputLine, ""
	}
	return outputLine[:subversionStatusWidthConstant], outputLine[subversionStatusWidthConstant:]
}

// splitLeadingFields splits text on whitespace into at most maximumFields fields; the last field keeps
// any interior whitespace.
func splitLeadingFields(text string, maximumFields int) []string {
	var fields []string
	remaining := strings.TrimLeftFunc(text, unicode.IsSpace)
	for len(remaining) > 0 {
		if len(fields) == maximumFields-1 {
			return append(fields, remaining)
		}
		fieldEnd := strings.IndexFunc(remaining, unicode.IsSpace)
		if fieldEnd < 0 {
			return append(fields, remaining)
		}
		fields = append(fields, remaining[:fieldEnd])
		remaining = strings.TrimLeftFunc(remaining[fieldEnd:], unicode.IsSpace)
	}
	return fields
}

// consistsOnlyOf reports whether a non-empty status code uses only characters from allowedCharacters.
func consistsOnlyOf(statusCode string, allowedCharacters string) bool {
	if len(statusCode) == 0 || len(allowedCharacters) == 0 {
		return false
	}
	for _, statusCharacter := range statusCode {
		if !strings.ContainsRune(allowedCharacters, statusCharacter) {
			return false
		}
	}
	return true
}
