package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/repos/shared"
)

const (
	locateNullSeparatorFlagConstant    = "-0"
	locateNullSeparatorConstant        = "\x00"
	locateDirectChildPatternConstant   = `%s\/%s`
	locateNestedChildPatternConstant   = `%s\/*/%s`
	locateUnavailableMessageConstant   = "File index lookup produced no results"
	locateRejectedMatchMessageConstant = "Ignoring file index match that is not a real directory"
	logFieldRootPathConstant           = "root"
	logFieldMatchPathConstant          = "match"
)

// globEscaper escapes the characters that locate(1) treats as glob syntax.
var globEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `?`, `\?`)

// CommandOutputProvider runs a command and returns its raw standard output.
type CommandOutputProvider interface {
	Output(executionContext context.Context, commandName execshell.CommandName, workingDirectory string, arguments ...string) (string, bool)
}

// LocateRepositoryLocator queries the system file index instead of walking the tree.
// Results may be stale; an unavailable index yields no repositories.
type LocateRepositoryLocator struct {
	outputProvider CommandOutputProvider
	fileSystem     shared.FileSystem
	logger         *zap.Logger
}

// NewLocateRepositoryLocator constructs an index-backed locator.
func NewLocateRepositoryLocator(outputProvider CommandOutputProvider, fileSystem shared.FileSystem, logger *zap.Logger) *LocateRepositoryLocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocateRepositoryLocator{outputProvider: outputProvider, fileSystem: fileSystem, logger: logger}
}

// LocateRepositories issues one locate(1) query covering every marker directory beneath rootPath.
func (locator *LocateRepositoryLocator) LocateRepositories(executionContext context.Context, rootPath string) ([]shared.RepositoryReference, error) {
	arguments := append([]string{locateNullSeparatorFlagConstant}, BuildLocatePatterns(rootPath)...)

	rawOutput, succeeded := locator.outputProvider.Output(executionContext, execshell.CommandLocate, "", arguments...)
	if !succeeded {
		locator.logger.Debug(locateUnavailableMessageConstant, zap.String(logFieldRootPathConstant, rootPath))
		return nil, nil
	}

	var references []shared.RepositoryReference
	for _, matchedPath := range strings.Split(strings.Trim(rawOutput, locateNullSeparatorConstant), locateNullSeparatorConstant) {
		if len(matchedPath) == 0 {
			continue
		}
		kind, isMarker := shared.KindForMarkerDirectory(filepath.Base(matchedPath))
		if !isMarker {
			continue
		}
		matchInfo, statError := locator.fileSystem.Lstat(matchedPath)
		if statError != nil || !matchInfo.IsDir() {
			locator.logger.Debug(locateRejectedMatchMessageConstant, zap.String(logFieldMatchPathConstant, matchedPath))
			continue
		}
		references = append(references, shared.RepositoryReference{Directory: filepath.Dir(matchedPath), Kind: kind})
	}

	return references, nil
}

// BuildLocatePatterns returns the two glob patterns per marker directory: one for the marker directly
// under rootPath and one for markers at any depth below it. The escaped slash anchors the pattern to the
// full path so that names such as .hgignore never match.
func BuildLocatePatterns(rootPath string) []string {
	escapedRoot := globEscaper.Replace(rootPath)
	kinds := shared.VersionControlKinds()
	patterns := make([]string, 0, 2*len(kinds))
	for _, kind := range kinds {
		escapedMarker := globEscaper.Replace(kind.MarkerDirectoryName())
		patterns = append(patterns,
			fmt.Sprintf(locateDirectChildPatternConstant, escapedRoot, escapedMarker),
			fmt.Sprintf(locateNestedChildPatternConstant, escapedRoot, escapedMarker),
		)
	}
	return patterns
}
