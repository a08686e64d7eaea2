package scan

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/uncommitted/internal/repos/shared"
	pathutils "github.com/temirov/uncommitted/internal/utils/path"
	"github.com/temirov/uncommitted/internal/vcs"
)

// AdapterProvider resolves the status adapter for a kind of working copy.
type AdapterProvider interface {
	AdapterFor(kind shared.VersionControlKind) (vcs.StatusAdapter, bool)
}

// Service coordinates discovery and status reporting for one scan.
type Service struct {
	locator      shared.RepositoryLocator
	adapters     AdapterProvider
	fileSystem   shared.FileSystem
	homeExpander *pathutils.HomeExpander
	logger       *zap.Logger
	outputWriter io.Writer
	errorWriter  io.Writer
}

type scanSummary struct {
	discovered int
	reported   int
	ignored    int
	suppressed int
}

// NewService constructs a Service using the provided dependencies.
func NewService(locator shared.RepositoryLocator, adapters AdapterProvider, fileSystem shared.FileSystem, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{
		locator:      locator,
		adapters:     adapters,
		fileSystem:   fileSystem,
		homeExpander: pathutils.NewHomeExpander(),
		logger:       logger,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}
}

// Run validates the roots, discovers working copies beneath them, and reports each one in
// directory order. Submodules found by an adapter are reported immediately after their parent.
func (service *Service) Run(executionContext context.Context, options Options) error {
	roots := service.resolveRoots(options.Roots)

	references, discoveryError := service.discover(executionContext, roots, options.DiscoveryConcurrency)
	if discoveryError != nil {
		return discoveryError
	}

	report := newReportWriter(service.outputWriter)
	ignoreSet := vcs.NewIgnoreSet()
	pending := newWorklist(references)
	seen := make(map[shared.RepositoryReference]struct{}, len(references))
	summary := scanSummary{discovered: len(references)}

	for pending.len() > 0 {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		reference, _ := pending.popFront()
		if _, alreadySeen := seen[reference]; alreadySeen {
			continue
		}
		seen[reference] = struct{}{}

		if pattern, ignored := matchIgnorePattern(reference.Directory, options.IgnorePatterns); ignored {
			summary.ignored++
			service.logger.Debug(repositoryIgnoredMessageConstant, zap.String(logFieldDirectoryConstant, reference.Directory), zap.String(logFieldPatternConstant, pattern))
			if options.Verbose {
				if writeError := report.writeIgnored(reference.Directory); writeError != nil {
					return writeError
				}
			}
			continue
		}

		adapter, registered := service.adapters.AdapterFor(reference.Kind)
		if !registered {
			service.logger.Warn(unsupportedKindMessageConstant, zap.String(logFieldDirectoryConstant, reference.Directory), zap.String(logFieldKindConstant, string(reference.Kind)))
			continue
		}

		result := adapter.Status(executionContext, reference.Directory, ignoreSet, options.Status)
		pending.pushFront(subrepositoryReferences(reference, result.Subrepositories)...)

		if result.Suppressed {
			summary.suppressed++
			service.logger.Debug(repositorySuppressedMessageConstant, zap.String(logFieldDirectoryConstant, reference.Directory))
			continue
		}

		if len(result.Lines) == 0 && !options.Verbose {
			continue
		}
		if len(result.Lines) > 0 {
			summary.reported++
		}
		if writeError := report.writeRepository(reference, result.Lines); writeError != nil {
			return writeError
		}
	}

	service.logger.Info(
		scanCompletedMessageConstant,
		zap.Strings(logFieldRootsConstant, roots),
		zap.Int(logFieldDiscoveredConstant, summary.discovered),
		zap.Int(logFieldReportedConstant, summary.reported),
		zap.Int(logFieldIgnoredConstant, summary.ignored),
		zap.Int(logFieldSuppressedConstant, summary.suppressed),
	)

	return nil
}

// resolveRoots expands home shortcuts, makes every root absolute, and drops roots that are not
// directories after telling the user about them.
func (service *Service) resolveRoots(rawRoots []string) []string {
	resolvedRoots := make([]string, 0, len(rawRoots))
	for _, rawRoot := range rawRoots {
		expandedRoot := service.homeExpander.Expand(rawRoot)
		absoluteRoot, absoluteError := service.fileSystem.Abs(expandedRoot)
		if absoluteError != nil {
			absoluteRoot = expandedRoot
		}

		rootInfo, statError := service.fileSystem.Stat(absoluteRoot)
		if statError != nil || !rootInfo.IsDir() {
			fmt.Fprintf(service.errorWriter, notDirectoryErrorTemplateConstant, absoluteRoot)
			service.logger.Warn(rootRejectedMessageConstant, zap.String(logFieldRootConstant, absoluteRoot), zap.Error(statError))
			continue
		}
		resolvedRoots = append(resolvedRoots, absoluteRoot)
	}
	return resolvedRoots
}

// discover locates working copies under every root with bounded concurrency and returns their
// union in directory order.
func (service *Service) discover(executionContext context.Context, roots []string, concurrency int) ([]shared.RepositoryReference, error) {
	if concurrency <= 0 {
		concurrency = defaultDiscoveryConcurrencyConstant
	}

	referencesByRoot := make([][]shared.RepositoryReference, len(roots))
	discoveryGroup, groupContext := errgroup.WithContext(executionContext)
	discoveryGroup.SetLimit(concurrency)

	for rootIndex, root := range roots {
		discoveryGroup.Go(func() error {
			references, locateError := service.locator.LocateRepositories(groupContext, root)
			if locateError != nil {
				return fmt.Errorf(discoveryErrorTemplateConstant, root, locateError)
			}
			referencesByRoot[rootIndex] = references
			return nil
		})
	}

	if waitError := discoveryGroup.Wait(); waitError != nil {
		return nil, waitError
	}

	unique := make(map[shared.RepositoryReference]struct{})
	var merged []shared.RepositoryReference
	for _, references := range referencesByRoot {
		for _, reference := range references {
			if _, exists := unique[reference]; exists {
				continue
			}
			unique[reference] = struct{}{}
			merged = append(merged, reference)
		}
	}
	shared.SortRepositoryReferences(merged)
	return merged, nil
}

func matchIgnorePattern(directory string, patterns []string) (string, bool) {
	for _, pattern := range patterns {
		if len(pattern) > 0 && strings.Contains(directory, pattern) {
			return pattern, true
		}
	}
	return "", false
}

func subrepositoryReferences(parent shared.RepositoryReference, relativePaths []string) []shared.RepositoryReference {
	references := make([]shared.RepositoryReference, 0, len(relativePaths))
	for _, relativePath := range relativePaths {
		references = append(references, shared.RepositoryReference{
			Directory: filepath.Join(parent.Directory, filepath.FromSlash(relativePath)),
			Kind:      parent.Kind,
		})
	}
	return references
}
