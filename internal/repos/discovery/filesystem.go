package discovery

import (
	"context"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/repos/shared"
)

const (
	unreadableDirectoryMessageConstant  = "Skipping unreadable directory"
	unresolvedIdentityMessageConstant   = "Skipping directory with unresolvable identity"
	revisitedDirectoryMessageConstant   = "Skipping already visited directory"
	logFieldDirectoryPathConstant       = "directory"
	logFieldRepositoryDirectoryConstant = "repository"
	logFieldVersionControlConstant      = "version_control"
	repositoryFoundMessageConstant      = "Found repository"
)

// FilesystemRepositoryLocator walks directory trees looking for version control marker directories.
type FilesystemRepositoryLocator struct {
	fileSystem     shared.FileSystem
	logger         *zap.Logger
	followSymlinks bool
}

// NewFilesystemRepositoryLocator constructs a tree-walking locator. When followSymlinks is set, symbolic
// links to directories are traversed and every physical directory is visited at most once.
func NewFilesystemRepositoryLocator(fileSystem shared.FileSystem, logger *zap.Logger, followSymlinks bool) *FilesystemRepositoryLocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilesystemRepositoryLocator{fileSystem: fileSystem, logger: logger, followSymlinks: followSymlinks}
}

type walkState struct {
	visitedDirectories map[directoryIdentity]struct{}
	references         []shared.RepositoryReference
}

// LocateRepositories walks rootPath depth-first and returns a reference for every directory holding a
// real marker directory. Marker directories are never descended into; symbolic links to marker
// directories are ignored.
func (locator *FilesystemRepositoryLocator) LocateRepositories(executionContext context.Context, rootPath string) ([]shared.RepositoryReference, error) {
	state := &walkState{visitedDirectories: make(map[directoryIdentity]struct{})}

	if locator.followSymlinks {
		rootIdentity, identityError := resolveDirectoryIdentity(rootPath)
		if identityError == nil {
			state.visitedDirectories[rootIdentity] = struct{}{}
		}
	}

	if walkError := locator.walkDirectory(executionContext, rootPath, state); walkError != nil {
		return nil, walkError
	}
	return state.references, nil
}

func (locator *FilesystemRepositoryLocator) walkDirectory(executionContext context.Context, directoryPath string, state *walkState) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	directoryEntries, readError := locator.fileSystem.ReadDir(directoryPath)
	if readError != nil {
		locator.logger.Debug(unreadableDirectoryMessageConstant, zap.String(logFieldDirectoryPathConstant, directoryPath), zap.Error(readError))
		return nil
	}

	subdirectoryPaths := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())

		if kind, isMarker := shared.KindForMarkerDirectory(directoryEntry.Name()); isMarker {
			if directoryEntry.IsDir() {
				state.references = append(state.references, shared.RepositoryReference{Directory: directoryPath, Kind: kind})
				locator.logger.Debug(repositoryFoundMessageConstant, zap.String(logFieldRepositoryDirectoryConstant, directoryPath), zap.String(logFieldVersionControlConstant, kind.DisplayName()))
			}
			continue
		}

		if directoryEntry.IsDir() {
			subdirectoryPaths = append(subdirectoryPaths, entryPath)
			continue
		}

		if locator.followSymlinks && directoryEntry.Type()&fs.ModeSymlink != 0 {
			targetInfo, statError := locator.fileSystem.Stat(entryPath)
			if statError == nil && targetInfo.IsDir() {
				subdirectoryPaths = append(subdirectoryPaths, entryPath)
			}
		}
	}

	for _, subdirectoryPath := range subdirectoryPaths {
		if locator.followSymlinks && !locator.markVisited(subdirectoryPath, state) {
			continue
		}
		if walkError := locator.walkDirectory(executionContext, subdirectoryPath, state); walkError != nil {
			return walkError
		}
	}

	return nil
}

// markVisited records the physical identity of the directory and reports whether it was unseen.
func (locator *FilesystemRepositoryLocator) markVisited(directoryPath string, state *walkState) bool {
	identity, identityError := resolveDirectoryIdentity(directoryPath)
	if identityError != nil {
		locator.logger.Debug(unresolvedIdentityMessageConstant, zap.String(logFieldDirectoryPathConstant, directoryPath), zap.Error(identityError))
		return false
	}
	if _, visited := state.visitedDirectories[identity]; visited {
		locator.logger.Debug(revisitedDirectoryMessageConstant, zap.String(logFieldDirectoryPathConstant, directoryPath))
		return false
	}
	state.visitedDirectories[identity] = struct{}{}
	return true
}
