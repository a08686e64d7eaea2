package scan_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing/fstest"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/repos/shared"
)

const (
	gitStatusInvocationConstant    = "git status -s -b"
	gitBranchInvocationConstant    = "git branch -v"
	gitSubmoduleInvocationConstant = "git submodule status"
	mercurialInvocationConstant    = "hg --config extensions.color=! st"
	subversionInvocationConstant   = "svn st -v"
	workingDirectoryConstant       = "/work"
	invocationKeySeparatorConstant = "|"
)

type scriptedLineReader struct {
	outputs     map[string][]string
	invocations []string
}

func newScriptedLineReader() *scriptedLineReader {
	return &scriptedLineReader{outputs: map[string][]string{}}
}

func (reader *scriptedLineReader) script(directory string, invocation string, lines ...string) *scriptedLineReader {
	reader.outputs[directory+invocationKeySeparatorConstant+invocation] = lines
	return reader
}

func (reader *scriptedLineReader) Lines(executionContext context.Context, commandName execshell.CommandName, workingDirectory string, arguments ...string) []string {
	invocation := strings.Join(append([]string{string(commandName)}, arguments...), " ")
	key := workingDirectory + invocationKeySeparatorConstant + invocation
	reader.invocations = append(reader.invocations, key)
	return reader.outputs[key]
}

type stubLocator struct {
	mutex        sync.Mutex
	references   map[string][]shared.RepositoryReference
	locatedRoots []string
	locateError  error
}

func (locator *stubLocator) LocateRepositories(executionContext context.Context, rootPath string) ([]shared.RepositoryReference, error) {
	locator.mutex.Lock()
	defer locator.mutex.Unlock()
	locator.locatedRoots = append(locator.locatedRoots, rootPath)
	if locator.locateError != nil {
		return nil, locator.locateError
	}
	return locator.references[rootPath], nil
}

// mapFileSystem serves an in-memory tree rooted at "/".
type mapFileSystem struct {
	tree fstest.MapFS
}

func newMapFileSystem(directories []string, files []string) mapFileSystem {
	tree := fstest.MapFS{}
	for _, directory := range directories {
		tree[strings.TrimPrefix(directory, "/")] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
	}
	for _, file := range files {
		tree[strings.TrimPrefix(file, "/")] = &fstest.MapFile{Data: []byte("content"), Mode: 0o644}
	}
	return mapFileSystem{tree: tree}
}

func (fileSystem mapFileSystem) Stat(path string) (fs.FileInfo, error) {
	return fileSystem.tree.Stat(fileSystem.relative(path))
}

func (fileSystem mapFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return fileSystem.tree.Stat(fileSystem.relative(path))
}

func (fileSystem mapFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return fileSystem.tree.ReadDir(fileSystem.relative(path))
}

func (fileSystem mapFileSystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(workingDirectoryConstant, path), nil
}

func (fileSystem mapFileSystem) relative(path string) string {
	trimmed := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	if len(trimmed) == 0 {
		return "."
	}
	return trimmed
}

func gitReference(directory string) shared.RepositoryReference {
	return shared.RepositoryReference{Directory: directory, Kind: shared.VersionControlGit}
}

func mercurialReference(directory string) shared.RepositoryReference {
	return shared.RepositoryReference{Directory: directory, Kind: shared.VersionControlMercurial}
}

func subversionReference(directory string) shared.RepositoryReference {
	return shared.RepositoryReference{Directory: directory, Kind: shared.VersionControlSubversion}
}
