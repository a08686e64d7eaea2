package shared

import (
	"context"
	"io/fs"
	"sort"
)

const (
	gitMarkerDirectoryNameConstant        = ".git"
	mercurialMarkerDirectoryNameConstant  = ".hg"
	subversionMarkerDirectoryNameConstant = ".svn"
)

// VersionControlKind enumerates the version control systems recognized on disk.
type VersionControlKind string

// Supported version control kinds. The value doubles as the display name used in reports.
const (
	VersionControlGit        VersionControlKind = "Git"
	VersionControlMercurial  VersionControlKind = "Mercurial"
	VersionControlSubversion VersionControlKind = "Subversion"
)

var markerDirectoryNames = map[VersionControlKind]string{
	VersionControlGit:        gitMarkerDirectoryNameConstant,
	VersionControlMercurial:  mercurialMarkerDirectoryNameConstant,
	VersionControlSubversion: subversionMarkerDirectoryNameConstant,
}

var kindsByMarkerDirectoryName = map[string]VersionControlKind{
	gitMarkerDirectoryNameConstant:        VersionControlGit,
	mercurialMarkerDirectoryNameConstant:  VersionControlMercurial,
	subversionMarkerDirectoryNameConstant: VersionControlSubversion,
}

// VersionControlKinds returns every supported kind in a stable order.
func VersionControlKinds() []VersionControlKind {
	return []VersionControlKind{VersionControlGit, VersionControlMercurial, VersionControlSubversion}
}

// KindForMarkerDirectory resolves the version control kind owning a marker directory name such as ".git".
func KindForMarkerDirectory(directoryName string) (VersionControlKind, bool) {
	kind, known := kindsByMarkerDirectoryName[directoryName]
	return kind, known
}

// MarkerDirectoryName returns the metadata directory identifying a working copy of this kind.
func (kind VersionControlKind) MarkerDirectoryName() string {
	return markerDirectoryNames[kind]
}

// DisplayName returns the human readable name printed in report headers.
func (kind VersionControlKind) DisplayName() string {
	return string(kind)
}

// RepositoryReference identifies a working copy root together with its version control kind.
type RepositoryReference struct {
	Directory string
	Kind      VersionControlKind
}

// SortRepositoryReferences orders references by directory and then by marker directory name.
func SortRepositoryReferences(references []RepositoryReference) {
	sort.Slice(references, func(firstIndex int, secondIndex int) bool {
		first := references[firstIndex]
		second := references[secondIndex]
		if first.Directory != second.Directory {
			return first.Directory < second.Directory
		}
		return first.Kind.MarkerDirectoryName() < second.Kind.MarkerDirectoryName()
	})
}

// RepositoryLocator finds working copies beneath a root directory.
type RepositoryLocator interface {
	LocateRepositories(executionContext context.Context, rootPath string) ([]RepositoryReference, error)
}

// FileSystem exposes the filesystem operations required by discovery and scanning.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
}
