package vcs

import (
	"path/filepath"
	"strings"
)

// IgnoreSet records paths already accounted for inside a Subversion report. Every path is bound to the
// working copy that listed it, and only counts while it lies strictly inside that working copy.
type IgnoreSet struct {
	owners map[string]string
}

// NewIgnoreSet constructs an empty set scoped to one scan.
func NewIgnoreSet() *IgnoreSet {
	return &IgnoreSet{owners: make(map[string]string)}
}

// Add records path as listed by the working copy at ownerDirectory.
func (ignoreSet *IgnoreSet) Add(path string, ownerDirectory string) {
	cleanedPath := filepath.Clean(path)
	if _, exists := ignoreSet.owners[cleanedPath]; exists {
		return
	}
	ignoreSet.owners[cleanedPath] = filepath.Clean(ownerDirectory)
}

// Contains reports whether path was listed by a working copy that encloses it.
func (ignoreSet *IgnoreSet) Contains(path string) bool {
	cleanedPath := filepath.Clean(path)
	ownerDirectory, exists := ignoreSet.owners[cleanedPath]
	if !exists {
		return false
	}
	return isStrictlyInside(cleanedPath, ownerDirectory)
}

// Len returns the number of recorded paths.
func (ignoreSet *IgnoreSet) Len() int {
	return len(ignoreSet.owners)
}

func isStrictlyInside(path string, directory string) bool {
	relativePath, relativeError := filepath.Rel(directory, path)
	if relativeError != nil || relativePath == "." {
		return false
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}
