//go:build !unix

package discovery

import "path/filepath"

type directoryIdentity struct {
	resolvedPath string
}

// resolveDirectoryIdentity falls back to the fully resolved path where inode numbers are unavailable.
func resolveDirectoryIdentity(directoryPath string) (directoryIdentity, error) {
	resolvedPath, resolveError := filepath.EvalSymlinks(directoryPath)
	if resolveError != nil {
		return directoryIdentity{}, resolveError
	}
	absolutePath, absoluteError := filepath.Abs(resolvedPath)
	if absoluteError != nil {
		return directoryIdentity{}, absoluteError
	}
	return directoryIdentity{resolvedPath: absolutePath}, nil
}
