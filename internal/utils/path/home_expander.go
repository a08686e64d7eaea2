// Package pathutils resolves user-supplied scan roots.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant      = "~"
	homeShortcutSlashConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander replaces a leading "~" in scan roots with the user's home directory. "~user" forms
// are left untouched.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	resolveOnce           sync.Once
	homeDirectory         string
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider. The provider is
// consulted at most once.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand returns candidatePath with its home shortcut resolved. Paths without a shortcut, and every
// path when the home directory cannot be determined, are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	remainder, hasShortcut := trimHomeShortcut(candidatePath)
	if !hasShortcut {
		return candidatePath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	if len(remainder) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, remainder)
}

func trimHomeShortcut(candidatePath string) (string, bool) {
	if candidatePath == homeShortcutConstant {
		return "", true
	}
	if strings.HasPrefix(candidatePath, homeShortcutSlashConstant) {
		return strings.TrimPrefix(candidatePath, homeShortcutSlashConstant), true
	}
	nativePrefix := homeShortcutConstant + string(os.PathSeparator)
	if strings.HasPrefix(candidatePath, nativePrefix) {
		return strings.TrimPrefix(candidatePath, nativePrefix), true
	}
	return "", false
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.resolveOnce.Do(func() {
		homeDirectory, providerError := expander.homeDirectoryProvider()
		if providerError == nil {
			expander.homeDirectory = homeDirectory
		}
	})
	return expander.homeDirectory
}
