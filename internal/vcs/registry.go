package vcs

import (
	"github.com/temirov/uncommitted/internal/repos/shared"
)

// Registry maps every supported version control kind to its status adapter.
type Registry struct {
	adapters map[shared.VersionControlKind]StatusAdapter
}

// NewRegistry wires the Git, Mercurial and Subversion adapters to the same line reader.
func NewRegistry(lineReader LineReader) *Registry {
	return &Registry{adapters: map[shared.VersionControlKind]StatusAdapter{
		shared.VersionControlGit:        NewGitStatusAdapter(lineReader),
		shared.VersionControlMercurial:  NewMercurialStatusAdapter(lineReader),
		shared.VersionControlSubversion: NewSubversionStatusAdapter(lineReader),
	}}
}

// AdapterFor returns the adapter registered for kind.
func (registry *Registry) AdapterFor(kind shared.VersionControlKind) (StatusAdapter, bool) {
	adapter, registered := registry.adapters[kind]
	return adapter, registered
}
