package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/repos/dependencies"
	"github.com/temirov/uncommitted/internal/repos/discovery"
	"github.com/temirov/uncommitted/internal/repos/filesystem"
	"github.com/temirov/uncommitted/internal/repos/shared"
)

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, execshell.ShellCommand) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type stubLocator struct{}

func (stubLocator) LocateRepositories(context.Context, string) ([]shared.RepositoryReference, error) {
	return nil, nil
}

func TestResolveFileSystem(testInstance *testing.T) {
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))

	existing := filesystem.OSFileSystem{}
	require.Equal(testInstance, existing, dependencies.ResolveFileSystem(existing))
}

func TestResolveCommandExecutor(testInstance *testing.T) {
	existing := stubExecutor{}
	resolvedExecutor, resolveError := dependencies.ResolveCommandExecutor(existing, zap.NewNop())
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolvedExecutor)

	defaultExecutor, defaultError := dependencies.ResolveCommandExecutor(nil, zap.NewNop(), nil)
	require.NoError(testInstance, defaultError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, defaultExecutor)
}

func TestResolveRepositoryLocator(testInstance *testing.T) {
	invoker := dependencies.ResolveInvoker(stubExecutor{}, zap.NewNop(), 0)
	fileSystem := dependencies.ResolveFileSystem(nil)

	testCases := []struct {
		name         string
		existing     shared.RepositoryLocator
		options      dependencies.LocatorOptions
		expectedType any
	}{
		{name: "existing_locator_wins", existing: stubLocator{}, options: dependencies.LocatorOptions{UseLocate: true}, expectedType: stubLocator{}},
		{name: "tree_walk_default", expectedType: &discovery.FilesystemRepositoryLocator{}},
		{name: "tree_walk_following_symlinks", options: dependencies.LocatorOptions{FollowSymlinks: true}, expectedType: &discovery.FilesystemRepositoryLocator{}},
		{name: "locate_index", options: dependencies.LocatorOptions{UseLocate: true}, expectedType: &discovery.LocateRepositoryLocator{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			locator := dependencies.ResolveRepositoryLocator(testCase.existing, testCase.options, invoker, fileSystem, zap.NewNop())
			require.IsType(testInstance, testCase.expectedType, locator)
		})
	}
}
