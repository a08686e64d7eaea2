package dependencies

import (
	"time"

	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/repos/discovery"
	"github.com/temirov/uncommitted/internal/repos/filesystem"
	"github.com/temirov/uncommitted/internal/repos/shared"
)

// LocatorOptions selects the repository discovery strategy.
type LocatorOptions struct {
	UseLocate      bool
	FollowSymlinks bool
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveCommandExecutor returns the provided executor or constructs a shell-backed default.
func ResolveCommandExecutor(existing execshell.CommandExecutor, logger *zap.Logger, observers ...execshell.CommandEventObserver) (execshell.CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveInvoker wraps the executor in an Invoker applying the per-command timeout.
func ResolveInvoker(executor execshell.CommandExecutor, logger *zap.Logger, commandTimeout time.Duration) *execshell.Invoker {
	return execshell.NewInvoker(executor, logger, commandTimeout)
}

// ResolveRepositoryLocator returns the provided locator or the strategy selected by options.
func ResolveRepositoryLocator(existing shared.RepositoryLocator, options LocatorOptions, invoker *execshell.Invoker, fileSystem shared.FileSystem, logger *zap.Logger) shared.RepositoryLocator {
	if existing != nil {
		return existing
	}
	if options.UseLocate {
		return discovery.NewLocateRepositoryLocator(invoker, fileSystem, logger)
	}
	return discovery.NewFilesystemRepositoryLocator(fileSystem, logger, options.FollowSymlinks)
}
