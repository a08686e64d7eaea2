package scan

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/repos/dependencies"
	"github.com/temirov/uncommitted/internal/repos/shared"
	"github.com/temirov/uncommitted/internal/utils/flags"
	"github.com/temirov/uncommitted/internal/vcs"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current scan configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Locator               shared.RepositoryLocator
	Executor              execshell.CommandExecutor
	FileSystem            shared.FileSystem
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command that runs a scan.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	commandFlags := command.Flags()
	flags.AddToggleFlag(commandFlags, nil, locateFlagNameConstant, locateFlagShorthandConstant, false, locateFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, walkFlagNameConstant, walkFlagShorthandConstant, false, walkFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, followSymlinksFlagNameConstant, followSymlinksFlagShorthandConstant, false, followSymlinksFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, untrackedFlagNameConstant, untrackedFlagShorthandConstant, false, untrackedFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, nonTrackingFlagNameConstant, nonTrackingFlagShorthandConstant, false, nonTrackingFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, stashFlagNameConstant, stashFlagShorthandConstant, false, stashFlagUsageConstant)
	commandFlags.StringArrayP(ignoreFlagNameConstant, ignoreFlagShorthandConstant, nil, ignoreFlagUsageConstant)
	commandFlags.String(ignoreSubversionStatesFlagNameConstant, "", ignoreSubversionStatesFlagUsageConstant)
	commandFlags.Duration(commandTimeoutFlagNameConstant, 0, commandTimeoutFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	commandTally := execshell.NewCommandTally()
	commandExecutor, executorError := dependencies.ResolveCommandExecutor(builder.Executor, logger, builder.CommandEventsObserver, commandTally)
	if executorError != nil {
		return executorError
	}
	invoker := dependencies.ResolveInvoker(commandExecutor, logger, options.CommandTimeout)

	locatorOptions := dependencies.LocatorOptions{UseLocate: options.UseLocate, FollowSymlinks: options.FollowSymlinks}
	locator := dependencies.ResolveRepositoryLocator(builder.Locator, locatorOptions, invoker, fileSystem, logger)

	service := NewService(locator, vcs.NewRegistry(invoker), fileSystem, logger, command.OutOrStdout(), command.ErrOrStderr())
	runError := service.Run(command.Context(), options)

	commandCounts := commandTally.Snapshot()
	logger.Debug(
		externalCommandsMessageConstant,
		zap.Int64(logFieldCommandsStartedConstant, commandCounts.Started),
		zap.Int64(logFieldCommandsNonZeroExitConstant, commandCounts.NonZeroExit),
		zap.Int64(logFieldCommandsUnavailableConstant, commandCounts.Unavailable),
	)
	return runError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (Options, error) {
	configuration := builder.resolveConfiguration()
	commandFlags := command.Flags()

	useLocate := configuration.UseLocate
	locateRequested := false
	if commandFlags.Changed(locateFlagNameConstant) {
		useLocate, _ = flags.ToggleValue(commandFlags, locateFlagNameConstant)
		locateRequested = useLocate
	}

	walkRequested := false
	if commandFlags.Changed(walkFlagNameConstant) {
		walkRequested, _ = flags.ToggleValue(commandFlags, walkFlagNameConstant)
	}
	if walkRequested {
		if locateRequested {
			return Options{}, builder.rejectConflictingLocators(command)
		}
		useLocate = false
	}

	followSymlinks := resolveToggle(command, followSymlinksFlagNameConstant, configuration.FollowSymlinks)
	if useLocate && followSymlinks {
		return Options{}, builder.rejectConflictingLocators(command)
	}

	ignorePatterns := configuration.IgnorePatterns
	if commandFlags.Changed(ignoreFlagNameConstant) {
		flagPatterns, _ := commandFlags.GetStringArray(ignoreFlagNameConstant)
		ignorePatterns = nonEmptyEntries(flagPatterns)
	}

	ignoreSubversionStates := configuration.IgnoreSubversionStates
	if commandFlags.Changed(ignoreSubversionStatesFlagNameConstant) {
		ignoreSubversionStates, _ = commandFlags.GetString(ignoreSubversionStatesFlagNameConstant)
	}

	commandTimeout := configuration.CommandTimeout
	if commandFlags.Changed(commandTimeoutFlagNameConstant) {
		commandTimeout, _ = commandFlags.GetDuration(commandTimeoutFlagNameConstant)
	}

	roots := nonEmptyEntries(arguments)
	if len(roots) == 0 {
		roots = configuration.Roots
	}
	if len(roots) == 0 {
		if helpError := builder.displayCommandHelp(command); helpError != nil {
			return Options{}, helpError
		}
		return Options{}, ErrMissingRoots
	}

	options := Options{
		Roots:          roots,
		UseLocate:      useLocate,
		FollowSymlinks: followSymlinks,
		Verbose:        resolveToggle(command, verboseFlagNameConstant, configuration.Verbose),
		IgnorePatterns: ignorePatterns,
		Status: vcs.StatusOptions{
			Untracked:              resolveToggle(command, untrackedFlagNameConstant, configuration.Untracked),
			NonTracking:            resolveToggle(command, nonTrackingFlagNameConstant, configuration.NonTracking),
			Stash:                  resolveToggle(command, stashFlagNameConstant, configuration.Stash),
			IgnoreSubversionStates: ignoreSubversionStates,
		},
		CommandTimeout:       commandTimeout,
		DiscoveryConcurrency: configuration.DiscoveryConcurrency,
	}

	return options, nil
}

func resolveToggle(command *cobra.Command, flagName string, configuredValue bool) bool {
	if !command.Flags().Changed(flagName) {
		return configuredValue
	}
	flagValue, registered := flags.ToggleValue(command.Flags(), flagName)
	if !registered {
		return configuredValue
	}
	return flagValue
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) rejectConflictingLocators(command *cobra.Command) error {
	if usageError := command.Usage(); usageError != nil {
		return usageError
	}
	return ErrConflictingLocators
}

func (builder *CommandBuilder) displayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}
