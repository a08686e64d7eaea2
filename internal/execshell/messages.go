package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	commandLabelWithArgumentsTemplate       = "%s %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitStatusSubcommandNameConstant     = "status"
	gitBranchSubcommandNameConstant     = "branch"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitStashSubcommandNameConstant      = "stash"
	gitSubmoduleSubcommandNameConstant  = "submodule"
	mercurialStatusSubcommandConstant   = "st"
	mercurialConfigFlagConstant         = "--config"
	subversionStatusSubcommandConstant  = "st"
)

type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var gitSubcommandTemplates = map[string]stageTemplates{
	gitStatusSubcommandNameConstant: {
		start:            "Reviewing working tree status in %s",
		success:          "Collected working tree status for %s",
		failure:          "Failed to review working tree status in %s (exit code %d%s)",
		executionFailure: "Unable to review working tree status in %s: %s",
	},
	gitBranchSubcommandNameConstant: {
		start:            "Listing local branches in %s",
		success:          "Listed local branches in %s",
		failure:          "Failed to list local branches in %s (exit code %d%s)",
		executionFailure: "Unable to list local branches in %s: %s",
	},
	gitForEachRefSubcommandNameConstant: {
		start:            "Checking upstream configuration of branches in %s",
		success:          "Checked upstream configuration of branches in %s",
		failure:          "Failed to check upstream configuration of branches in %s (exit code %d%s)",
		executionFailure: "Unable to check upstream configuration of branches in %s: %s",
	},
	gitStashSubcommandNameConstant: {
		start:            "Listing stashes in %s",
		success:          "Listed stashes in %s",
		failure:          "Failed to list stashes in %s (exit code %d%s)",
		executionFailure: "Unable to list stashes in %s: %s",
	},
	gitSubmoduleSubcommandNameConstant: {
		start:            "Enumerating submodules in %s",
		success:          "Enumerated submodules in %s",
		failure:          "Failed to enumerate submodules in %s (exit code %d%s)",
		executionFailure: "Unable to enumerate submodules in %s: %s",
	},
}

var mercurialStatusTemplates = stageTemplates{
	start:            "Reviewing Mercurial working copy status in %s",
	success:          "Collected Mercurial working copy status for %s",
	failure:          "Failed to review Mercurial working copy status in %s (exit code %d%s)",
	executionFailure: "Unable to review Mercurial working copy status in %s: %s",
}

var subversionStatusTemplates = stageTemplates{
	start:            "Reviewing Subversion working copy status in %s",
	success:          "Collected Subversion working copy status for %s",
	failure:          "Failed to review Subversion working copy status in %s (exit code %d%s)",
	executionFailure: "Unable to review Subversion working copy status in %s: %s",
}

var locateTemplates = stageTemplates{
	start:            "Querying file index for %s",
	success:          "Queried file index for %s",
	failure:          "File index query for %s failed (exit code %d%s)",
	executionFailure: "Unable to query file index for %s: %s",
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandMercurial:
		return formatter.describeMercurialMessage(command, result, failure, stage)
	case CommandSubversion:
		return formatter.describeSubversionMessage(command, result, failure, stage)
	case CommandLocate:
		return formatter.describeLocateMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subcommand := formatter.extractFirstNonFlagArgument(command.Details.Arguments)
	templates, known := gitSubcommandTemplates[subcommand]
	if !known {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.applyTemplates(templates, formatter.describeWorkingDirectory(command), result, failure, stage)
}

func (formatter CommandMessageFormatter) describeMercurialMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if formatter.extractMercurialSubcommand(command.Details.Arguments) != mercurialStatusSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.applyTemplates(mercurialStatusTemplates, formatter.describeWorkingDirectory(command), result, failure, stage)
}

func (formatter CommandMessageFormatter) describeSubversionMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if formatter.extractFirstNonFlagArgument(command.Details.Arguments) != subversionStatusSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.applyTemplates(subversionStatusTemplates, formatter.describeWorkingDirectory(command), result, failure, stage)
}

func (formatter CommandMessageFormatter) describeLocateMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	pattern := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments))
	return formatter.applyTemplates(locateTemplates, pattern, result, failure, stage)
}

func (formatter CommandMessageFormatter) applyTemplates(templates stageTemplates, subject string, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subject)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subject)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, subject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, subject, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf(commandLabelWithArgumentsTemplate, commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

// extractMercurialSubcommand skips global options, including the value following --config.
func (formatter CommandMessageFormatter) extractMercurialSubcommand(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		trimmedArgument := strings.TrimSpace(arguments[index])
		if trimmedArgument == mercurialConfigFlagConstant {
			index++
			continue
		}
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}
