package execshell

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
)

const (
	messageLocaleVariableNameConstant       = "LC_MESSAGES"
	messageLocaleVariableValueConstant      = "C"
	overridingLocaleVariableNameConstant    = "LC_ALL"
	characterTypeLocaleVariableNameConstant = "LC_CTYPE"
	lineSeparatorConstant                   = "\n"
	carriageReturnConstant                  = "\r"
	commandTimedOutMessageConstant          = "Command timed out and produced no status"
	logFieldTimeoutConstant                 = "timeout"
	replacementCharacterConstant            = "\uFFFD"
)

// CommandExecutor runs a single shell command.
type CommandExecutor interface {
	Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Invoker runs version control tools and reduces their results to decoded output.
// Every failure collapses to empty output: a missing binary, a non-zero exit status
// and an expired timeout all mean that the tool had nothing to report.
type Invoker struct {
	executor       CommandExecutor
	logger         *zap.Logger
	commandTimeout time.Duration
}

// NewInvoker constructs an Invoker. A zero commandTimeout disables per-command deadlines.
func NewInvoker(executor CommandExecutor, logger *zap.Logger, commandTimeout time.Duration) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{executor: executor, logger: logger, commandTimeout: commandTimeout}
}

// Output returns the raw standard output of the command and whether it exited successfully.
func (invoker *Invoker) Output(executionContext context.Context, commandName CommandName, workingDirectory string, arguments ...string) (string, bool) {
	if invoker == nil || invoker.executor == nil {
		return emptyStringConstant, false
	}

	commandContext := executionContext
	if invoker.commandTimeout > 0 {
		var cancel context.CancelFunc
		commandContext, cancel = context.WithTimeout(executionContext, invoker.commandTimeout)
		defer cancel()
	}

	command := ShellCommand{
		Name: commandName,
		Details: CommandDetails{
			Arguments:            arguments,
			WorkingDirectory:     workingDirectory,
			EnvironmentVariables: messageLocaleEnvironment(),
		},
	}

	executionResult, executionError := invoker.executor.Execute(commandContext, command)
	if executionError != nil {
		if errors.Is(executionError, context.DeadlineExceeded) {
			invoker.logger.Warn(
				commandTimedOutMessageConstant,
				zap.String(logFieldCommandNameConstant, string(commandName)),
				zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
				zap.Duration(logFieldTimeoutConstant, invoker.commandTimeout),
			)
		}
		return emptyStringConstant, false
	}

	return executionResult.StandardOutput, true
}

// messageLocaleEnvironment forces untranslated tool messages. An inherited LC_ALL would override
// LC_MESSAGES, so it is blanked and its value is kept for LC_CTYPE to preserve the character set.
func messageLocaleEnvironment() map[string]string {
	environment := map[string]string{
		messageLocaleVariableNameConstant:    messageLocaleVariableValueConstant,
		overridingLocaleVariableNameConstant: emptyStringConstant,
	}
	inheritedLocale, inherited := os.LookupEnv(overridingLocaleVariableNameConstant)
	if !inherited || len(inheritedLocale) == 0 {
		return environment
	}
	if _, characterTypeSet := os.LookupEnv(characterTypeLocaleVariableNameConstant); !characterTypeSet {
		environment[characterTypeLocaleVariableNameConstant] = inheritedLocale
	}
	return environment
}

// Lines returns the decoded standard output split into lines. Failures yield no lines.
func (invoker *Invoker) Lines(executionContext context.Context, commandName CommandName, workingDirectory string, arguments ...string) []string {
	rawOutput, succeeded := invoker.Output(executionContext, commandName, workingDirectory, arguments...)
	if !succeeded {
		return nil
	}
	return SplitOutputLines(DecodeOutput(rawOutput))
}

// DecodeOutput interprets raw output as UTF-8, replacing each invalid byte with U+FFFD.
func DecodeOutput(rawOutput string) string {
	decodedOutput, decodeError := unicode.UTF8.NewDecoder().String(rawOutput)
	if decodeError != nil {
		return strings.ToValidUTF8(rawOutput, replacementCharacterConstant)
	}
	return decodedOutput
}

// SplitOutputLines splits text on newlines, trimming carriage returns and the trailing empty line.
func SplitOutputLines(output string) []string {
	if len(output) == 0 {
		return nil
	}
	trimmedOutput := strings.TrimSuffix(output, lineSeparatorConstant)
	rawLines := strings.Split(trimmedOutput, lineSeparatorConstant)
	lines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		lines = append(lines, strings.TrimSuffix(rawLine, carriageReturnConstant))
	}
	return lines
}
