package execshell_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/uncommitted/internal/execshell"
)

type stubCommandExecutor struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
	observedDeadline bool
}

func (executor *stubCommandExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, command)
	_, executor.observedDeadline = executionContext.Deadline()
	return executor.executionResult, executor.executionError
}

func TestInvokerLines(testInstance *testing.T) {
	testCases := []struct {
		name           string
		result         execshell.ExecutionResult
		executionError error
		expectedLines  []string
	}{
		{
			name:          "splits_lines_and_drops_trailing_newline",
			result:        execshell.ExecutionResult{StandardOutput: "M  a.txt\n?? b.txt\n"},
			expectedLines: []string{"M  a.txt", "?? b.txt"},
		},
		{
			name:          "trims_carriage_returns",
			result:        execshell.ExecutionResult{StandardOutput: "M a.txt\r\nA b.txt\r\n"},
			expectedLines: []string{"M a.txt", "A b.txt"},
		},
		{
			name:          "replaces_invalid_bytes",
			result:        execshell.ExecutionResult{StandardOutput: "tsch\xfc\xdf"},
			expectedLines: []string{"tsch\uFFFD\uFFFD"},
		},
		{
			name:          "empty_output_yields_no_lines",
			result:        execshell.ExecutionResult{},
			expectedLines: nil,
		},
		{
			name:           "non_zero_exit_yields_no_lines",
			executionError: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}},
			expectedLines:  nil,
		},
		{
			name:           "missing_binary_yields_no_lines",
			executionError: execshell.CommandExecutionError{Cause: errors.New("executable file not found")},
			expectedLines:  nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubCommandExecutor{executionResult: testCase.result, executionError: testCase.executionError}
			invoker := execshell.NewInvoker(executor, zap.NewNop(), 0)

			lines := invoker.Lines(context.Background(), execshell.CommandGit, "/r/repo", "status", "-s", "-b")

			require.Equal(testInstance, testCase.expectedLines, lines)
			require.Len(testInstance, executor.recordedCommands, 1)
			recordedCommand := executor.recordedCommands[0]
			require.Equal(testInstance, execshell.CommandGit, recordedCommand.Name)
			require.Equal(testInstance, "/r/repo", recordedCommand.Details.WorkingDirectory)
			require.Equal(testInstance, []string{"status", "-s", "-b"}, recordedCommand.Details.Arguments)
			require.Equal(testInstance, "C", recordedCommand.Details.EnvironmentVariables["LC_MESSAGES"])
		})
	}
}

func TestInvokerForcesUntranslatedMessages(testInstance *testing.T) {
	testCases := []struct {
		name                string
		inheritedAll        string
		inheritedCharacters string
		setCharacters       bool
		expectedEnvironment map[string]string
	}{
		{
			name:                "no_inherited_locale",
			expectedEnvironment: map[string]string{"LC_MESSAGES": "C", "LC_ALL": ""},
		},
		{
			name:                "inherited_locale_moves_to_character_type",
			inheritedAll:        "de_DE.UTF-8",
			expectedEnvironment: map[string]string{"LC_MESSAGES": "C", "LC_ALL": "", "LC_CTYPE": "de_DE.UTF-8"},
		},
		{
			name:                "inherited_character_type_is_kept",
			inheritedAll:        "de_DE.UTF-8",
			inheritedCharacters: "C.UTF-8",
			setCharacters:       true,
			expectedEnvironment: map[string]string{"LC_MESSAGES": "C", "LC_ALL": ""},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Setenv("LC_ALL", testCase.inheritedAll)
			testInstance.Setenv("LC_CTYPE", testCase.inheritedCharacters)
			if !testCase.setCharacters {
				require.NoError(testInstance, os.Unsetenv("LC_CTYPE"))
			}

			executor := &stubCommandExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "## main [ahead 1]\n"}}
			invoker := execshell.NewInvoker(executor, zap.NewNop(), 0)

			lines := invoker.Lines(context.Background(), execshell.CommandGit, "/r/repo", "status", "-s", "-b")

			require.Equal(testInstance, []string{"## main [ahead 1]"}, lines)
			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, testCase.expectedEnvironment, executor.recordedCommands[0].Details.EnvironmentVariables)
		})
	}
}

func TestInvokerOutputKeepsRawBytes(testInstance *testing.T) {
	executor := &stubCommandExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "/r/a/.git\x00/r/b/.hg\x00"}}
	invoker := execshell.NewInvoker(executor, zap.NewNop(), 0)

	output, succeeded := invoker.Output(context.Background(), execshell.CommandLocate, "", "-0", "/r\\/.git")

	require.True(testInstance, succeeded)
	require.Equal(testInstance, "/r/a/.git\x00/r/b/.hg\x00", output)
	require.False(testInstance, executor.observedDeadline)
}

func TestInvokerAppliesTimeoutAndLogsExpiry(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	executor := &stubCommandExecutor{
		executionError: execshell.CommandExecutionError{Cause: context.DeadlineExceeded},
	}
	invoker := execshell.NewInvoker(executor, zap.New(observerCore), time.Second)

	lines := invoker.Lines(context.Background(), execshell.CommandSubversion, "/r/svn", "st", "-v")

	require.Nil(testInstance, lines)
	require.True(testInstance, executor.observedDeadline)
	require.Equal(testInstance, 1, observerLogs.FilterMessage("Command timed out and produced no status").Len())
}

func TestSplitOutputLinesKeepsInteriorBlankLines(testInstance *testing.T) {
	require.Equal(testInstance, []string{"a", "", "b"}, execshell.SplitOutputLines("a\n\nb\n"))
}
