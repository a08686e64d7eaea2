package execshell

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testShellCommandConstant = CommandName("sh")

func requireShell(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(string(testShellCommandConstant)); lookupError != nil {
		testInstance.Skip("sh is not available")
	}
}

func TestOSCommandRunnerRun(testInstance *testing.T) {
	requireShell(testInstance)
	testInstance.Setenv("LC_MESSAGES", "de_DE.UTF-8")

	testCases := []struct {
		name             string
		details          CommandDetails
		expectedOutput   string
		expectedError    string
		expectedExitCode int
	}{
		{
			name:           "captures_output",
			details:        CommandDetails{Arguments: []string{"-c", "printf 'a\\nb\\n'; printf 'warn' >&2"}},
			expectedOutput: "a\nb\n",
			expectedError:  "warn",
		},
		{
			name:             "reports_exit_code",
			details:          CommandDetails{Arguments: []string{"-c", "printf partial; exit 3"}},
			expectedOutput:   "partial",
			expectedExitCode: 3,
		},
		{
			name:           "overrides_inherited_variable",
			details:        CommandDetails{Arguments: []string{"-c", "printf %s \"$LC_MESSAGES\""}, EnvironmentVariables: map[string]string{"LC_MESSAGES": "C"}},
			expectedOutput: "C",
		},
		{
			name:           "inherits_without_overrides",
			details:        CommandDetails{Arguments: []string{"-c", "printf %s \"$LC_MESSAGES\""}},
			expectedOutput: "de_DE.UTF-8",
		},
		{
			name:           "runs_in_working_directory",
			details:        CommandDetails{Arguments: []string{"-c", "pwd"}, WorkingDirectory: "/"},
			expectedOutput: "/\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			result, runError := NewOSCommandRunner().Run(context.Background(), ShellCommand{Name: testShellCommandConstant, Details: testCase.details})
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedOutput, result.StandardOutput)
			require.Equal(testInstance, testCase.expectedError, result.StandardError)
			require.Equal(testInstance, testCase.expectedExitCode, result.ExitCode)
		})
	}
}

func TestOSCommandRunnerFailsToStart(testInstance *testing.T) {
	_, runError := NewOSCommandRunner().Run(context.Background(), ShellCommand{Name: CommandName("uncommitted-no-such-binary")})
	require.ErrorIs(testInstance, runError, exec.ErrNotFound)
}

func TestOSCommandRunnerStopsAtDeadline(testInstance *testing.T) {
	requireShell(testInstance)
	executionContext, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	startTime := time.Now()
	_, runError := NewOSCommandRunner().Run(executionContext, ShellCommand{Name: testShellCommandConstant, Details: CommandDetails{Arguments: []string{"-c", "sleep 5"}}})
	require.ErrorIs(testInstance, runError, context.DeadlineExceeded)
	require.Less(testInstance, time.Since(startTime), 4*time.Second)
}

func TestOverrideEnvironment(testInstance *testing.T) {
	require.Nil(testInstance, overrideEnvironment([]string{"A=1"}, nil))
	require.Equal(testInstance,
		[]string{"A=1", "C=3", "B=new", "LC_MESSAGES=C"},
		overrideEnvironment([]string{"A=1", "B=2", "C=3", "LC_MESSAGES=fr_FR"}, map[string]string{"LC_MESSAGES": "C", "B": "new"}),
	)
}
