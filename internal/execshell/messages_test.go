package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesScannerCommands(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		failure         error
		stage           messageStage
		expectedMessage string
	}{
		{
			name: "git_status_start",
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"status", "-s", "-b"}, WorkingDirectory: "/r/project"},
			},
			stage:           messageStageStart,
			expectedMessage: "Reviewing working tree status in /r/project",
		},
		{
			name: "git_submodule_failure_includes_standard_error",
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"submodule", "status"}, WorkingDirectory: "/r/project"},
			},
			result:          ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository\n"},
			stage:           messageStageFailure,
			expectedMessage: "Failed to enumerate submodules in /r/project (exit code 128: fatal: not a git repository)",
		},
		{
			name: "git_unknown_subcommand_falls_back_to_generic",
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"log", "-1"}, WorkingDirectory: "/r/project"},
			},
			stage:           messageStageSuccess,
			expectedMessage: "Completed git log -1 (in /r/project)",
		},
		{
			name: "mercurial_status_skips_config_option",
			command: ShellCommand{
				Name:    CommandMercurial,
				Details: CommandDetails{Arguments: []string{"--config", "extensions.color=!", "st"}, WorkingDirectory: "/r/hg"},
			},
			stage:           messageStageSuccess,
			expectedMessage: "Collected Mercurial working copy status for /r/hg",
		},
		{
			name: "subversion_status_execution_failure",
			command: ShellCommand{
				Name:    CommandSubversion,
				Details: CommandDetails{Arguments: []string{"st", "-v"}, WorkingDirectory: "/r/svn"},
			},
			failure:         errors.New("executable file not found"),
			stage:           messageStageExecutionFailure,
			expectedMessage: "Unable to review Subversion working copy status in /r/svn: executable file not found",
		},
		{
			name: "locate_uses_pattern_as_subject",
			command: ShellCommand{
				Name:    CommandLocate,
				Details: CommandDetails{Arguments: []string{"-0", "/r\\/.git"}},
			},
			stage:           messageStageStart,
			expectedMessage: "Querying file index for /r\\/.git",
		},
	}

	formatter := CommandMessageFormatter{}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			message := formatter.buildMessage(testCase.command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(testInstance, testCase.expectedMessage, message)
		})
	}
}

func TestBuildStartedMessageWithoutWorkingDirectoryUsesDefaultLabel(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"stash", "list"}}}

	require.Equal(testInstance, "Listing stashes in current directory", formatter.BuildStartedMessage(command))
}
