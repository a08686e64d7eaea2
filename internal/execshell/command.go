package execshell

const (
	commandGitStringConstant        = "git"
	commandMercurialStringConstant  = "hg"
	commandSubversionStringConstant = "svn"
	commandLocateStringConstant     = "locate"
)

// CommandName identifies an external executable.
type CommandName string

// Supported executables.
const (
	CommandGit        CommandName = CommandName(commandGitStringConstant)
	CommandMercurial  CommandName = CommandName(commandMercurialStringConstant)
	CommandSubversion CommandName = CommandName(commandSubversionStringConstant)
	CommandLocate     CommandName = CommandName(commandLocateStringConstant)
)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
// StandardOutput holds the raw bytes written by the process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}
