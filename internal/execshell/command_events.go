package execshell

import "sync/atomic"

// CommandEventObserver is notified around every command the ShellExecutor runs.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	// CommandCompleted receives the result of a command that ran, whatever its exit status.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports a command that could not be run to completion.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

// CommandTallySnapshot is a point-in-time copy of a CommandTally.
type CommandTallySnapshot struct {
	Started     int64
	NonZeroExit int64
	Unavailable int64
}

// CommandTally counts command outcomes. It is safe for concurrent use, so locate lookups running in
// parallel across roots can share it with the status adapters.
type CommandTally struct {
	started     atomic.Int64
	nonZeroExit atomic.Int64
	unavailable atomic.Int64
}

// NewCommandTally constructs an empty CommandTally.
func NewCommandTally() *CommandTally {
	return &CommandTally{}
}

// CommandStarted implements CommandEventObserver.
func (tally *CommandTally) CommandStarted(ShellCommand) {
	tally.started.Add(1)
}

// CommandCompleted implements CommandEventObserver.
func (tally *CommandTally) CommandCompleted(_ ShellCommand, result ExecutionResult) {
	if result.ExitCode != 0 {
		tally.nonZeroExit.Add(1)
	}
}

// CommandExecutionFailed implements CommandEventObserver. Missing binaries and expired timeouts
// land here.
func (tally *CommandTally) CommandExecutionFailed(ShellCommand, error) {
	tally.unavailable.Add(1)
}

// Snapshot returns the current counts.
func (tally *CommandTally) Snapshot() CommandTallySnapshot {
	return CommandTallySnapshot{
		Started:     tally.started.Load(),
		NonZeroExit: tally.nonZeroExit.Load(),
		Unavailable: tally.unavailable.Load(),
	}
}
