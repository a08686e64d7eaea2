// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and Invoker, which turns command output into
// decoded report lines while treating every failure as the absence of status.
// The version control scanner uses it to run git, hg, svn, and locate in a
// testable manner.
package execshell
