package vcs

import (
	"context"
	"strings"

	"github.com/temirov/uncommitted/internal/execshell"
)

const (
	gitStatusSubcommandConstant         = "status"
	gitShortFormatFlagConstant          = "-s"
	gitBranchHeaderFlagConstant         = "-b"
	gitBranchSubcommandConstant         = "branch"
	gitVerboseFlagConstant              = "-v"
	gitForEachRefSubcommandConstant     = "for-each-ref"
	gitUpstreamFormatArgumentConstant   = "--format=[%(refname:short)]%(upstream)"
	gitLocalHeadsNamespaceConstant      = "refs/heads"
	gitStashSubcommandConstant          = "stash"
	gitListSubcommandConstant           = "list"
	gitSubmoduleSubcommandConstant      = "submodule"
	gitUntrackedPrefixConstant          = "?"
	gitBranchHeaderPrefixConstant       = "##"
	gitAheadMarkerConstant              = " [ahead "
	gitCurrentBranchMarkerConstant      = "*"
	gitMissingUpstreamSuffixConstant    = "]"
	gitCheckedOutSubmoduleStateConstant = ' '
	gitModifiedSubmoduleStateConstant   = '+'
	gitSubmoduleDescriptionOpenConstant = " ("
	gitSubmoduleDescriptionEndConstant  = ")"
	gitSubmoduleFieldSeparatorConstant  = " "
)

// GitStatusAdapter reports uncommitted and unpushed work in Git working copies.
type GitStatusAdapter struct {
	lineReader LineReader
}

// NewGitStatusAdapter constructs the Git adapter.
func NewGitStatusAdapter(lineReader LineReader) *GitStatusAdapter {
	return &GitStatusAdapter{lineReader: lineReader}
}

// Status collects short status lines, branches ahead of their upstream and, when requested, branches
// without an upstream and stash entries. Submodule paths are always returned, whether or not the
// working copy itself is dirty.
func (adapter *GitStatusAdapter) Status(executionContext context.Context, directory string, ignoreSet *IgnoreSet, options StatusOptions) StatusResult {
	var reportLines []string

	for _, statusLine := range adapter.lineReader.Lines(executionContext, execshell.CommandGit, directory, gitStatusSubcommandConstant, gitShortFormatFlagConstant, gitBranchHeaderFlagConstant) {
		if keepStatusLine(statusLine, options.Untracked) {
			reportLines = append(reportLines, statusLine)
		}
	}

	for _, branchLine := range adapter.lineReader.Lines(executionContext, execshell.CommandGit, directory, gitBranchSubcommandConstant, gitVerboseFlagConstant) {
		// the checked out branch is already covered by the status header
		if strings.HasPrefix(branchLine, gitCurrentBranchMarkerConstant) {
			continue
		}
		if strings.Contains(branchLine, gitAheadMarkerConstant) {
			reportLines = append(reportLines, branchLine)
		}
	}

	if options.NonTracking {
		for _, referenceLine := range adapter.lineReader.Lines(executionContext, execshell.CommandGit, directory, gitForEachRefSubcommandConstant, gitUpstreamFormatArgumentConstant, gitLocalHeadsNamespaceConstant) {
			if strings.HasSuffix(referenceLine, gitMissingUpstreamSuffixConstant) {
				reportLines = append(reportLines, referenceLine)
			}
		}
	}

	if options.Stash {
		reportLines = append(reportLines, adapter.lineReader.Lines(executionContext, execshell.CommandGit, directory, gitStashSubcommandConstant, gitListSubcommandConstant)...)
	}

	var subrepositories []string
	for _, submoduleLine := range adapter.lineReader.Lines(executionContext, execshell.CommandGit, directory, gitSubmoduleSubcommandConstant, gitStatusSubcommandConstant) {
		if submodulePath, parsed := ParseSubmodulePath(submoduleLine); parsed {
			subrepositories = append(subrepositories, submodulePath)
		}
	}

	return StatusResult{Lines: reportLines, Subrepositories: subrepositories}
}

func keepStatusLine(statusLine string, includeUntracked bool) bool {
	if strings.Contains(statusLine, gitAheadMarkerConstant) {
		return true
	}
	if strings.HasPrefix(statusLine, gitBranchHeaderPrefixConstant) {
		return false
	}
	return includeUntracked || !strings.HasPrefix(statusLine, gitUntrackedPrefixConstant)
}

// ParseSubmodulePath extracts the relative path from a `git submodule status` line of the form
// "<state><sha1> <path>[ (<description>)]". Git appends the description only for checked-out
// (' ') and modified ('+') submodules, and only the last parenthesized group is treated as the
// description, so paths that contain parentheses survive intact.
func ParseSubmodulePath(submoduleLine string) (string, bool) {
	if len(submoduleLine) < 2 {
		return "", false
	}
	submoduleState := submoduleLine[0]
	remainder := submoduleLine[1:]

	separatorIndex := strings.Index(remainder, gitSubmoduleFieldSeparatorConstant)
	if separatorIndex < 0 {
		return "", false
	}
	submodulePath := remainder[separatorIndex+1:]

	if carriesSubmoduleDescription(submoduleState) && strings.HasSuffix(submodulePath, gitSubmoduleDescriptionEndConstant) {
		if descriptionIndex := strings.LastIndex(submodulePath, gitSubmoduleDescriptionOpenConstant); descriptionIndex >= 0 {
			submodulePath = submodulePath[:descriptionIndex]
		}
	}

	if len(submodulePath) == 0 {
		return "", false
	}
	return submodulePath, true
}

func carriesSubmoduleDescription(submoduleState byte) bool {
	return submoduleState == gitCheckedOutSubmoduleStateConstant || submoduleState == gitModifiedSubmoduleStateConstant
}
