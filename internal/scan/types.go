package scan

import (
	"errors"
	"time"

	"github.com/temirov/uncommitted/internal/vcs"
)

const (
	commandUseConstant                      = "uncommitted [flags] path [path...]"
	commandShortDescriptionConstant         = "Report version control working copies with uncommitted work"
	commandLongDescriptionConstant          = "uncommitted searches the given directories for Git, Mercurial, and Subversion working copies and lists the ones with uncommitted changes, unpushed commits, or stashes."
	locateFlagNameConstant                  = "locate"
	locateFlagShorthandConstant             = "l"
	locateFlagUsageConstant                 = "Find working copies through the locate index."
	walkFlagNameConstant                    = "walk"
	walkFlagShorthandConstant               = "w"
	walkFlagUsageConstant                   = "Find working copies by walking the directory tree."
	followSymlinksFlagNameConstant          = "follow-symlinks"
	followSymlinksFlagShorthandConstant     = "L"
	followSymlinksFlagUsageConstant         = "Follow symbolic links while walking."
	verboseFlagNameConstant                 = "verbose"
	verboseFlagShorthandConstant            = "v"
	verboseFlagUsageConstant                = "Also list clean and ignored working copies."
	untrackedFlagNameConstant               = "untracked"
	untrackedFlagShorthandConstant          = "u"
	untrackedFlagUsageConstant              = "Include untracked files in Git reports."
	nonTrackingFlagNameConstant             = "non-tracking"
	nonTrackingFlagShorthandConstant        = "n"
	nonTrackingFlagUsageConstant            = "Include Git branches without an upstream."
	stashFlagNameConstant                   = "stash"
	stashFlagShorthandConstant              = "s"
	stashFlagUsageConstant                  = "Include Git stash entries."
	ignoreFlagNameConstant                  = "ignore"
	ignoreFlagShorthandConstant             = "I"
	ignoreFlagUsageConstant                 = "Skip working copies whose path contains this text (repeatable)."
	ignoreSubversionStatesFlagNameConstant  = "ignore-svn-states"
	ignoreSubversionStatesFlagUsageConstant = "Subversion status characters to leave out of reports, for example \"X?\"."
	commandTimeoutFlagNameConstant          = "command-timeout"
	commandTimeoutFlagUsageConstant         = "Maximum duration of each version control command (0 disables the limit)."
	notDirectoryErrorTemplateConstant       = "Error: not a directory: %s\n"
	discoveryErrorTemplateConstant          = "unable to discover working copies under %s: %w"
	reportWriteErrorTemplateConstant        = "unable to write report: %w"
	repositoryHeaderTemplateConstant        = "%s - %s"
	ignoredRepositoryTemplateConstant       = "Ignoring repo: %s"
	defaultDiscoveryConcurrencyConstant     = 4
	scanCompletedMessageConstant            = "Scan completed"
	rootRejectedMessageConstant             = "Skipping root that is not a directory"
	unsupportedKindMessageConstant          = "No status adapter registered"
	repositorySuppressedMessageConstant     = "Working copy already covered by an enclosing checkout"
	repositoryIgnoredMessageConstant        = "Working copy matches an ignore pattern"
	logFieldRootConstant                    = "root"
	logFieldRootsConstant                   = "roots"
	logFieldDirectoryConstant               = "directory"
	logFieldKindConstant                    = "kind"
	logFieldPatternConstant                 = "pattern"
	logFieldDiscoveredConstant              = "discovered"
	logFieldReportedConstant                = "reported"
	logFieldIgnoredConstant                 = "ignored"
	logFieldSuppressedConstant              = "suppressed"
	externalCommandsMessageConstant         = "External commands finished"
	logFieldCommandsStartedConstant         = "started"
	logFieldCommandsNonZeroExitConstant     = "non_zero_exit"
	logFieldCommandsUnavailableConstant     = "unavailable"
)

// ErrMissingRoots is returned when neither arguments nor configuration name a directory to scan.
var ErrMissingRoots = errors.New("no directories to scan; pass at least one path or configure scan.roots")

// ErrConflictingLocators is returned when index lookup is combined with tree-walk options.
var ErrConflictingLocators = errors.New("--locate cannot be combined with --walk or --follow-symlinks")

// Options captures the parameters of a single scan.
type Options struct {
	Roots                []string
	UseLocate            bool
	FollowSymlinks       bool
	Verbose              bool
	IgnorePatterns       []string
	Status               vcs.StatusOptions
	CommandTimeout       time.Duration
	DiscoveryConcurrency int
}
