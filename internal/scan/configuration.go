package scan

import (
	"strings"
	"time"
)

// CommandConfiguration captures persistent settings for the scan command.
type CommandConfiguration struct {
	Roots                  []string      `mapstructure:"roots"`
	UseLocate              bool          `mapstructure:"use_locate"`
	FollowSymlinks         bool          `mapstructure:"follow_symlinks"`
	Verbose                bool          `mapstructure:"verbose"`
	Untracked              bool          `mapstructure:"untracked"`
	NonTracking            bool          `mapstructure:"non_tracking"`
	Stash                  bool          `mapstructure:"stash"`
	IgnorePatterns         []string      `mapstructure:"ignore_patterns"`
	IgnoreSubversionStates string        `mapstructure:"ignore_svn_states"`
	CommandTimeout         time.Duration `mapstructure:"command_timeout"`
	DiscoveryConcurrency   int           `mapstructure:"discovery_concurrency"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scan command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DiscoveryConcurrency: defaultDiscoveryConcurrencyConstant,
	}
}

// sanitize trims whitespace, drops blank list entries, and clamps numeric settings.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Roots = sanitizeEntries(configuration.Roots)
	sanitized.IgnorePatterns = sanitizeEntries(configuration.IgnorePatterns)
	sanitized.IgnoreSubversionStates = strings.TrimSpace(configuration.IgnoreSubversionStates)
	if sanitized.CommandTimeout < 0 {
		sanitized.CommandTimeout = 0
	}
	if sanitized.DiscoveryConcurrency <= 0 {
		sanitized.DiscoveryConcurrency = defaultDiscoveryConcurrencyConstant
	}

	return sanitized
}

// nonEmptyEntries drops empty entries and keeps the rest verbatim. Command-line roots and ignore
// patterns are literal: a directory name may end in a space and " old" matches less than "old".
func nonEmptyEntries(raw []string) []string {
	entries := make([]string, 0, len(raw))
	for _, entry := range raw {
		if len(entry) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func sanitizeEntries(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
