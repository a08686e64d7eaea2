// Package vcs turns the output of git, hg, and svn into uniform report lines.
//
// Each adapter runs its tool through a LineReader, normalizes the text, and
// returns a StatusResult. Only the Git adapter produces subrepositories; only
// the Subversion adapter suppresses working copies, using the scan-wide
// IgnoreSet.
package vcs
