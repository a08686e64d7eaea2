// Package cli builds the uncommitted command line: the scan command as the root
// command, persistent configuration and logging flags, Viper-backed configuration
// with embedded defaults, and zap logging on standard error.
package cli
