// Package utils holds the ambient plumbing shared by the CLI: the Viper-backed ConfigurationLoader,
// the zap LoggerFactory, and FlushingWriter for streaming the report.
//
// Subpackage flags provides yes/no toggles and choice usage strings for pflag; pathutils expands
// home shortcuts in scan roots.
package utils
