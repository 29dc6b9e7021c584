// Package cmd implements the inox subcommands: expand, fmt, rules, journal,
// repl, init, and version.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// RulesIdentifier is the kong variable identifier containing the path to
	// the default rule search directory.
	RulesIdentifier = "rules"
)
