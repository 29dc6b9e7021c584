// Package cli contains the command line interface for inox.
//
// # Usage
//
// With no command, inox expands its input to a fixpoint:
//
//	inox input.txt
//	echo 'concat!("a", "b")' | inox
//	inox expand --once --format json input.txt
//
// Other commands:
//
//	inox fmt [native|json|yaml] FILE   re-render without expanding
//	inox rules [QUERY]                 list definitions, fuzzy filtered
//	inox journal FILE                  show recorded oracle calls
//	inox repl                          interactive expansion
//	inox init                          write the configuration file
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/inox/config.yaml). Top-level keys apply to
// every command; a mapping named after a command overrides them for that
// command only:
//
//	log-level: debug
//	max-passes: 32
//	expand:
//	  permissive: true
//
// Rule files are searched in the directories given by --rules-dir, then in
// $INOX_RULES_PATH. A definition from an earlier directory shadows one with
// the same name in a later directory; files given with --rules override both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o inox .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/inox/pprof)
package cli
