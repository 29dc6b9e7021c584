package oracle

import "github.com/ardnew/inox/lang"

// Predefined errors (sentinel values).
var (
	ErrUnknownName = lang.NewError("no definition for invocation")
	ErrNoMatch     = lang.NewError("no rule matched the invocation arguments")
	ErrNotLiteral  = lang.NewError("expansion did not produce a single literal")
	ErrGuard       = lang.NewError("rule guard failed")
	ErrInvalidRule = lang.NewError("invalid rule")
	ErrLoadRules   = lang.NewError("failed to load rules")
	ErrArgument    = lang.NewError("invalid argument")
	ErrEnvUnset    = lang.NewError("environment variable not defined")
)
