package repl

import "github.com/ardnew/inox/lang"

// Sentinel errors.
var (
	ErrOutOfBounds  = lang.NewError("index out of range")
	ErrEditDeclined = lang.NewError("decline edit")
	ErrNoExpander   = lang.NewError("no expander")
	ErrStepLimit    = lang.NewError("expansion unfinished after step limit")
)
