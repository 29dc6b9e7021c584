package oracle

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/lang"
)

// BuiltinFunc resolves one builtin invocation.
type BuiltinFunc func(ctx context.Context, inv expand.Invocation) (lang.Stream, error)

// Builtins resolves a fixed set of invocations implemented in Go:
//
//	concat!("a", 1, 'c', true)  => "a1ctrue"
//	stringify!(x + y)           => "x+y"
//	env!("HOME")                => "/home/user"
//	count!(a, b, c)             => 3
//
// Names are looked up by full path, then by final segment, so std::concat
// also resolves to concat.
type Builtins struct {
	funcs     map[string]BuiltinFunc
	lookupEnv func(string) (string, bool)
}

// BuiltinsOption configures [Builtins].
type BuiltinsOption func(*Builtins)

// WithLookupEnv sets the function env! uses to read variables.
// The default is [os.LookupEnv].
func WithLookupEnv(fn func(string) (string, bool)) BuiltinsOption {
	return func(b *Builtins) { b.lookupEnv = fn }
}

// WithBuiltin adds or replaces a builtin.
func WithBuiltin(name string, fn BuiltinFunc) BuiltinsOption {
	return func(b *Builtins) { b.funcs[name] = fn }
}

// NewBuiltins returns the standard builtins.
func NewBuiltins(opts ...BuiltinsOption) *Builtins {
	b := &Builtins{lookupEnv: os.LookupEnv}
	b.funcs = map[string]BuiltinFunc{
		"concat":    concat,
		"stringify": stringify,
		"env":       b.env,
		"count":     count,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Names returns the builtin names in sorted order.
func (b *Builtins) Names() []string {
	return slices.Sorted(maps.Keys(b.funcs))
}

// Resolve implements [expand.Oracle].
func (b *Builtins) Resolve(
	ctx context.Context,
	inv expand.Invocation,
) (lang.Stream, error) {
	fn, ok := b.funcs[inv.Name()]
	if !ok {
		fn, ok = b.funcs[lastSegment(inv.Segments())]
	}

	if !ok {
		return nil, ErrUnknownName.With(slog.String("name", inv.Name()))
	}

	return fn(ctx, inv)
}

func concat(_ context.Context, inv expand.Invocation) (lang.Stream, error) {
	var sb strings.Builder

	for i, arg := range splitArgs(inv.Args) {
		switch {
		case singleLiteral(arg):
			sb.WriteString(literalValue(arg[0]))

		case len(arg) == 1 && arg[0].IsIdent() &&
			(arg[0].Text == "true" || arg[0].Text == "false"):
			sb.WriteString(arg[0].Text)

		// A negated number lexes as '-' followed by a literal.
		case len(arg) == 2 && arg[0].IsPunct('-') && arg[1].IsLiteral():
			sb.WriteString("-" + arg[1].Text)

		default:
			return nil, ErrArgument.With(
				slog.String("name", inv.Name()),
				slog.Int("index", i),
				slog.String("reason", "expected a literal"),
				slog.String("found", arg.String()),
			)
		}
	}

	return lang.Stream{lang.Quoted(sb.String())}, nil
}

func stringify(_ context.Context, inv expand.Invocation) (lang.Stream, error) {
	return lang.Stream{lang.Quoted(inv.Args.String())}, nil
}

func (b *Builtins) env(_ context.Context, inv expand.Invocation) (lang.Stream, error) {
	args := splitArgs(inv.Args)
	if len(args) < 1 || len(args) > 2 {
		return nil, ErrArgument.With(
			slog.String("name", inv.Name()),
			slog.String("reason", "expected a variable name and an optional message"),
		)
	}

	var names []string

	for _, arg := range args {
		if !singleLiteral(arg) {
			return nil, ErrArgument.With(
				slog.String("name", inv.Name()),
				slog.String("reason", "expected a string literal"),
				slog.String("found", arg.String()),
			)
		}

		v, ok := arg[0].Unquote()
		if !ok {
			return nil, ErrArgument.With(
				slog.String("name", inv.Name()),
				slog.String("reason", "expected a string literal"),
				slog.String("found", arg.String()),
			)
		}

		names = append(names, v)
	}

	value, ok := b.lookupEnv(names[0])
	if !ok {
		err := ErrEnvUnset.With(slog.String("variable", names[0]))
		if len(names) == 2 {
			err = err.With(slog.String("message", names[1]))
		}

		return nil, err
	}

	return lang.Stream{lang.Quoted(value)}, nil
}

func count(_ context.Context, inv expand.Invocation) (lang.Stream, error) {
	return lang.Stream{lang.Literal(strconv.Itoa(len(splitArgs(inv.Args))))}, nil
}
