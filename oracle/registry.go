package oracle

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
)

// Rule is one rewrite alternative of a [Definition]. Match, Expand, and When
// are source text; Delim restricts the rule to one argument delimiter.
type Rule struct {
	Match  string `yaml:"match"`
	Expand string `yaml:"expand"`
	When   string `yaml:"when,omitempty"`
	Delim  string `yaml:"delim,omitempty"`
}

// Definition is a named list of rules, tried in order.
type Definition struct {
	Name  string `yaml:"-"`
	Doc   string `yaml:"doc,omitempty"`
	Rules []Rule `yaml:"rules"`
	// LiteralOnly rejects any expansion that is not a single literal.
	LiteralOnly bool `yaml:"literal_only,omitempty"`
}

// File is the YAML document format read by [Registry.LoadYAML].
type File struct {
	Definitions map[string]Definition `yaml:"definitions"`
	// LiteralOnly applies to every definition in the file.
	LiteralOnly bool `yaml:"literal_only,omitempty"`
}

// compiledRule is a [Rule] ready to match.
type compiledRule struct {
	guard  *vm.Program
	match  pattern
	expand lang.Stream
	source Rule
	delim  lang.Delimiter
}

type compiledDef struct {
	def   Definition
	rules []compiledRule
}

// GuardEnv is the environment a rule's when expression is evaluated in.
type GuardEnv struct {
	// Captures maps capture names to their tokens in native syntax.
	Captures map[string]string `expr:"captures"`
	// Values maps capture names to the unquoted value of a single string or
	// character literal, or to the native syntax of anything else.
	Values map[string]string `expr:"values"`
	Name   string            `expr:"name"`
	Delim  string            `expr:"delim"`
	Args   string            `expr:"args"`
	Path   []string          `expr:"path"`
	Argc   int               `expr:"argc"`
	Depth  int               `expr:"depth"`
}

// Registry resolves invocations from a table of rule definitions.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*compiledDef
	logger log.Logger
}

// RegistryOption configures a [Registry].
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used to trace rule matching.
func WithRegistryLogger(logger log.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{defs: map[string]*compiledDef{}}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Define compiles def and adds it to the registry, replacing any definition
// with the same name.
func (r *Registry) Define(ctx context.Context, def Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return ErrInvalidRule.With(slog.String("reason", "definition has no name"))
	}

	cd := &compiledDef{def: def}

	for i, rule := range def.Rules {
		cr, err := compileRule(ctx, rule)
		if err != nil {
			return lang.WrapError(err).With(
				slog.String("definition", def.Name),
				slog.Int("rule", i),
			)
		}

		cd.rules = append(cd.rules, cr)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs[def.Name] = cd

	return nil
}

func compileRule(ctx context.Context, rule Rule) (compiledRule, error) {
	cr := compiledRule{source: rule}

	match, err := lang.Parse(ctx, rule.Match)
	if err != nil {
		return cr, ErrInvalidRule.Wrap(err).With(slog.String("match", rule.Match))
	}

	bound := map[string]bool{}

	cr.match, err = compilePattern(match, bound)
	if err != nil {
		return cr, err
	}

	cr.expand, err = lang.Parse(ctx, rule.Expand)
	if err != nil {
		return cr, ErrInvalidRule.Wrap(err).With(slog.String("expand", rule.Expand))
	}

	used := map[string]bool{}
	templateNames(cr.expand, used)

	for name := range used {
		if !bound[name] {
			return cr, ErrInvalidRule.With(
				slog.String("reason", "template uses a name the pattern does not capture"),
				slog.String("capture", name),
			)
		}
	}

	if rule.Delim != "" {
		d, ok := lang.ParseDelimiter(rule.Delim)
		if !ok {
			return cr, ErrInvalidRule.With(slog.String("delim", rule.Delim))
		}

		cr.delim = d
	}

	if strings.TrimSpace(rule.When) != "" {
		cr.guard, err = expr.Compile(rule.When, expr.Env(GuardEnv{}), expr.AsBool())
		if err != nil {
			return cr, ErrInvalidRule.Wrap(err).With(slog.String("when", rule.When))
		}
	}

	return cr, nil
}

// LoadYAML reads definitions from a YAML document. source names the document
// in errors. Every definition is compiled before any is added.
func (r *Registry) LoadYAML(ctx context.Context, data []byte, source string) error {
	var file File

	if err := yaml.UnmarshalContext(ctx, data, &file); err != nil {
		return ErrLoadRules.Wrap(err).With(slog.String("source", source))
	}

	staged := NewRegistry()

	for _, name := range slices.Sorted(maps.Keys(file.Definitions)) {
		def := file.Definitions[name]
		def.Name = name
		def.LiteralOnly = def.LiteralOnly || file.LiteralOnly

		if err := staged.Define(ctx, def); err != nil {
			return ErrLoadRules.Wrap(err).With(slog.String("source", source))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	maps.Copy(r.defs, staged.defs)

	r.logger.DebugContext(ctx, "rules loaded",
		slog.String("source", source),
		slog.Int("definitions", len(staged.defs)))

	return nil
}

// LoadFile reads definitions from the YAML file at path.
func (r *Registry) LoadFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrLoadRules.Wrap(err).With(slog.String("source", path))
	}

	return r.LoadYAML(ctx, data, path)
}

// Names returns the defined names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.defs))
}

// Lookup returns the definition named name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cd, ok := r.defs[name]
	if !ok {
		return Definition{}, false
	}

	return cd.def, true
}

// find returns the definition for inv: by full path, then by final segment.
func (r *Registry) find(inv expand.Invocation) (*compiledDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cd, ok := r.defs[inv.Name()]; ok {
		return cd, true
	}

	cd, ok := r.defs[lastSegment(inv.Segments())]

	return cd, ok
}

// Resolve implements [expand.Oracle].
func (r *Registry) Resolve(
	ctx context.Context,
	inv expand.Invocation,
) (lang.Stream, error) {
	cd, ok := r.find(inv)
	if !ok {
		return nil, ErrUnknownName.With(slog.String("name", inv.Name()))
	}

	for i, rule := range cd.rules {
		if rule.delim != lang.DelimNone && rule.delim != inv.Delim {
			continue
		}

		caps := captures{}
		if !rule.match.match(inv.Args, caps) {
			continue
		}

		if rule.guard != nil {
			ok, err := runGuard(rule.guard, inv, caps)
			if err != nil {
				return nil, ErrGuard.Wrap(err).With(
					slog.String("name", inv.Name()),
					slog.String("when", rule.source.When),
				)
			}

			if !ok {
				continue
			}
		}

		out := substitute(rule.expand, caps)

		if cd.def.LiteralOnly && !singleLiteral(out) {
			return nil, ErrNotLiteral.With(
				slog.String("name", inv.Name()),
				slog.String("result", out.String()),
			)
		}

		r.logger.TraceContext(ctx, "rule matched",
			slog.String("name", inv.Name()),
			slog.Int("rule", i))

		return out, nil
	}

	return nil, ErrNoMatch.With(
		slog.String("name", inv.Name()),
		slog.String("args", inv.Args.String()),
	)
}

func runGuard(program *vm.Program, inv expand.Invocation, caps captures) (bool, error) {
	env := GuardEnv{
		Captures: make(map[string]string, len(caps)),
		Values:   make(map[string]string, len(caps)),
		Name:     inv.Name(),
		Delim:    inv.Delim.String(),
		Args:     inv.Args.String(),
		Path:     inv.Segments(),
		Argc:     len(splitArgs(inv.Args)),
		Depth:    inv.Depth,
	}

	for name, s := range caps {
		env.Captures[name] = s.String()
		env.Values[name] = s.String()

		if len(s) == 1 {
			if v, ok := s[0].Unquote(); ok {
				env.Values[name] = v
			}
		}
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}

	ok, _ := out.(bool)

	return ok, nil
}
