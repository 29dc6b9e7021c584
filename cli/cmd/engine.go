package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/journal"
	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
	"github.com/ardnew/inox/oracle"
	"github.com/ardnew/inox/pkg"
)

// RulesPathEnv names the environment variable holding additional rule
// search directories, separated by [os.PathListSeparator].
const RulesPathEnv = pkg.EnvPrefix + "_RULES_PATH"

// ruleExts are the file extensions loaded from rule search directories.
var ruleExts = []string{".yaml", ".yml"}

// Vars returns the kong variables referenced by command flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"maxPasses": strconv.Itoa(expand.DefaultMaxPasses),
		"maxDepth":  strconv.Itoa(expand.DefaultMaxDepth),
		"marker":    string(expand.DefaultMarker),
	}
}

// RuleSource selects the rule definitions an oracle is built from.
type RuleSource struct {
	Rules      []string `help:"Rule definition file(s), loaded after search directories" short:"r" type:"existingfile"`
	RulesDir   []string `default:"${rules}" help:"Rule search directories, searched before $INOX_RULES_PATH" type:"path"`
	NoBuiltins bool     `help:"Disable builtin invocations (concat, stringify, env, count)"`
}

// searchPath returns the rule directories in order of precedence: RulesDir
// followed by the entries of [RulesPathEnv].
func (s RuleSource) searchPath() []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(RulesPathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(s.RulesDir...),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(joined) {
		if dir = strings.TrimSpace(dir); dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// ruleFiles lists the rule files in dir in lexical order. A missing
// directory has no rule files.
func ruleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, ErrRulesDir.Wrap(err).With(slog.String("dir", dir))
	}

	var files []string

	for _, entry := range entries {
		if entry.Type().IsRegular() &&
			slices.Contains(ruleExts, filepath.Ext(entry.Name())) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// load builds the registry and builtins. Directories earlier in the search
// path take precedence over later ones, and explicit rule files take
// precedence over every directory.
func (s RuleSource) load(
	ctx context.Context,
	logger log.Logger,
) (*oracle.Registry, *oracle.Builtins, error) {
	reg := oracle.NewRegistry(oracle.WithRegistryLogger(logger))

	dirs := s.searchPath()

	var files []string

	for _, dir := range slices.Backward(dirs) {
		found, err := ruleFiles(dir)
		if err != nil {
			return nil, nil, err
		}

		files = append(files, found...)
	}

	files = append(files, s.Rules...)

	for _, file := range files {
		if err := reg.LoadFile(ctx, file); err != nil {
			return nil, nil, pkg.ErrLoadRules.Wrap(err)
		}
	}

	logger.DebugContext(ctx, "rules ready",
		slog.Any("search_path", dirs),
		slog.Int("files", len(files)),
		slog.Int("definitions", len(reg.Names())))

	var builtins *oracle.Builtins
	if !s.NoBuiltins {
		builtins = oracle.NewBuiltins()
	}

	return reg, builtins, nil
}

// names returns every invocable name: definitions followed by builtins.
func names(reg *oracle.Registry, builtins *oracle.Builtins) []string {
	out := reg.Names()

	if builtins != nil {
		for _, name := range builtins.Names() {
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}

	return out
}

// Engine holds the flags that configure expansion.
type Engine struct {
	RuleSource `embed:""`

	Permissive bool   `help:"Leave invocations the oracle rejects unexpanded"`
	MaxPasses  int    `default:"${maxPasses}" help:"Maximum passes per fixpoint loop"`
	MaxDepth   int    `default:"${maxDepth}"  help:"Maximum invocation nesting depth"`
	Marker     string `default:"${marker}"    help:"Invocation marker character"`
	Journal    string `help:"Record oracle calls in this SQLite journal" type:"path"`
}

// marker returns the configured marker rune.
func (e Engine) marker() (rune, error) {
	if e.Marker == "" {
		return expand.DefaultMarker, nil
	}

	r, size := utf8.DecodeRuneInString(e.Marker)
	if size != len(e.Marker) || !expand.ValidMarker(r) {
		return 0, pkg.ErrInvalidMarker.Wrapf("%q", e.Marker)
	}

	return r, nil
}

// session is the product of [Engine.build].
type session struct {
	expander *expand.Expander
	registry *oracle.Registry
	builtins *oracle.Builtins
	store    journal.Store
}

// Close releases the journal, if any.
func (s *session) Close() error {
	if s.store == nil {
		return nil
	}

	return s.store.Close()
}

// build loads rules and returns a ready expander. source identifies the
// journal session.
func (e Engine) build(ctx context.Context, source string) (*session, error) {
	logger := log.Default()

	marker, err := e.marker()
	if err != nil {
		return nil, err
	}

	reg, builtins, err := e.load(ctx, logger)
	if err != nil {
		return nil, err
	}

	chain := oracle.Chain{reg}
	if builtins != nil {
		chain = append(chain, builtins)
	}

	s := &session{registry: reg, builtins: builtins}

	var resolver expand.Oracle = chain

	if e.Journal != "" {
		store, err := journal.OpenSQLite(ctx, e.Journal)
		if err != nil {
			return nil, pkg.ErrJournal.Wrap(err)
		}

		s.store = store
		resolver = &oracle.Recorder{
			Oracle:  chain,
			Store:   store,
			Logger:  logger,
			Session: journal.NewSession(time.Now(), source),
		}
	}

	mode := expand.Strict
	if e.Permissive {
		mode = expand.Permissive
	}

	s.expander = expand.New(resolver,
		expand.WithMode(mode),
		expand.WithMaxPasses(e.MaxPasses),
		expand.WithMaxDepth(e.MaxDepth),
		expand.WithMarker(marker),
		expand.WithLogger(logger),
	)

	return s, nil
}

// writeStream renders s to w in the named format.
func writeStream(
	ctx context.Context,
	s lang.Stream,
	format string,
	indent int,
) error {
	w := outputFrom(ctx)

	var err error

	switch format {
	case "", "native":
		err = s.Format(ctx, w)
	case "json":
		err = s.FormatJSON(ctx, w, indent)
	case "yaml":
		err = s.FormatYAML(ctx, w, indent)
	default:
		return pkg.ErrInvalidFormat.Wrapf("%q", format)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", format))
	}

	return nil
}
