package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML config file.
//
// Top-level keys name global flags. A key matching a command name holds a
// mapping of that command's flags, which take precedence over the global
// keys:
//
//	log-level: debug
//	log-pretty: false
//	expand:
//	  permissive: true
//	  max-passes: 64
//	  rules: [~/.config/inox/rules/std.yaml]
//
// Flag names may use underscores in place of hyphens. Command-line flags
// override config file values. A file that fails to decode is reported as an
// error so that a typo does not silently drop settings.
func resolve(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	return config(raw), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := r[parent.Command.Name].(map[string]any); ok {
			if value, ok := lookup(section, flag.Name); ok {
				return value, nil
			}
		}
	}

	if value, ok := lookup(r, flag.Name); ok {
		return value, nil
	}

	return nil, nil
}

// lookup finds name in m, trying the underscore form if the hyphenated form
// is absent. Kong parses flag values from strings, so scalars are
// stringified.
func lookup(m map[string]any, name string) (any, bool) {
	value, ok := m[name]
	if !ok {
		value, ok = m[strings.ReplaceAll(name, "-", "_")]
	}

	if !ok || value == nil {
		return nil, false
	}

	return normalize(value), true
}

func normalize(value any) any {
	switch v := value.(type) {
	case bool, string:
		return v

	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = normalize(elem)
		}

		return out

	default:
		return fmt.Sprint(v)
	}
}
