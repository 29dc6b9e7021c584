package oracle

import (
	"log/slog"

	"github.com/ardnew/inox/lang"
)

// elemKind identifies a compiled pattern element.
type elemKind int

const (
	elemToken elemKind = iota // match a token exactly
	elemGroup                 // match a group and recurse
	elemOne                   // capture one token tree
	elemRest                  // capture the remaining tokens
)

type elem struct {
	token lang.Token
	name  string
	inner pattern
	kind  elemKind
}

// pattern is a compiled match pattern.
type pattern []elem

// captures maps capture names to the tokens they matched.
type captures map[string]lang.Stream

// compilePattern compiles s, collecting capture names into names.
func compilePattern(s lang.Stream, names map[string]bool) (pattern, error) {
	var p pattern

	for i := 0; i < len(s); i++ {
		t := s[i]

		switch {
		case t.IsPunct('$') && i+1 < len(s) && s[i+1].IsIdent():
			name := s[i+1].Text
			i++

			if i+1 < len(s) && s[i+1].IsPunct('*') {
				i++

				if i != len(s)-1 {
					return nil, ErrInvalidRule.With(
						slog.String("reason", "rest capture must be last"),
						slog.String("capture", name),
					)
				}

				p = append(p, elem{kind: elemRest, name: name})
			} else {
				p = append(p, elem{kind: elemOne, name: name})
			}

			names[name] = true

		case t.IsGroup():
			inner, err := compilePattern(t.Inner, names)
			if err != nil {
				return nil, err
			}

			p = append(p, elem{kind: elemGroup, token: t, inner: inner})

		default:
			p = append(p, elem{kind: elemToken, token: t})
		}
	}

	return p, nil
}

// match reports whether s matches p, recording captures in caps. A capture
// already present in caps must match the same tokens again.
func (p pattern) match(s lang.Stream, caps captures) bool {
	for i, e := range p {
		if e.kind == elemRest {
			return bind(caps, e.name, s[min(i, len(s)):])
		}

		if i >= len(s) {
			return false
		}

		t := s[i]

		switch e.kind {
		case elemToken:
			if !e.token.Equal(t) {
				return false
			}

		case elemGroup:
			if !t.IsGroup() || t.Delim != e.token.Delim || !e.inner.match(t.Inner, caps) {
				return false
			}

		case elemOne:
			if !bind(caps, e.name, lang.Stream{t}) {
				return false
			}
		}
	}

	return len(p) == len(s)
}

func bind(caps captures, name string, s lang.Stream) bool {
	if prev, ok := caps[name]; ok {
		return prev.Equal(s)
	}

	caps[name] = s

	return true
}

// templateNames collects the capture names referenced by a template.
func templateNames(s lang.Stream, names map[string]bool) {
	for i := 0; i < len(s); i++ {
		switch t := s[i]; {
		case t.IsPunct('$') && i+1 < len(s) && s[i+1].IsIdent():
			names[s[i+1].Text] = true
			i++

		case t.IsGroup():
			templateNames(t.Inner, names)
		}
	}
}

// substitute returns template with each $name (or $name*) replaced by the
// tokens captured under name. Unknown names are left as written.
func substitute(template lang.Stream, caps captures) lang.Stream {
	out := make(lang.Stream, 0, len(template))

	for i := 0; i < len(template); i++ {
		t := template[i]

		if t.IsPunct('$') && i+1 < len(template) && template[i+1].IsIdent() {
			if c, ok := caps[template[i+1].Text]; ok {
				out = append(out, c.Clone()...)
				i++

				if i+1 < len(template) && template[i+1].IsPunct('*') {
					i++
				}

				continue
			}
		}

		if t.IsGroup() {
			g := lang.Group(t.Delim, substitute(t.Inner, caps)...)
			g.Pos = t.Pos
			out = append(out, g)

			continue
		}

		out = append(out, t)
	}

	return out
}
