package oracle

import "github.com/ardnew/inox/lang"

// splitArgs splits s at top-level commas. A trailing comma does not start
// another argument, and an empty stream has no arguments.
func splitArgs(s lang.Stream) []lang.Stream {
	if len(s) == 0 {
		return nil
	}

	var (
		args []lang.Stream
		cur  lang.Stream
	)

	for _, t := range s {
		if t.IsPunct(',') {
			args = append(args, cur)
			cur = nil

			continue
		}

		cur = append(cur, t)
	}

	if len(cur) > 0 {
		args = append(args, cur)
	}

	return args
}

// singleLiteral reports whether s is exactly one literal token.
func singleLiteral(s lang.Stream) bool {
	return len(s) == 1 && s[0].IsLiteral()
}

// literalValue returns the text a literal contributes when concatenated:
// the unquoted value of a string or character, or the raw text otherwise.
func literalValue(t lang.Token) string {
	if v, ok := t.Unquote(); ok {
		return v
	}

	return t.Text
}

// lastSegment returns the final identifier of a qualified name.
func lastSegment(segments []string) string {
	if len(segments) == 0 {
		return ""
	}

	return segments[len(segments)-1]
}
