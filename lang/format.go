package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Node is the structured form of a [Token] used by the JSON and YAML
// formatters.
type Node struct {
	Kind  string `json:"kind"            yaml:"kind"`
	Text  string `json:"text,omitempty"  yaml:"text,omitempty"`
	Delim string `json:"delim,omitempty" yaml:"delim,omitempty"`
	Inner []Node `json:"inner,omitempty" yaml:"inner,omitempty"`
}

// Node returns the structured form of t.
func (t Token) Node() Node {
	n := Node{Kind: t.Kind.String()}

	if t.Kind == KindGroup {
		n.Delim = t.Delim.String()
		n.Inner = t.Inner.Nodes()
	} else {
		n.Text = t.Text
	}

	return n
}

// Nodes returns the structured form of s.
func (s Stream) Nodes() []Node {
	nodes := make([]Node, len(s))
	for i, t := range s {
		nodes[i] = t.Node()
	}

	return nodes
}

// Format writes s in native syntax to the writer, followed by a newline.
func (s Stream) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, s.String())

	return err
}

// FormatJSON writes s as a JSON array of nodes to the writer.
func (s Stream) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(s.Nodes(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(s.Nodes())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes s as a YAML sequence of nodes to the writer.
func (s Stream) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, s.Nodes(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
