package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/incremental"
)

type tokenRecord struct {
	Kind      string `json:"kind" yaml:"kind"`
	Start     int    `json:"start" yaml:"start"`
	End       int    `json:"end" yaml:"end"`
	Line      int    `json:"line" yaml:"line"`
	Col       int    `json:"col" yaml:"col"`
	Text      string `json:"text" yaml:"text"`
	Construct string `json:"construct,omitempty" yaml:"construct,omitempty"`
	Levels    int    `json:"levels,omitempty" yaml:"levels,omitempty"`
}

type editRecord struct {
	Restart   int `json:"restart" yaml:"restart"`
	Rescanned int `json:"rescanned" yaml:"rescanned"`
	Reused    int `json:"reused" yaml:"reused"`
}

type report struct {
	Source string        `json:"source" yaml:"source"`
	Tokens []tokenRecord `json:"tokens" yaml:"tokens"`
	Edit   *editRecord   `json:"edit,omitempty" yaml:"edit,omitempty"`
}

func newReport(l *incremental.Log, res *incremental.Result) *report {
	src := l.Source()
	content := src.Content()
	r := &report{Source: src.Name(), Tokens: make([]tokenRecord, 0, l.Len())}
	for _, tok := range l.Tokens() {
		pos := tok.Pos(src)
		rec := tokenRecord{
			Kind:  tok.Kind.String(),
			Start: tok.Start,
			End:   tok.End,
			Line:  pos.Line(),
			Col:   pos.Col(),
			Text:  string(tok.Text(content)),
		}
		switch tok.Kind {
		case grammar.Unterminated:
			rec.Construct = tok.Construct.String()
		case grammar.Indent, grammar.Dedent:
			rec.Levels = tok.Levels
		}
		r.Tokens = append(r.Tokens, rec)
	}

	if res != nil {
		r.Edit = &editRecord{res.Restart, res.Rescanned, res.Reused}
	}
	return r
}

type writer interface {
	write(r *report) error
}

func newWriter(format string, out io.Writer) (writer, error) {
	switch format {
	case "", "text":
		return textWriter{out}, nil
	case "json":
		return jsonWriter{out}, nil
	case "yaml":
		return yamlWriter{out}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type textWriter struct {
	out io.Writer
}

func (w textWriter) write(r *report) error {
	var sb strings.Builder
	for _, t := range r.Tokens {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s", t.Line, t.Col, t.Kind, strconv.Quote(t.Text))
		if t.Construct != "" {
			sb.WriteString("\t" + t.Construct)
		}
		if t.Levels != 0 {
			fmt.Fprintf(&sb, "\t%d", t.Levels)
		}
		sb.WriteByte('\n')
	}
	if r.Edit != nil {
		fmt.Fprintf(&sb, "restart at %d, rescanned %d, reused %d\n", r.Edit.Restart, r.Edit.Rescanned, r.Edit.Reused)
	}

	_, e := io.WriteString(w.out, sb.String())
	return e
}

type jsonWriter struct {
	out io.Writer
}

func (w jsonWriter) write(r *report) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

type yamlWriter struct {
	out io.Writer
}

func (w yamlWriter) write(r *report) error {
	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	e := enc.Encode(r)
	if e != nil {
		return e
	}
	return enc.Close()
}

// parseEdit parses <start>:<end>:<text>, text may contain Go escape sequences.
func parseEdit(s string) (start, end int, text []byte, e error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return 0, 0, nil, fmt.Errorf("invalid edit %q, expecting <start>:<end>:<text>", s)
	}

	start, e = strconv.Atoi(parts[0])
	if e == nil {
		end, e = strconv.Atoi(parts[1])
	}
	if e != nil {
		return 0, 0, nil, fmt.Errorf("invalid edit %q: %w", s, e)
	}

	unquoted, qe := strconv.Unquote(`"` + parts[2] + `"`)
	if qe != nil {
		unquoted = parts[2]
	}
	return start, end, []byte(unquoted), nil
}
