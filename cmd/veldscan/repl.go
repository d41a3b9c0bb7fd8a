package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/incremental"
	"github.com/apconduct/veld/source"
)

const (
	historyFile = ".veldscan_history"
	promptMain  = "veld> "
	promptCont  = "  ... "
)

// repl tokenizes entered text until end of input or :quit.
// Input ending inside an unclosed string or comment continues on the next line.
func repl(out writer, opts []incremental.Option) error {
	histPath := ""
	if home, e := os.UserHomeDir(); e == nil {
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, e := os.Open(histPath); e == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, e := os.Create(histPath); e == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for n := 1; ; n++ {
		l, last, e := readEntry(ln, fmt.Sprintf("<input %d>", n), opts)
		if e != nil {
			return e
		}
		if l == nil {
			return nil
		}

		text := string(l.Source().Content())
		switch strings.TrimSpace(text) {
		case "":
			if last {
				return nil
			}
			continue
		case ":quit":
			return nil
		}

		e = out.write(newReport(l, nil))
		if e != nil {
			return e
		}
		ln.AppendHistory(strings.ReplaceAll(text, "\n", " "))
		if last {
			return nil
		}
	}
}

// readEntry reads lines until tokenized text is complete.
// End of input or abort inside a continued entry returns the lines read so far with last set.
func readEntry(ln prompter, name string, opts []incremental.Option) (l *incremental.Log, last bool, e error) {
	var sb strings.Builder
	lines := 0
	for {
		prompt := promptMain
		if lines > 0 {
			prompt = promptCont
		}

		line, e := ln.Prompt(prompt)
		if errors.Is(e, io.EOF) || errors.Is(e, liner.ErrPromptAborted) {
			if lines == 0 {
				return nil, true, nil
			}
			l, e = incremental.Tokenize(source.New(name, []byte(sb.String())), opts...)
			return l, true, e
		}
		if e != nil {
			return nil, false, e
		}

		if lines > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		lines++

		l, e = incremental.Tokenize(source.New(name, []byte(sb.String())), opts...)
		if e != nil {
			return nil, false, e
		}
		if !incomplete(l) {
			return l, false, nil
		}
	}
}

// prompter reads one line of interactive input.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// incomplete tells whether the last token is an unclosed construct that more input may close.
func incomplete(l *incremental.Log) bool {
	if l.Len() == 0 {
		return false
	}
	return l.Entry(l.Len()-1).Token.Kind == grammar.Unterminated
}
