/*
veldscan is a console utility tokenizing Veld sources with the external scanner.
Usage is

	veldscan [-c <config>] [-f text|json|yaml] [-layout] [-tab <n>] [-edit <start>:<end>:<text>] [-i] [-v] [<file>]

-c <config> defines configuration file, default is veldscan.yaml in current directory or $HOME/.config/veldscan;

-f defines output format, default is text;

-layout enables newline, indent, and dedent tokens;

-tab <n> defines tab width used for indentation columns;

-edit replaces bytes [start, end) with text after tokenizing and prints the incrementally revalidated tokens,
text may contain Go escape sequences;

-i starts interactive mode tokenizing entered lines;

-v prints language name and version;

<file> defines source file, default is standard input.

Every setting may also be given by VELDSCAN_* environment variables, e.g. VELDSCAN_LOG_LEVEL=debug.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/incremental"
	"github.com/apconduct/veld/source"
)

const (
	exitOK    = 0
	exitUsage = 2
	exitError = 3
)

type options struct {
	configFile  string
	format      string
	layout      bool
	tabWidth    int
	edit        string
	interactive bool
	version     bool
	inFileName  string
	setFlags    map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{setFlags: map[string]bool{}}
	fs := flag.NewFlagSet("veldscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage is  veldscan [-c <config>] [-f text|json|yaml] [-layout] [-tab <n>] [-edit <start>:<end>:<text>] [-i] [-v] [<file>]")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "  <file>")
		fmt.Fprintln(fs.Output(), "\tsource file name, default is standard input")
	}

	fs.StringVar(&opts.configFile, "c", "", "configuration file name")
	fs.StringVar(&opts.format, "f", "", "output format: text, json, or yaml")
	fs.BoolVar(&opts.layout, "layout", false, "emit newline, indent, and dedent tokens")
	fs.IntVar(&opts.tabWidth, "tab", 0, "tab width for indentation columns")
	fs.StringVar(&opts.edit, "edit", "", "edit to replay as <start>:<end>:<text>")
	fs.BoolVar(&opts.interactive, "i", false, "interactive mode")
	fs.BoolVar(&opts.version, "v", false, "print language name and version")
	e := fs.Parse(args)
	if e != nil {
		return nil, e
	}

	fs.Visit(func(f *flag.Flag) {
		opts.setFlags[f.Name] = true
	})
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, errors.New("too many arguments")
	}
	opts.inFileName = fs.Arg(0)
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, e := parseFlags(args, stderr)
	if e != nil {
		return exitUsage
	}

	if opts.version {
		lang := grammar.Veld()
		fmt.Fprintf(stdout, "%s %d (%d token kinds)\n", lang.Name(), lang.Version(), lang.TokenCount())
		return exitOK
	}

	cfg, e := loadConfig(opts)
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitUsage
	}

	log, e := newLogger(cfg.Log, stderr)
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitUsage
	}
	defer log.Sync()

	out, e := newWriter(cfg.Output.Format, stdout)
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitUsage
	}

	tokOpts := cfg.tokenizeOptions(log)
	if opts.interactive {
		e = repl(out, tokOpts)
	} else {
		e = tokenizeInput(opts, stdin, out, tokOpts, log)
	}

	if e != nil {
		log.Error("veldscan failed", zap.Error(e))
		fmt.Fprintln(stderr, e.Error())
		return exitError
	}
	return exitOK
}

func tokenizeInput(opts *options, stdin io.Reader, out writer, tokOpts []incremental.Option, log *zap.Logger) error {
	name := opts.inFileName
	var content []byte
	var e error
	if name == "" {
		name = "<stdin>"
		content, e = io.ReadAll(stdin)
	} else {
		content, e = os.ReadFile(name)
	}
	if e != nil {
		return fmt.Errorf("cannot read source: %w", e)
	}

	src := source.New(name, content)
	l, e := incremental.Tokenize(src, tokOpts...)
	if e != nil {
		return fmt.Errorf("cannot tokenize %s: %w", name, e)
	}
	log.Debug("tokenized", zap.String("source", name), zap.Int("tokens", l.Len()))

	if opts.edit == "" {
		return out.write(newReport(l, nil))
	}

	start, end, text, e := parseEdit(opts.edit)
	if e != nil {
		return e
	}
	newContent, edit, e := incremental.Replace(content, start, end, text)
	if e != nil {
		return e
	}

	res, e := l.Apply(source.New(name, newContent), edit)
	if e != nil {
		return fmt.Errorf("cannot apply edit: %w", e)
	}
	return out.write(newReport(res.Log, &res))
}
