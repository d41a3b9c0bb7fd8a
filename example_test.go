package veld_test

import (
	"fmt"
	"strings"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/incremental"
	"github.com/apconduct/veld/lexer"
	"github.com/apconduct/veld/scanner"
	"github.com/apconduct/veld/source"
)

func Example() {
	src := source.New("example", []byte(`greet = "hi ${name}"`))
	c := source.NewCursor(src)
	s := scanner.New()
	defer s.Destroy()

	for {
		tok, ok, e := s.Scan(c, lexer.DefaultCandidates(s.Top().Kind, false))
		if e != nil {
			fmt.Println(e)
			return
		}
		if !ok {
			break
		}
		fmt.Printf("%s %q\n", tok.Kind, tok.Text(src.Content()))
	}

	// Output:
	// identifier "greet"
	// operator "="
	// string_start "\""
	// string_text "hi "
	// interpolation_start "${"
	// identifier "name"
	// interpolation_end "}"
	// string_end "\""
}

func Example_incremental() {
	text := []byte("let total = price + tax")
	l, e := incremental.Tokenize(source.New("example", text))
	if e != nil {
		fmt.Println(e)
		return
	}

	text, edit, _ := incremental.Replace(text, 12, 17, []byte("cost"))
	res, e := l.Apply(source.New("example", text), edit)
	if e != nil {
		fmt.Println(e)
		return
	}

	var names []string
	for _, tok := range res.Log.Tokens() {
		if tok.Kind == grammar.Identifier {
			names = append(names, string(tok.Text(text)))
		}
	}
	fmt.Println(strings.Join(names, " "))
	fmt.Printf("restart %d, rescanned %d, reused %d\n", res.Restart, res.Rescanned, res.Reused)

	// Output:
	// total cost tax
	// restart 11, rescanned 2, reused 1
}
