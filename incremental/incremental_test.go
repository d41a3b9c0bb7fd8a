package incremental

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/internal/test"
	"github.com/apconduct/veld/source"
)

func tokenize(t *testing.T, text string, layout bool) *Log {
	l, e := Tokenize(source.New("test", []byte(text)), WithLayout(layout), WithTabWidth(4))
	test.ExpectNoError(t, e)
	return l
}

func expectSameLog(t *testing.T, expected, got *Log) {
	test.ExpectInt(t, expected.Len(), got.Len())
	for i := 0; i < expected.Len(); i++ {
		ee, ge := expected.Entry(i), got.Entry(i)
		test.Assert(t, ee.Token == ge.Token, "token #%d: expecting %+v, got %+v", i, ee.Token, ge.Token)
		test.Assert(t, ee.Before.Equal(ge.Before), "token #%d: before state differs", i)
		test.Assert(t, ee.After.Equal(ge.After), "token #%d: after state differs", i)
	}
	test.Assert(t, expected.Final().Equal(got.Final()), "final state differs")
}

type editSample struct {
	text          string
	start, oldEnd int
	insert        string
}

func applySample(t *testing.T, s editSample, layout bool) Result {
	old := tokenize(t, s.text, layout)
	content, edit, e := Replace([]byte(s.text), s.start, s.oldEnd, []byte(s.insert))
	test.ExpectNoError(t, e)

	res, e := old.Apply(source.New("test", content), edit)
	test.ExpectNoError(t, e)
	expectSameLog(t, tokenize(t, string(content), layout), res.Log)
	test.Assert(t, res.Rescanned+res.Reused+countBefore(old, res.Restart) == res.Log.Len(),
		"rescanned %d + reused %d do not add up", res.Rescanned, res.Reused)
	return res
}

func countBefore(l *Log, pos int) int {
	n := 0
	for _, tok := range l.Tokens() {
		if tok.End <= pos {
			n++
		}
	}
	return n
}

var editSamples = []editSample{
	{"let x = foo + bar", 8, 11, "bazz"},
	{"let x = foo + bar", 0, 0, "  "},
	{"let x = foo + bar", 17, 17, "1"},
	{"let x = foo + bar", 0, 17, ""},
	{"", 0, 0, "let y"},
	{"x = a", 4, 4, `"`},
	{`x = "a`, 5, 6, `a"`},
	{`s = "a ${ b } c" + d`, 9, 10, "beta"},
	{`s = "a ${ b } c" + d`, 11, 12, ""},
	{`s = "a ${ b } c" + d`, 15, 16, ""},
	{`r##"a"# b"## x y`, 7, 7, "#"},
	{`#= a #= b =# c =# x`, 10, 12, ""},
	{`#= a #= b =# c =# x`, 3, 3, "=#"},
	{"x # comment\ny", 2, 3, "#="},
	{"a @ b $ c", 2, 3, "+"},
	{"a @ b $ c", 6, 7, "("},
	{"f(\"é\") é", 8, 9, "e"},
	{"x\n  y\n  z\nw", 6, 8, ""},
	{"x\n  y\n  z\nw", 9, 9, "\n    q"},
	{"x\n\ty\n  z", 2, 3, "    "},
	{"a = 1.5\nb = 2", 5, 6, ""},
	{"a = 1.5\nb = 2", 7, 8, " "},
	{"a => b", 3, 4, ""},
}

func TestIncrementalEquivalence(t *testing.T) {
	for i, s := range editSamples {
		for _, layout := range []bool{false, true} {
			name := fmt.Sprintf("sample #%d, layout %v", i, layout)
			t.Run(name, func(t *testing.T) {
				applySample(t, s, layout)
			})
		}
	}
}

func TestEveryPosition(t *testing.T) {
	text := "f(\"a ${ g(r#\"}\"#) } #=\" =# b\")\n  #= x #= y =# =#\n  z => 1.5\n"
	inserts := []string{"", "\"", "}", "#=", "=#", "${", "\n ", "x"}
	for pos := 0; pos <= len(text); pos++ {
		for _, ins := range inserts {
			for _, del := range []int{0, 1} {
				if pos+del > len(text) || (del == 0 && ins == "") {
					continue
				}

				name := fmt.Sprintf("%d:%d:%q", pos, pos+del, ins)
				t.Run(name, func(t *testing.T) {
					applySample(t, editSample{text, pos, pos + del, ins}, true)
				})
			}
		}
	}
}

func TestReuse(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("let v%d = v%d + %d", i, i+1, i)
	}
	text := strings.Join(lines, "\n")
	start := strings.Index(text, "v20")

	res := applySample(t, editSample{text, start, start + 3, "value"}, true)
	test.Assert(t, res.Rescanned <= 3, "expecting at most 3 rescanned tokens, got %d", res.Rescanned)
	test.Assert(t, res.Reused > 100, "expecting reused tail, got %d tokens", res.Reused)
	test.Assert(t, res.Restart <= start, "restart %d after edit start %d", res.Restart, start)
}

func TestUnterminatedReuse(t *testing.T) {
	res := applySample(t, editSample{`a "b" c`, 4, 4, "x"}, false)
	test.ExpectInt(t, 1, res.Restart)

	res = applySample(t, editSample{`a "b" c`, 4, 5, ""}, false)
	last := res.Log.Entry(res.Log.Len() - 1).Token
	test.ExpectString(t, "unterminated", last.Kind.String())
	test.ExpectInt(t, 2, last.Start)
}

func TestPreviousLogUnchanged(t *testing.T) {
	text := "x = \"a\" + y"
	old := tokenize(t, text, false)
	tokens := old.Tokens()

	content, edit, _ := Replace([]byte(text), 5, 6, []byte("bcd"))
	_, e := old.Apply(source.New("test", content), edit)
	test.ExpectNoError(t, e)

	test.ExpectInt(t, len(tokens), old.Len())
	for i, tok := range old.Tokens() {
		test.Assert(t, tok == tokens[i], "token #%d changed", i)
	}
}

func TestInvalidTokens(t *testing.T) {
	l := tokenize(t, "a @ é\xff", false)
	kinds := make([]string, l.Len())
	for i, tok := range l.Tokens() {
		kinds[i] = tok.Kind.String()
	}
	test.ExpectString(t, "identifier invalid invalid invalid", strings.Join(kinds, " "))
	test.ExpectInt(t, 2, l.Entry(2).Token.Len())
	test.ExpectInt(t, 1, l.Entry(3).Token.Len())
	test.Assert(t, l.Entry(1).Token.Kind.Is(grammar.ErrorToken), "invalid is not an error token")
}

func TestInvalidEdit(t *testing.T) {
	l := tokenize(t, "abc", false)
	samples := []Edit{
		{-1, 0, 0},
		{2, 1, 2},
		{0, 4, 4},
		{0, 1, 3},
		{1, 1, 0},
	}

	for i, edit := range samples {
		name := fmt.Sprintf("sample #%d", i)
		t.Run(name, func(t *testing.T) {
			_, e := l.Apply(source.New("test", []byte("abcd")), edit)
			test.ExpectErrorCode(t, ErrInvalidEdit, e)
		})
	}

	_, _, e := Replace([]byte("abc"), 2, 4, nil)
	test.ExpectErrorCode(t, ErrInvalidEdit, e)
}

func TestConcurrentSharedSource(t *testing.T) {
	const workers = 8
	text := "let s = \"a ${ r#\"q\"# } b\"\n  #= x #= y =# =#\n  f(1, 2) @\n"
	src := source.New("shared", []byte(text))
	old := tokenize(t, text, true)
	content, edit, e := Replace([]byte(text), 4, 5, []byte("total"))
	test.ExpectNoError(t, e)
	edited := source.New("edited", content)

	logs := make([]*Log, workers)
	results := make([]Result, workers)
	errs := make([]error, 2*workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logs[i], errs[2*i] = Tokenize(src, WithLayout(true), WithTabWidth(4))
			results[i], errs[2*i+1] = old.Apply(edited, edit)
		}(i)
	}
	wg.Wait()

	for _, e := range errs {
		test.ExpectNoError(t, e)
	}
	expected := tokenize(t, string(content), true)
	for i := 0; i < workers; i++ {
		expectSameLog(t, old, logs[i])
		expectSameLog(t, expected, results[i].Log)
	}
}
