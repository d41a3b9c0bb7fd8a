package lexer

import (
	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/internal/bmap"
)

// Match is a successful classification.
type Match struct {
	Kind       grammar.TokenKind
	Len        int
	Transition Transition

	// Lookahead is the exclusive end of bytes examined by all tried rules.
	Lookahead int
}

var (
	keywords  = bmap.FromStrings(grammar.Keywords(), func(string) bool { return true })
	operators = grammar.Operators()
)

// reader tracks the examined range while rules look at content.
type reader struct {
	content []byte
	start   int
	seen    int
}

func (r *reader) at(i int) (byte, bool) {
	abs := r.start + i
	if abs+1 > r.seen {
		r.seen = abs + 1
	}
	if abs >= len(r.content) {
		return 0, false
	}
	return r.content[abs], true
}

func (r *reader) is(i int, b byte) bool {
	c, ok := r.at(i)
	return ok && c == b
}

func (r *reader) has(i int, lit string) bool {
	for j := 0; j < len(lit); j++ {
		if !r.is(i+j, lit[j]) {
			return false
		}
	}
	return true
}

// rule returns match length (0 for no match) and mode transition.
type rule func(r *reader, m Mode) (int, Transition)

var rules = [grammar.KindCount]rule{
	grammar.Identifier:         inCode(identifierRule),
	grammar.Keyword:            inCode(keywordRule),
	grammar.Number:             inCode(numberRule),
	grammar.Operator:           inCode(operatorRule),
	grammar.LambdaArrow:        inCode(literalRule("=>")),
	grammar.Comment:            inCode(commentRule),
	grammar.BlockCommentStart:  blockCommentStartRule,
	grammar.BlockCommentText:   in(BlockCommentMode, blockCommentTextRule),
	grammar.BlockCommentEnd:    in(BlockCommentMode, pop(literalRule("=#"))),
	grammar.StringStart:        inCode(push(literalRule(`"`), Mode{Kind: StringMode})),
	grammar.StringText:         in(StringMode, stringTextRule),
	grammar.InterpolationStart: in(StringMode, push(literalRule("${"), Mode{Kind: InterpolationMode})),
	grammar.InterpolationEnd:   in(InterpolationMode, pop(literalRule("}"))),
	grammar.StringEnd:          in(StringMode, pop(literalRule(`"`))),
	grammar.RawStringStart:     inCode(rawStringStartRule),
	grammar.RawStringText:      in(RawStringMode, rawStringTextRule),
	grammar.RawStringEnd:       in(RawStringMode, rawStringEndRule),
}

// Classify recognizes a token at pos of content in mode m.
// Only kinds from cs are tried. The longest match wins, of equally long matches
// the one listed first in cs wins. Layout and error kinds are never produced here.
// Classify has no side effects, the reported transition is applied by the caller.
func Classify(content []byte, pos int, m Mode, cs CandidateSet) (Match, bool) {
	r := &reader{content: content, start: pos, seen: pos}
	var best Match
	found := false

	for _, k := range cs.Kinds() {
		rl := rules[k]
		if rl == nil {
			continue
		}

		n, tr := rl(r, m)
		if n > best.Len {
			best = Match{Kind: k, Len: n, Transition: tr}
			found = true
		}
	}

	best.Lookahead = r.seen
	return best, found
}

func in(mk ModeKind, rl rule) rule {
	return func(r *reader, m Mode) (int, Transition) {
		if m.Kind != mk {
			return 0, Transition{}
		}
		return rl(r, m)
	}
}

func inCode(rl rule) rule {
	return func(r *reader, m Mode) (int, Transition) {
		if !m.Kind.SkipsSpace() {
			return 0, Transition{}
		}
		return rl(r, m)
	}
}

func push(rl rule, mode Mode) rule {
	return func(r *reader, m Mode) (int, Transition) {
		n, _ := rl(r, m)
		if n == 0 {
			return 0, Transition{}
		}
		return n, Transition{Op: Push, Mode: mode}
	}
}

func pop(rl rule) rule {
	return func(r *reader, m Mode) (int, Transition) {
		n, _ := rl(r, m)
		if n == 0 {
			return 0, Transition{}
		}
		return n, Transition{Op: Pop, Mode: m}
	}
}

func literalRule(lit string) rule {
	return func(r *reader, _ Mode) (int, Transition) {
		if r.has(0, lit) {
			return len(lit), Transition{}
		}
		return 0, Transition{}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isWordChar(b byte) bool {
	return isWordStart(b) || isDigit(b)
}

func wordLen(r *reader) int {
	b, ok := r.at(0)
	if !ok || !isWordStart(b) {
		return 0
	}

	n := 1
	for {
		b, ok = r.at(n)
		if !ok || !isWordChar(b) {
			return n
		}
		n++
	}
}

func identifierRule(r *reader, _ Mode) (int, Transition) {
	return wordLen(r), Transition{}
}

func keywordRule(r *reader, _ Mode) (int, Transition) {
	n := wordLen(r)
	if n > 0 && keywords.Has(r.content[r.start:r.start+n]) {
		return n, Transition{}
	}
	return 0, Transition{}
}

func numberRule(r *reader, _ Mode) (int, Transition) {
	n := 0
	for {
		b, ok := r.at(n)
		if !ok || !isDigit(b) {
			break
		}
		n++
	}
	if n == 0 {
		return 0, Transition{}
	}

	b, ok := r.at(n + 1)
	if r.is(n, '.') && ok && isDigit(b) {
		n += 2
		for {
			b, ok = r.at(n)
			if !ok || !isDigit(b) {
				break
			}
			n++
		}
	}
	return n, Transition{}
}

func operatorRule(r *reader, _ Mode) (int, Transition) {
	for _, op := range operators {
		if r.has(0, op) {
			return len(op), Transition{}
		}
	}
	return 0, Transition{}
}

func commentRule(r *reader, _ Mode) (int, Transition) {
	if !r.is(0, '#') || r.is(1, '=') {
		return 0, Transition{}
	}

	n := 1
	for {
		b, ok := r.at(n)
		if !ok || b == '\n' || b == '\r' {
			return n, Transition{}
		}
		n++
	}
}

func blockCommentStartRule(r *reader, m Mode) (int, Transition) {
	if m.Kind != BlockCommentMode && !m.Kind.SkipsSpace() {
		return 0, Transition{}
	}
	if r.has(0, "#=") {
		return 2, Transition{Op: Push, Mode: Mode{Kind: BlockCommentMode}}
	}
	return 0, Transition{}
}

func blockCommentTextRule(r *reader, _ Mode) (int, Transition) {
	n := 0
	for {
		b, ok := r.at(n)
		if !ok {
			return n, Transition{}
		}
		if (b == '#' && r.is(n+1, '=')) || (b == '=' && r.is(n+1, '#')) {
			return n, Transition{}
		}
		n++
	}
}

func stringTextRule(r *reader, _ Mode) (int, Transition) {
	n := 0
	for {
		b, ok := r.at(n)
		if !ok || b == '"' {
			return n, Transition{}
		}

		switch b {
		case '\\':
			if _, ok = r.at(n + 1); ok {
				n++
			}
		case '$':
			if r.is(n+1, '{') {
				return n, Transition{}
			}
		}
		n++
	}
}

// MaxRawHashes is the longest raw string delimiter supported.
const MaxRawHashes = 255

func rawStringStartRule(r *reader, _ Mode) (int, Transition) {
	if !r.is(0, 'r') {
		return 0, Transition{}
	}

	n := 1
	for r.is(n, '#') {
		if n > MaxRawHashes {
			return 0, Transition{}
		}
		n++
	}
	if !r.is(n, '"') {
		return 0, Transition{}
	}

	return n + 1, Transition{Op: Push, Mode: Mode{Kind: RawStringMode, Hashes: uint8(n - 1)}}
}

func rawTerminatorAt(r *reader, i int, hashes uint8) bool {
	if !r.is(i, '"') {
		return false
	}
	for j := 1; j <= int(hashes); j++ {
		if !r.is(i+j, '#') {
			return false
		}
	}
	return true
}

func rawStringTextRule(r *reader, m Mode) (int, Transition) {
	n := 0
	for {
		if _, ok := r.at(n); !ok || rawTerminatorAt(r, n, m.Hashes) {
			return n, Transition{}
		}
		n++
	}
}

func rawStringEndRule(r *reader, m Mode) (int, Transition) {
	if rawTerminatorAt(r, 0, m.Hashes) {
		return int(m.Hashes) + 1, Transition{Op: Pop, Mode: m}
	}
	return 0, Transition{}
}
