package lexer

import (
	"testing"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/internal/test"
)

func TestCandidateSet(t *testing.T) {
	cs := NewCandidateSet(grammar.Number, grammar.Identifier, grammar.Number, grammar.KindCount)
	test.ExpectInt(t, 2, cs.Len())
	test.ExpectBool(t, true, cs.Has(grammar.Number))
	test.ExpectBool(t, false, cs.Has(grammar.Keyword))
	test.ExpectBool(t, false, cs.Has(grammar.KindCount))
	test.ExpectBool(t, true, cs.HasAny(grammar.Keyword, grammar.Identifier))
	test.ExpectString(t, "number_literal", cs.Kinds()[0].String())

	only := cs.Only(grammar.Identifier)
	test.ExpectInt(t, 1, only.Len())
	test.ExpectBool(t, true, cs.Only(grammar.Comment).IsEmpty())

	without := cs.Without(grammar.Number)
	test.ExpectInt(t, 1, without.Len())
	test.ExpectBool(t, false, without.Has(grammar.Number))
	test.ExpectInt(t, 2, cs.Len())

	test.ExpectBool(t, true, NewCandidateSet().IsEmpty())
}

func TestDefaultCandidates(t *testing.T) {
	layout := DefaultCandidates(NormalMode, true)
	test.ExpectString(t, "newline", layout.Kinds()[0].String())
	test.ExpectBool(t, true, layout.Has(grammar.Dedent))
	test.ExpectBool(t, false, DefaultCandidates(NormalMode, false).Has(grammar.Newline))
	test.ExpectBool(t, false, DefaultCandidates(InterpolationMode, true).Has(grammar.Indent))

	kw := DefaultCandidates(NormalMode, false).Kinds()
	ki, ii := -1, -1
	for i, k := range kw {
		switch k {
		case grammar.Keyword:
			ki = i
		case grammar.Identifier:
			ii = i
		}
	}
	test.Assert(t, ki >= 0 && ki < ii, "keyword must precede identifier: %d, %d", ki, ii)

	for mk := ModeKind(0); mk.Valid(); mk++ {
		cs := DefaultCandidates(mk, false)
		test.Assert(t, !cs.IsEmpty(), "no candidates in %s mode", mk)
		if term, ok := (Mode{Kind: mk}).Terminator(); ok {
			test.Assert(t, cs.Has(term), "%s mode lacks %s", mk, term)
		}
	}

	test.ExpectBool(t, true, DefaultCandidates(ModeKind(100), false).IsEmpty())
}

func TestModeNames(t *testing.T) {
	test.ExpectString(t, "block-comment", BlockCommentMode.String())
	test.ExpectString(t, "-invalid-", ModeKind(100).String())
	test.ExpectString(t, "-invalid-", ModeKindCount.String())
	for mk := ModeKind(0); mk < ModeKindCount; mk++ {
		test.Assert(t, mk.Valid(), "mode kind %d must be valid", mk)
		test.Assert(t, !DefaultCandidates(mk, false).IsEmpty(), "mode %s has no candidates", mk)
	}
	test.ExpectString(t, `raw-string("#)`, Mode{Kind: RawStringMode, Hashes: 1}.String())

	_, ok := Mode{Kind: NormalMode}.Terminator()
	test.ExpectBool(t, false, ok)
}

func TestTokenShift(t *testing.T) {
	tok := Token{Kind: grammar.Identifier, Start: 3, End: 5, Lookahead: 6}
	moved := tok.Shift(4)
	test.ExpectInt(t, 7, moved.Start)
	test.ExpectInt(t, 9, moved.End)
	test.ExpectInt(t, 10, moved.Lookahead)
	test.ExpectInt(t, 2, moved.Len())
	test.ExpectBool(t, false, tok.SameLexeme(moved))
	test.ExpectBool(t, true, moved.Shift(-4).SameLexeme(tok))
	test.ExpectString(t, "bc", string(tok.Shift(-2).Text([]byte("abcdef"))))
}
