package lexer

import "github.com/apconduct/veld/grammar"

// CandidateSet is an ordered set of token kinds acceptable in the current parser state.
// Order is priority: of two equally long matches the kind listed first wins.
type CandidateSet struct {
	kinds []grammar.TokenKind
	mask  uint64
}

// NewCandidateSet creates a set, duplicates and invalid kinds are dropped.
func NewCandidateSet(kinds ...grammar.TokenKind) CandidateSet {
	result := CandidateSet{kinds: make([]grammar.TokenKind, 0, len(kinds))}
	for _, k := range kinds {
		if !k.Valid() || result.Has(k) {
			continue
		}

		result.kinds = append(result.kinds, k)
		result.mask |= 1 << k
	}
	return result
}

func (cs CandidateSet) Has(k grammar.TokenKind) bool {
	return k.Valid() && cs.mask&(1<<k) != 0
}

// HasAny tells whether at least one of kinds is in the set.
func (cs CandidateSet) HasAny(kinds ...grammar.TokenKind) bool {
	for _, k := range kinds {
		if cs.Has(k) {
			return true
		}
	}
	return false
}

// Kinds returns kinds in priority order. The slice must not be modified.
func (cs CandidateSet) Kinds() []grammar.TokenKind {
	return cs.kinds
}

func (cs CandidateSet) Len() int {
	return len(cs.kinds)
}

func (cs CandidateSet) IsEmpty() bool {
	return cs.mask == 0
}

// Only returns the set restricted to k, empty if k is not in the set.
func (cs CandidateSet) Only(k grammar.TokenKind) CandidateSet {
	if !cs.Has(k) {
		return CandidateSet{}
	}
	return CandidateSet{kinds: []grammar.TokenKind{k}, mask: 1 << k}
}

// Without returns a copy of the set with kinds removed.
func (cs CandidateSet) Without(kinds ...grammar.TokenKind) CandidateSet {
	var drop uint64
	for _, k := range kinds {
		if k.Valid() {
			drop |= 1 << k
		}
	}

	result := CandidateSet{kinds: make([]grammar.TokenKind, 0, len(cs.kinds))}
	for _, k := range cs.kinds {
		if drop&(1<<k) == 0 {
			result.kinds = append(result.kinds, k)
			result.mask |= 1 << k
		}
	}
	return result
}

var (
	normalCandidates = []grammar.TokenKind{
		grammar.LambdaArrow, grammar.Keyword, grammar.Identifier, grammar.Number, grammar.Operator,
		grammar.RawStringStart, grammar.StringStart, grammar.BlockCommentStart, grammar.Comment,
	}
	layoutCandidates = []grammar.TokenKind{grammar.Newline, grammar.Indent, grammar.Dedent}
	modeCandidates   = [ModeKindCount][]grammar.TokenKind{
		StringMode:       {grammar.StringEnd, grammar.InterpolationStart, grammar.StringText},
		RawStringMode:    {grammar.RawStringEnd, grammar.RawStringText},
		BlockCommentMode: {grammar.BlockCommentEnd, grammar.BlockCommentStart, grammar.BlockCommentText},
	}
)

// DefaultCandidates returns every token kind that is lexically legal in mode,
// keywords preferred over identifiers. layout adds line break tokens in the root mode.
// A parser that does not track candidates precisely (e.g. a plain tokenizer) uses this set.
func DefaultCandidates(mode ModeKind, layout bool) CandidateSet {
	switch mode {
	case NormalMode:
		if layout {
			return NewCandidateSet(append(append([]grammar.TokenKind{}, layoutCandidates...), normalCandidates...)...)
		}
		return NewCandidateSet(normalCandidates...)

	case InterpolationMode:
		return NewCandidateSet(append([]grammar.TokenKind{grammar.InterpolationEnd}, normalCandidates...)...)
	}

	if mode.Valid() {
		return NewCandidateSet(modeCandidates[mode]...)
	}
	return CandidateSet{}
}
