package incremental

import (
	"github.com/apconduct/veld"
)

// Error codes used by incremental.
const (
	// ErrInvalidEdit indicates edit offsets inconsistent with old and new source lengths.
	ErrInvalidEdit = veld.EditErrors + iota
)

// Edit describes a replaced byte range: old bytes [Start, OldEnd) became new bytes [Start, NewEnd).
type Edit struct {
	Start, OldEnd, NewEnd int
}

// Delta returns the shift of bytes following the edit.
func (e Edit) Delta() int {
	return e.NewEnd - e.OldEnd
}

// Check validates the edit against old and new source lengths.
func (e Edit) Check(oldLen, newLen int) error {
	if e.Start < 0 || e.OldEnd < e.Start || e.NewEnd < e.Start || e.OldEnd > oldLen || e.NewEnd > newLen {
		return invalidEditError(e, "offsets out of range")
	}
	if newLen-oldLen != e.Delta() {
		return invalidEditError(e, "length change does not match source lengths")
	}
	return nil
}

// Replace applies the edit replacing old bytes with text and returns new content and the edit.
func Replace(content []byte, start, oldEnd int, text []byte) ([]byte, Edit, error) {
	e := Edit{Start: start, OldEnd: oldEnd, NewEnd: start + len(text)}
	if start < 0 || oldEnd < start || oldEnd > len(content) {
		return nil, e, invalidEditError(e, "offsets out of range")
	}

	result := make([]byte, 0, len(content)-(oldEnd-start)+len(text))
	result = append(result, content[:start]...)
	result = append(result, text...)
	result = append(result, content[oldEnd:]...)
	return result, e, nil
}

func invalidEditError(e Edit, reason string) *veld.Error {
	return veld.FormatError(ErrInvalidEdit, "invalid edit %d:%d:%d: %s", e.Start, e.OldEnd, e.NewEnd, reason)
}
