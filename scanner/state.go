package scanner

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/apconduct/veld/lexer"
)

const (
	stateVersion = 1
	maxColumn    = 1 << 30
)

// Limits bounds scanner resources.
type Limits struct {
	// MaxDepth is the maximum number of modes entered above the root mode.
	// Default: 32
	MaxDepth int

	// SnapshotCapacity is the maximum size of serialized state in bytes.
	// Default: 1024, the buffer size the generated parser reserves per scanner state
	SnapshotCapacity int
}

// DefaultLimits returns limits suitable for any hand-written source.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:         32,
		SnapshotCapacity: 1024,
	}
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.MaxDepth <= 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.SnapshotCapacity <= 0 {
		l.SnapshotCapacity = d.SnapshotCapacity
	}
	return l
}

// Snapshot is an immutable serialized scanner state.
// Snapshots are compared by value and may be shared freely, including between goroutines.
type Snapshot struct {
	data string
}

// Bytes returns a copy of encoded state.
func (s Snapshot) Bytes() []byte {
	return []byte(s.data)
}

func (s Snapshot) Len() int {
	return len(s.data)
}

func (s Snapshot) Equal(o Snapshot) bool {
	return s.data == o.data
}

func (s Snapshot) String() string {
	return hex.EncodeToString([]byte(s.data))
}

// encodeState appends encoded modes (root excluded) and indentation columns to buf.
func encodeState(buf []byte, modes []lexer.Mode, cols []int) []byte {
	buf = append(buf, stateVersion)
	buf = binary.AppendUvarint(buf, uint64(len(modes)))
	for _, m := range modes {
		buf = append(buf, byte(m.Kind))
		if m.Kind == lexer.RawStringMode {
			buf = append(buf, m.Hashes)
		}
	}

	buf = binary.AppendUvarint(buf, uint64(len(cols)))
	prev := 0
	for _, col := range cols {
		buf = binary.AppendUvarint(buf, uint64(col-prev))
		prev = col
	}
	return buf
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) readByte() (byte, bool) {
	if d.pos >= len(d.data) {
		return 0, false
	}
	d.pos++
	return d.data[d.pos-1], true
}

func (d *decoder) readUvarint() (uint64, bool) {
	v, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		return 0, false
	}
	d.pos += n
	return v, true
}

// decodeState is the exact inverse of encodeState for states with at most maxDepth modes.
func decodeState(data []byte, maxDepth int) ([]lexer.Mode, []int, error) {
	d := &decoder{data: data}
	v, ok := d.readByte()
	if !ok || v != stateVersion {
		return nil, nil, corruptSnapshotError("unknown version")
	}

	depth, ok := d.readUvarint()
	if !ok {
		return nil, nil, corruptSnapshotError("truncated mode count")
	}
	if depth > uint64(maxDepth) {
		return nil, nil, corruptSnapshotError("mode nesting exceeds limit")
	}

	modes := make([]lexer.Mode, 0, depth)
	for i := uint64(0); i < depth; i++ {
		k, ok := d.readByte()
		mk := lexer.ModeKind(k)
		if !ok || !mk.Valid() || mk == lexer.NormalMode {
			return nil, nil, corruptSnapshotError("invalid mode")
		}

		m := lexer.Mode{Kind: mk}
		if mk == lexer.RawStringMode {
			m.Hashes, ok = d.readByte()
			if !ok {
				return nil, nil, corruptSnapshotError("truncated raw string delimiter")
			}
		}
		modes = append(modes, m)
	}

	count, ok := d.readUvarint()
	if !ok || count > uint64(len(data)) {
		return nil, nil, corruptSnapshotError("invalid indentation count")
	}

	cols := make([]int, 0, count)
	col := 0
	for i := uint64(0); i < count; i++ {
		delta, ok := d.readUvarint()
		if !ok || delta == 0 || delta > maxColumn || col+int(delta) > maxColumn {
			return nil, nil, corruptSnapshotError("invalid indentation column")
		}
		col += int(delta)
		cols = append(cols, col)
	}

	if d.pos != len(data) {
		return nil, nil, corruptSnapshotError("trailing bytes")
	}
	return modes, cols, nil
}
