package incremental

import (
	"go.uber.org/zap"

	"github.com/apconduct/veld/internal/queue"
	"github.com/apconduct/veld/source"
)

// Result describes a revalidated log.
type Result struct {
	Log *Log

	// Restart is the byte offset in the new source where scanning restarted.
	Restart int

	// Rescanned is the number of freshly scanned tokens.
	Rescanned int

	// Reused is the number of old tokens carried over shifted by the edit delta.
	Reused int
}

// pending is an old entry awaiting resynchronization.
type pending struct {
	entry Entry
	from  int
}

// Apply revalidates the log for src, the source produced by edit.
// The receiver is not modified, unchanged entries and snapshots are shared with the result.
func (l *Log) Apply(src *source.Source, edit Edit) (Result, error) {
	e := edit.Check(l.src.Len(), src.Len())
	if e != nil {
		return Result{}, e
	}

	i := l.restartIndex(edit)
	from := l.scanStart(i)
	log := l.cfg.log
	log.Debug("restarting scan",
		zap.Int("token", i), zap.Int("offset", from), zap.Int("edit_start", edit.Start))

	result := Result{Restart: from}
	nl := &Log{src: src, cfg: l.cfg, entries: make([]Entry, i, len(l.entries))}
	copy(nl.entries, l.entries[:i])

	old := queue.New[pending]()
	for j := i; j < len(l.entries); j++ {
		old.Push(pending{l.entries[j], l.scanStart(j)})
	}

	d, e := newDriver(&l.cfg, src, from, l.stateBefore(i))
	if e != nil {
		return Result{}, e
	}
	defer d.close()

	delta := edit.Delta()
	for {
		newFrom := d.c.Pos()
		entry, ok, e := d.next()
		if e != nil {
			return Result{}, e
		}
		if !ok {
			break
		}
		nl.entries = append(nl.entries, entry)
		result.Rescanned++

		if newFrom < edit.NewEnd {
			continue
		}

		p, ok := old.Front()
		for ok && p.from < newFrom-delta {
			old.Pop()
			p, ok = old.Front()
		}
		if !ok || p.from != newFrom-delta || !sameScan(p.entry, entry) {
			continue
		}

		old.Pop()
		for _, p := range old.Items() {
			nl.entries = append(nl.entries, p.entry.shift(delta))
		}
		result.Reused = old.Len()
		nl.final = l.final
		log.Debug("resynchronized",
			zap.Int("offset", entry.Token.Start), zap.Int("rescanned", result.Rescanned), zap.Int("reused", result.Reused))

		result.Log = nl
		return result, nil
	}

	nl.final, e = d.s.Snapshot()
	if e != nil {
		return Result{}, e
	}

	result.Log = nl
	return result, nil
}

// restartIndex returns the first entry an edit may affect: its examined bytes reach
// the edit or it starts at or after the edit. Returns Len if no entry is affected.
func (l *Log) restartIndex(edit Edit) int {
	for i, entry := range l.entries {
		if entry.Token.Lookahead > edit.Start || entry.Token.Start >= edit.Start {
			return i
		}
	}
	return len(l.entries)
}

// sameScan tells whether a fresh entry repeats an old one scanned from the same
// unchanged position, so the rest of the old log is valid.
func sameScan(old, fresh Entry) bool {
	return old.Token.Kind == fresh.Token.Kind &&
		old.Token.Len() == fresh.Token.Len() &&
		old.Before.Equal(fresh.Before)
}
