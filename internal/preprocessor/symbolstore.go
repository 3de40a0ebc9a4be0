package preprocessor

import "sort"

// SymbolStore accumulates preprocessor callbacks into a position-
// indexed array sorted by spelled range start, supporting O(log n)
// lookup by spelled byte offset. It is the sink the preprocessor
// notifies as it runs; one store exists per compilation.
type SymbolStore struct {
	occurrences []SymbolOccurrence
	sorted      bool
}

// NewSymbolStore creates an empty store.
func NewSymbolStore() *SymbolStore { return &SymbolStore{} }

// Record appends an occurrence. Callers may record out of order (e.g.
// while an include is being processed depth-first); Query sorts lazily
// on first use.
func (s *SymbolStore) Record(o SymbolOccurrence) {
	s.occurrences = append(s.occurrences, o)
	s.sorted = false
}

func (s *SymbolStore) ensureSorted() {
	if s.sorted {
		return
	}
	sort.Slice(s.occurrences, func(i, j int) bool {
		a, b := s.occurrences[i].Range, s.occurrences[j].Range
		if a.File != b.File {
			return a.File < b.File
		}
		return a.ByteOffset < b.ByteOffset
	})
	s.sorted = true
}

// Query returns the occurrence whose spelled range contains (file,
// byteOffset), or false if none does. Binary search narrows to the
// neighborhood of byteOffset within the same file before scanning the
// handful of candidates that can legitimately straddle it (macro
// expansions can nest, so more than one occurrence may share a start).
func (s *SymbolStore) Query(file string, byteOffset int) (SymbolOccurrence, bool) {
	s.ensureSorted()
	lo, hi := 0, len(s.occurrences)
	for lo < hi {
		mid := (lo + hi) / 2
		r := s.occurrences[mid].Range
		if r.File < file || (r.File == file && r.ByteOffset <= byteOffset) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first occurrence strictly after byteOffset; scan
	// backwards for one whose range actually contains it.
	for i := lo - 1; i >= 0; i-- {
		o := s.occurrences[i]
		if o.Range.File != file {
			break
		}
		if byteOffset >= o.Range.ByteOffset && byteOffset <= o.Range.ByteEnd {
			return o, true
		}
		if o.Range.ByteEnd < byteOffset-4096 {
			break // far enough back that nothing more can reach byteOffset
		}
	}
	return SymbolOccurrence{}, false
}

// All returns every recorded occurrence, sorted.
func (s *SymbolStore) All() []SymbolOccurrence {
	s.ensureSorted()
	return s.occurrences
}
