// Package atom provides process-local string interning. An Atom is a
// lightweight handle equality-comparable in O(1); two atoms compare
// equal iff they were interned from byte-identical strings.
package atom

import (
	"github.com/dolthub/swiss"
)

// Atom is an interned identifier. The zero value denotes "no atom";
// valid atoms are always non-zero indices into the owning Table's
// backing store.
type Atom uint32

// NoAtom is the zero value, reserved to mean "absent".
const NoAtom Atom = 0

// Table interns strings for the lifetime of one compilation. Atoms
// from different Tables must never be compared: the spec's invariant
// that "cross-compilation pointer comparisons are forbidden" applies
// equally to atom indices, since a Table is recreated per compilation.
//
// Strings are stored in an append-only slice acting as the bump arena
// the interning hint calls for: once appended, an entry's backing bytes
// never move, so previously returned atoms stay valid for the Table's
// whole lifetime.
type Table struct {
	strings []string
	index   *swiss.Map[string, Atom]
}

// NewTable creates an empty interning table sized for an expected
// number of distinct identifiers.
func NewTable(sizeHint int) *Table {
	if sizeHint < 16 {
		sizeHint = 16
	}
	t := &Table{
		strings: make([]string, 1, sizeHint+1), // index 0 reserved for NoAtom
		index:   swiss.NewMap[string, Atom](uint32(sizeHint)),
	}
	t.strings[0] = ""
	return t
}

// Intern returns the Atom for s, creating one if s has not been seen
// before in this Table.
func (t *Table) Intern(s string) Atom {
	if s == "" {
		return NoAtom
	}
	if a, ok := t.index.Get(s); ok {
		return a
	}
	a := Atom(len(t.strings))
	t.strings = append(t.strings, s)
	t.index.Put(s, a)
	return a
}

// Text returns the interned string for a, or "" for NoAtom or an atom
// at or past this Table's length. An atom from a different Table that
// falls inside this Table's range returns this Table's string.
func (t *Table) Text(a Atom) string {
	if int(a) >= len(t.strings) {
		return ""
	}
	return t.strings[a]
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int { return len(t.strings) - 1 }
