package source

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned identifier.
type StringID uint32

// NoStringID is reserved for the empty string; unnamed scopes use it.
const NoStringID StringID = 0

// Interner maps identifiers to compact IDs. Identifiers are NFC-normalised
// first, so two spellings of the same name that differ only in Unicode
// composition resolve to one symbol.
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, inserting it when new.
func (i *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)
	if id, ok := i.index[s]; ok {
		return id
	}
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the ID of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[norm.NFC.String(s)]
	return id, ok
}

// Lookup returns the string for id; false when id is unknown.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has проверяет, валиден ли ID.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts interned strings including NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings indexed by ID.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
