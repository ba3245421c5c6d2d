package taxonomy

import "fmt"

// Form records how the taxonomy was supplied.
type Form string

const (
	Keyed    Form = "keyed"    // mapping question -> entry
	Sequence Form = "sequence" // list of entries carrying a Question field
)

// Index answers question lookups against a loaded taxonomy. It is immutable
// after construction and safe to share.
type Index struct {
	form    Form
	keys    []string
	byKey   map[string]Entry
	entries []Entry
}

// NewKeyed builds an index over a mapping form taxonomy. keys fixes the
// iteration order of Entries; keys missing from entries are ignored.
func NewKeyed(keys []string, entries map[string]Entry) (*Index, error) {
	idx := &Index{form: Keyed, byKey: make(map[string]Entry, len(entries))}
	for _, k := range keys {
		e, ok := entries[k]
		if !ok {
			continue
		}
		if _, dup := idx.byKey[k]; dup {
			continue
		}
		idx.keys = append(idx.keys, k)
		idx.byKey[k] = e
	}
	if len(idx.keys) == 0 {
		return nil, ErrEmptyTaxonomy
	}
	return idx, nil
}

// NewSequence builds an index over a sequence form taxonomy. Lookups scan
// the entries in order and the first exact Question match wins.
func NewSequence(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTaxonomy
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Index{form: Sequence, entries: cp}, nil
}

// Lookup resolves a question. A miss is a normal outcome, not an error.
func (x *Index) Lookup(question string) (Entry, bool) {
	if x == nil {
		return Entry{}, false
	}
	if x.form == Keyed {
		e, ok := x.byKey[question]
		return e, ok
	}
	for _, e := range x.entries {
		if e.Question == question {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve returns the taxonomy entry for question, or DefaultEntry when the
// question is unknown. The bool reports whether the taxonomy matched.
func (x *Index) Resolve(question string) (Entry, bool) {
	if e, ok := x.Lookup(question); ok {
		if e.Question == "" {
			e.Question = question
		}
		return e, true
	}
	return DefaultEntry(question), false
}

func (x *Index) Form() Form { return x.form }

func (x *Index) Len() int {
	if x.form == Keyed {
		return len(x.keys)
	}
	return len(x.entries)
}

// Entries returns the taxonomy in its supplied order. For the keyed form the
// Question field is set to the key.
func (x *Index) Entries() []Entry {
	if x.form == Sequence {
		out := make([]Entry, len(x.entries))
		copy(out, x.entries)
		return out
	}
	out := make([]Entry, 0, len(x.keys))
	for _, k := range x.keys {
		e := x.byKey[k]
		e.Question = k
		out = append(out, e)
	}
	return out
}

func (x *Index) String() string {
	return fmt.Sprintf("taxonomy(%s, %d entries)", x.form, x.Len())
}
