package model

// Interner assigns stable int32 ids to strings, used by parsers to avoid
// storing duplicate span/category names for every one of potentially
// millions of spans.
type Interner struct {
	ids     map[string]int32
	strings []string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]int32)}
}

// Intern returns s's id, assigning a new one on first use.
func (in *Interner) Intern(s string) int32 {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := int32(len(in.strings))
	in.strings = append(in.strings, s)
	in.ids[s] = id
	return id
}

// String resolves id back to its string, or "" if out of range.
func (in *Interner) String(id int32) string {
	if id < 0 || int(id) >= len(in.strings) {
		return ""
	}
	return in.strings[id]
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int { return len(in.strings) }
