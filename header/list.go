package header

import (
	"sort"
	"strings"
)

// Pair is a single name/value entry in a List.
type Pair struct {
	Name  string
	Value string
}

// List is an ordered, multi-valued collection of header name/value pairs.
// Names are matched ASCII case-insensitively at lookup time but are stored
// with the casing they were given, so duplicate names keep their individual
// entries in insertion order and are only combined when read out.
//
// The zero value is an empty list ready for use.
type List struct {
	pairs []Pair
}

// NewList returns a List holding the given pairs in order. The pairs are
// stored as given, without the name normalization that Add performs.
func NewList(pairs ...Pair) *List {
	l := &List{pairs: make([]Pair, len(pairs))}
	copy(l.pairs, pairs)
	return l
}

// Len returns the number of pairs in the list.
func (l *List) Len() int {
	return len(l.pairs)
}

// Pairs returns a copy of the pairs in the list, in insertion order.
func (l *List) Pairs() []Pair {
	ps := make([]Pair, len(l.pairs))
	copy(ps, l.pairs)
	return ps
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	return NewList(l.pairs...)
}

// IndexOf returns the index of the first pair at or after from whose name
// matches the given name case-insensitively, or -1 if there is none.
func (l *List) IndexOf(name string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(l.pairs); i++ {
		if strings.EqualFold(l.pairs[i].Name, name) {
			return i
		}
	}
	return -1
}

// Add appends a new pair to the end of the list. If a pair with a matching
// name already exists, the new pair is stored under the first existing pair's
// original casing, so every entry for one field carries a single spelling.
func (l *List) Add(name, value string) {
	if i := l.IndexOf(name, 0); i >= 0 {
		name = l.pairs[i].Name
	}
	l.pairs = append(l.pairs, Pair{name, value})
}

// Set removes every pair matching the given name and appends the single new
// pair at the end of the list.
func (l *List) Set(name, value string) {
	l.Delete(name)
	l.pairs = append(l.pairs, Pair{name, value})
}

// Delete removes every pair whose name matches the given name
// case-insensitively.
func (l *List) Delete(name string) {
	kept := l.pairs[:0]
	for _, p := range l.pairs {
		if !strings.EqualFold(p.Name, name) {
			kept = append(kept, p)
		}
	}
	l.pairs = kept
}

// Get returns the values of every pair matching the given name, in insertion
// order, joined by ", ". The second return is false when no pair matches.
func (l *List) Get(name string) (string, bool) {
	var (
		b     strings.Builder
		found bool
	)
	for _, p := range l.pairs {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		if found {
			b.WriteString(", ")
		}
		b.WriteString(p.Value)
		found = true
	}
	return b.String(), found
}

// Has reports whether at least one pair matches the given name.
func (l *List) Has(name string) bool {
	return l.IndexOf(name, 0) >= 0
}

// SortAndCombine returns the combined view of the list used for iteration.
// Pairs are grouped by lower-cased name in first-seen order, each group's
// values are joined by ", ", and the combined entries are returned sorted by
// name in ascending lexical order. The list itself is never modified.
func (l *List) SortAndCombine() []Pair {
	combined := make([]Pair, 0, len(l.pairs))
	byName := make(map[string]int, len(l.pairs))
	for _, p := range l.pairs {
		name := strings.ToLower(p.Name)
		if i, ok := byName[name]; ok {
			combined[i].Value += ", " + p.Value
			continue
		}
		byName[name] = len(combined)
		combined = append(combined, Pair{name, p.Value})
	}
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].Name < combined[j].Name
	})
	return combined
}
