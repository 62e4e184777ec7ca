package header

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by Headers operations.
var (
	// ErrInvalidHeaderName is returned when a field name is not a legal
	// RFC 7230 token.
	ErrInvalidHeaderName = errors.New("invalid header field name")

	// ErrInvalidHeaderValue is returned when a field value still contains a
	// forbidden byte after normalization.
	ErrInvalidHeaderValue = errors.New("invalid header field value")

	// ErrImmutableGuard is returned when a mutation is attempted against a
	// view whose guard is GuardImmutable.
	ErrImmutableGuard = errors.New("headers are immutable")

	// ErrNoSuchHeader is returned by Get when no field with the given name
	// is set.
	ErrNoSuchHeader = errors.New("no such header field")
)

// Headers is the guarded view over a List. Every operation that takes a field
// name validates it against the token grammar, and every operation that takes
// a value normalizes and validates it, before the guard is consulted. One
// Headers exclusively owns one List.
//
// Headers is not safe for concurrent use. Iteration methods snapshot the list
// at call time, so mutating the view after taking a snapshot does not affect
// that snapshot.
type Headers struct {
	guard Guard
	list  *List
}

// New returns an empty Headers with guard GuardNone.
func New() *Headers {
	return &Headers{list: NewList()}
}

// FromPairs returns a Headers with guard GuardNone filled by appending each
// pair in order. It fails with the first pair that does not validate.
func FromPairs(pairs []Pair) (*Headers, error) {
	h := New()
	for _, p := range pairs {
		if err := h.Append(p.Name, p.Value); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// FromMap returns a Headers with guard GuardNone filled by appending one pair
// per map entry. Go maps have no enumeration order, so entries are appended
// in ascending lexical order of their names to keep the fill deterministic.
// It fails with the first entry that does not validate.
func FromMap(m map[string]string) (*Headers, error) {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	h := New()
	for _, n := range names {
		if err := h.Append(n, m[n]); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Guard returns the view's mutability policy.
func (h *Headers) Guard() Guard {
	return h.guard
}

// SetGuard replaces the view's mutability policy. The guard is normally fixed
// when the surrounding request or response is built; this is the hook that
// layer uses.
func (h *Headers) SetGuard(g Guard) {
	h.guard = g
}

// Len returns the number of stored pairs, counting duplicates individually.
func (h *Headers) Len() int {
	return h.list.Len()
}

// checkMutation runs the shared prologue of every mutating operation:
// normalize the value, validate name and value, and only then consult the
// guard. The ordering is part of the contract. It returns the normalized
// value.
func (h *Headers) checkMutation(name, value string) (string, error) {
	value = normalizeValue(value)
	if !isValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}
	if !isValidValue(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHeaderValue, value)
	}
	if h.guard == GuardImmutable {
		return "", ErrImmutableGuard
	}
	return value, nil
}

// Append adds the name/value pair to the end of the list, normalizing the
// value first. It fails with ErrInvalidHeaderName or ErrInvalidHeaderValue if
// either part fails the field grammar, and with ErrImmutableGuard if the
// guard forbids mutation. Nothing is stored when an error is returned.
func (h *Headers) Append(name, value string) error {
	value, err := h.checkMutation(name, value)
	if err != nil {
		return err
	}
	h.list.Add(name, value)
	return nil
}

// Set replaces every pair matching the name with the single normalized
// name/value pair. Validation and guard behavior match Append.
func (h *Headers) Set(name, value string) error {
	value, err := h.checkMutation(name, value)
	if err != nil {
		return err
	}
	h.list.Set(name, value)
	return nil
}

// Delete removes every pair matching the name. It fails with
// ErrInvalidHeaderName if the name fails the token grammar and with
// ErrImmutableGuard if the guard forbids mutation.
func (h *Headers) Delete(name string) error {
	if !isValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}
	if h.guard == GuardImmutable {
		return ErrImmutableGuard
	}
	h.list.Delete(name)
	return nil
}

// Get returns the values of every pair matching the name, joined by ", ".
// It fails with ErrInvalidHeaderName if the name fails the token grammar and
// with ErrNoSuchHeader if no pair matches.
func (h *Headers) Get(name string) (string, error) {
	if !isValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}
	v, ok := h.list.Get(name)
	if !ok {
		return "", ErrNoSuchHeader
	}
	return v, nil
}

// Has reports whether at least one pair matches the name. It fails with
// ErrInvalidHeaderName if the name fails the token grammar.
func (h *Headers) Has(name string) (bool, error) {
	if !isValidName(name) {
		return false, fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}
	return h.list.Has(name), nil
}

// Entries returns the sorted, combined pairs of the list as a snapshot taken
// at call time. Mutating the view afterwards does not affect the returned
// slice.
func (h *Headers) Entries() []Pair {
	return h.list.SortAndCombine()
}

// Keys returns the sorted, combined field names as a snapshot taken at call
// time.
func (h *Headers) Keys() []string {
	entries := h.list.SortAndCombine()
	ks := make([]string, len(entries))
	for i, e := range entries {
		ks[i] = e.Name
	}
	return ks
}

// Values returns the combined field values, ordered by their sorted names, as
// a snapshot taken at call time.
func (h *Headers) Values() []string {
	entries := h.list.SortAndCombine()
	vs := make([]string, len(entries))
	for i, e := range entries {
		vs[i] = e.Value
	}
	return vs
}

// Each calls fn once per sorted, combined entry until fn returns false. The
// entries are a snapshot taken when Each is called; fn may mutate the view
// without affecting the iteration.
func (h *Headers) Each(fn func(name, value string) bool) {
	for _, e := range h.list.SortAndCombine() {
		if !fn(e.Name, e.Value) {
			return
		}
	}
}
