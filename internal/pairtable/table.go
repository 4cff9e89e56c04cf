// Package pairtable stores per-type-pair configuration values: an explicit
// sparse map over canonical unordered keys plus an optional default slot.
package pairtable

import (
	"fmt"

	"github.com/san-kum/pairforce/internal/md"
)

// Key is an unordered pair of dense type indices in canonical form (A <= B).
type Key struct {
	A, B int
}

// MakeKey canonicalizes (i, j) so that MakeKey(i, j) == MakeKey(j, i).
func MakeKey(i, j int) Key {
	if i > j {
		i, j = j, i
	}
	return Key{A: i, B: j}
}

// Index returns this key's position in the dense canonical-pair layout for
// n types: all pairs (a, b) with a <= b, ordered by a then b.
func (k Key) Index(n int) int {
	return k.A*n - k.A*(k.A-1)/2 + (k.B - k.A)
}

// NPairs returns the number of canonical pairs over n types.
func NPairs(n int) int {
	return n * (n + 1) / 2
}

// Validator lets record values carry their own field checks, applied during
// [Table.Verify].
type Validator interface {
	Validate() error
}

// Table maps canonical type-pair keys to values of type V. A lookup resolves
// the explicit entry first, then the table default; a pair with neither is a
// hard error. One value type per table: parameters, cutoffs, and onsets each
// live in their own Table.
type Table[V any] struct {
	label   string
	entries map[Key]V
	def     V
	hasDef  bool
}

// New returns an empty table. The label names the table in diagnostics
// ("lj parameters", "r_cut").
func New[V any](label string) *Table[V] {
	return &Table[V]{label: label, entries: make(map[Key]V)}
}

// NewWithDefault returns a table whose unset pairs resolve to def.
func NewWithDefault[V any](label string, def V) *Table[V] {
	t := New[V](label)
	t.SetDefault(def)
	return t
}

func (t *Table[V]) Label() string { return t.label }

// SetDefault defines the fallback returned for pairs never explicitly set.
func (t *Table[V]) SetDefault(v V) {
	t.def = v
	t.hasDef = true
}

// Set stores v for one canonical key. Last write wins.
func (t *Table[V]) Set(k Key, v V) {
	t.entries[k] = v
}

// SetPair stores v for the unordered pair of type names (a, b).
func (t *Table[V]) SetPair(types *md.TypeSet, a, b string, v V) error {
	return t.SetList(types, []string{a}, []string{b}, v)
}

// SetList stores v for every unordered pair in the Cartesian product of two
// type-name lists, including self pairs when the lists overlap. Overlapping
// products collapse onto the same canonical key.
func (t *Table[V]) SetList(types *md.TypeSet, listA, listB []string, v V) error {
	ia, err := resolve(types, listA)
	if err != nil {
		return err
	}
	ib, err := resolve(types, listB)
	if err != nil {
		return err
	}
	for _, a := range ia {
		for _, b := range ib {
			t.entries[MakeKey(a, b)] = v
		}
	}
	return nil
}

func resolve(types *md.TypeSet, names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := types.Index(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", md.ErrUnknownType, n)
		}
		out = append(out, i)
	}
	return out, nil
}

// Get resolves the value for the unordered pair (i, j): the explicit entry
// if one exists, else the table default, else an error wrapping
// [md.ErrMissingParams].
func (t *Table[V]) Get(i, j int) (V, error) {
	if v, ok := t.entries[MakeKey(i, j)]; ok {
		return v, nil
	}
	if t.hasDef {
		return t.def, nil
	}
	var zero V
	return zero, fmt.Errorf("%w: %s for pair (%d, %d)", md.ErrMissingParams, t.label, i, j)
}

// Has reports whether the key has an explicit entry (defaults not counted).
func (t *Table[V]) Has(k Key) bool {
	_, ok := t.entries[k]
	return ok
}

// Verify checks that every canonical pair over the active type set resolves
// to a value, and runs each resolved value's Validate hook when present.
// All violations are aggregated into a single [md.MissingParamsError].
func (t *Table[V]) Verify(types *md.TypeSet) error {
	n := types.Len()
	var bad []string
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			v, err := t.Get(a, b)
			if err != nil {
				bad = append(bad, types.Name(a)+"-"+types.Name(b))
				continue
			}
			if val, ok := any(v).(Validator); ok {
				if err := val.Validate(); err != nil {
					bad = append(bad, fmt.Sprintf("%s-%s: %v", types.Name(a), types.Name(b), err))
				}
			}
		}
	}
	if len(bad) > 0 {
		return &md.MissingParamsError{Table: t.label, Pairs: bad}
	}
	return nil
}

// Flatten resolves every canonical pair into a dense slice indexed by
// [Key.Index], for branch-cheap lookups in the evaluation loop. It fails
// with the same aggregated report as [Table.Verify].
func (t *Table[V]) Flatten(types *md.TypeSet) ([]V, error) {
	if err := t.Verify(types); err != nil {
		return nil, err
	}
	n := types.Len()
	out := make([]V, NPairs(n))
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			v, _ := t.Get(a, b)
			out[Key{A: a, B: b}.Index(n)] = v
		}
	}
	return out, nil
}
