package store

import (
	"sort"
	"strings"
)

// Store is the read-only view of the database used by the mapping engine.
type Store interface {
	// Object returns the object with key k
	Object(k Key) (*Object, bool)

	// DNA returns the raw sequence stored under name
	DNA(name string) ([]byte, bool)
}

// Mem is an in-memory Store.
type Mem struct {
	objects map[Key]*Object
	dna     map[string][]byte
}

// NewMem returns an empty store.
func NewMem() *Mem {
	return &Mem{
		objects: make(map[Key]*Object),
		dna:     make(map[string][]byte),
	}
}

// Object implements Store.
func (m *Mem) Object(k Key) (*Object, bool) {
	o, ok := m.objects[k]
	return o, ok
}

// DNA implements Store.
func (m *Mem) DNA(name string) ([]byte, bool) {
	d, ok := m.dna[name]
	return d, ok
}

// Keys returns every object key, sorted.
func (m *Mem) Keys() []Key {
	keys := make([]Key, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Add appends rows under tag on the object k, creating the object if needed.
// Add with no rows just marks the tag present.
func (m *Mem) Add(k Key, tag string, rows ...Row) *Mem {
	o, ok := m.objects[k]
	if !ok {
		o = &Object{Key: k, Tags: make(map[string][]Row)}
		m.objects[k] = o
	}
	o.Tags[tag] = append(o.Tags[tag], rows...)
	return m
}

// AddDNA stores a sequence under name. Sequences are kept lowercase.
func (m *Mem) AddDNA(name string, seq []byte) *Mem {
	m.dna[name] = []byte(strings.ToLower(string(seq)))
	return m
}
