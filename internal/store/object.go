// Package store is a read-only tagged object store. Objects carry rows of
// values under tag names, the way the genome database exposes them, and a
// separate table holds raw DNA by name.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownObject is returned when a key is not in the store.
var ErrUnknownObject = errors.New("unknown object")

// Key is an object's identity, written "Class:Name".
type Key string

// NewKey joins a class and a name into a Key.
func NewKey(class, name string) Key {
	return Key(class + ":" + name)
}

// ParseKey validates a "Class:Name" string.
func ParseKey(s string) (Key, error) {
	i := strings.Index(s, ":")
	if i < 1 || i == len(s)-1 {
		return "", fmt.Errorf("failed to parse object %q: expected <class:object>", s)
	}
	return Key(s), nil
}

// Class is the part of the key before the first colon.
func (k Key) Class() string {
	if i := strings.Index(string(k), ":"); i >= 0 {
		return string(k[:i])
	}
	return ""
}

// Name is the part of the key after the first colon.
func (k Key) Name() string {
	if i := strings.Index(string(k), ":"); i >= 0 {
		return string(k[i+1:])
	}
	return string(k)
}

// Row is one line of values under a tag. Values are strings or ints.
type Row []interface{}

// Int returns the i'th value as an int.
func (r Row) Int(i int) (int, bool) {
	if i >= len(r) {
		return 0, false
	}
	switch v := r[i].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// String returns the i'th value as a string.
func (r Row) String(i int) (string, bool) {
	if i >= len(r) {
		return "", false
	}
	s, ok := r[i].(string)
	return s, ok
}

// Key returns the i'th value as an object key.
func (r Row) Key(i int) (Key, bool) {
	s, ok := r.String(i)
	if !ok {
		return "", false
	}
	k, err := ParseKey(s)
	return k, err == nil
}

// Object is a database object: its key and its tagged rows.
type Object struct {
	Key  Key
	Tags map[string][]Row
}

// Rows returns every row under tag.
func (o *Object) Rows(tag string) []Row {
	if o == nil {
		return nil
	}
	return o.Tags[tag]
}

// Has reports whether the tag is present, even with no rows.
func (o *Object) Has(tag string) bool {
	if o == nil {
		return false
	}
	_, ok := o.Tags[tag]
	return ok
}

// RowsFor returns the rows under tag whose first value is the key k.
func (o *Object) RowsFor(tag string, k Key) []Row {
	var rows []Row
	for _, r := range o.Rows(tag) {
		if rk, ok := r.Key(0); ok && rk == k {
			rows = append(rows, r)
		}
	}
	return rows
}
