// Package document reads and writes structured files as a generic tree.
//
// A tree is made of *Object (ordered keys), *Array and scalar leaves (string,
// bool, nil, json.Number, int64, float64 and whatever else a codec produces).
// Containers are pointers so a path interpreter can mutate them in place.
package document

// Object is a map that remembers key insertion order
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty Object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// Array is a mutable list of values
type Array struct {
	Items []any
}

// NewArray creates an Array holding items
func NewArray(items ...any) *Array {
	return &Array{Items: items}
}

// Len returns the number of items
func (a *Array) Len() int {
	return len(a.Items)
}
