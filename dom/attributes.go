package dom

import "strings"

// Attribute is a single name/value pair as it appeared on an element.
// HasValue distinguishes a boolean attribute (`disabled`) from one with an
// explicit empty value (`disabled=""`); both report Value == "" but only
// the latter sets HasValue.
type Attribute struct {
	Name     string
	Value    string
	HasValue bool
}

// Attributes holds an element's attributes in source order. Lookups are
// case-insensitive (HTML attribute names are ASCII case-insensitive); on
// construction from tokenizer output, duplicate attribute names keep only
// the first occurrence (§3.1).
type Attributes struct {
	items []Attribute
}

// NewAttributes returns an empty Attributes collection.
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Get returns an attribute's value and whether it was present.
func (a *Attributes) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, attr := range a.items {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set adds or overwrites an attribute. name is lowercased; HasValue is
// always true for programmatically set attributes.
func (a *Attributes) Set(name, value string) {
	name = strings.ToLower(name)
	for i := range a.items {
		if a.items[i].Name == name {
			a.items[i].Value = value
			a.items[i].HasValue = true
			return
		}
	}
	a.items = append(a.items, Attribute{Name: name, Value: value, HasValue: true})
}

// SetRaw appends an attribute exactly as decoded by the tokenizer, without
// overwriting a prior occurrence of the same name (first occurrence wins,
// §3.1). Returns false if name was already present.
func (a *Attributes) SetRaw(name, value string, hasValue bool) bool {
	name = strings.ToLower(name)
	for i := range a.items {
		if a.items[i].Name == name {
			return false
		}
	}
	a.items = append(a.items, Attribute{Name: name, Value: value, HasValue: hasValue})
	return true
}

// Has reports whether an attribute with the given name is present.
func (a *Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Remove deletes an attribute by name, if present.
func (a *Attributes) Remove(name string) {
	name = strings.ToLower(name)
	for i := range a.items {
		if a.items[i].Name == name {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return
		}
	}
}

// All returns a copy of the attributes in source order.
func (a *Attributes) All() []Attribute {
	out := make([]Attribute, len(a.items))
	copy(out, a.items)
	return out
}

// Len returns the number of attributes.
func (a *Attributes) Len() int { return len(a.items) }

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	clone := &Attributes{items: make([]Attribute, len(a.items))}
	copy(clone.items, a.items)
	return clone
}
