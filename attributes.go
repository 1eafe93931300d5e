package pdxfile

// Attributes is an ordered mapping of attribute names to values. The order in
// which names were first set is preserved.
type Attributes struct {
	names  []string
	values map[string]Value
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// Names returns the attribute names in the order they were first set.
func (a *Attributes) Names() []string {
	list := make([]string, len(a.names))
	copy(list, a.names)
	return list
}

// Get returns the value of an attribute, or nil if it is not defined.
func (a *Attributes) Get(name string) Value {
	return a.values[name]
}

// Lookup returns the value of an attribute and whether it is defined.
func (a *Attributes) Lookup(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Set sets the value of an attribute. Replacing an existing attribute keeps
// its position. If value is nil, then the attribute is deleted.
func (a *Attributes) Set(name string, value Value) {
	if value == nil {
		a.Delete(name)
		return
	}
	if a.values == nil {
		a.values = make(map[string]Value, 4)
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Delete removes an attribute.
func (a *Attributes) Delete(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.names {
		if n == name {
			a.names = append(a.names[:i], a.names[i+1:]...)
			break
		}
	}
}

// Copy returns a deep copy of the attributes.
func (a *Attributes) Copy() Attributes {
	c := Attributes{
		names:  make([]string, len(a.names)),
		values: make(map[string]Value, len(a.values)),
	}
	copy(c.names, a.names)
	for name, value := range a.values {
		c.values[name] = value.Copy()
	}
	return c
}
