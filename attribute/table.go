package attribute

// Descriptor describes one declared field of a resource type.
type Descriptor struct {
	// Name is the field name as used on the record.
	Name string

	// Persist reports whether the field is ever sent to the server.
	// Computed or client-only fields set this to false.
	Persist bool

	// Numeric marks fields declared with a numeric type. An empty string in a
	// numeric field is written as explicit null.
	Numeric bool

	// Key overrides the wire key for this field. When nil the owning table's
	// key case is applied.
	Key func(name string) string
}

// Table is the ordered set of field descriptors for a resource type together
// with the key case used to serialize its field and relationship names.
type Table struct {
	keyCase KeyCase
	fields  []Descriptor
	index   map[string]int
}

// NewTable creates a table that serializes keys with keyCase.
func NewTable(keyCase KeyCase) *Table {
	return &Table{
		keyCase: keyCase,
		index:   make(map[string]int),
	}
}

// Field declares a persisted field and returns the table for chaining.
func (t *Table) Field(name string) *Table {
	return t.Add(Descriptor{Name: name, Persist: true})
}

// Number declares a persisted numeric field and returns the table for chaining.
func (t *Table) Number(name string) *Table {
	return t.Add(Descriptor{Name: name, Persist: true, Numeric: true})
}

// Virtual declares a field that is never sent and returns the table for chaining.
func (t *Table) Virtual(name string) *Table {
	return t.Add(Descriptor{Name: name})
}

// Add declares or replaces a descriptor. Replacing keeps the field's position.
func (t *Table) Add(d Descriptor) *Table {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[d.Name]; ok {
		t.fields[i] = d
		return t
	}
	t.index[d.Name] = len(t.fields)
	t.fields = append(t.fields, d)
	return t
}

// Lookup returns the descriptor declared for name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	i, ok := t.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return t.fields[i], true
}

// Fields returns the descriptors in declaration order.
func (t *Table) Fields() []Descriptor {
	out := make([]Descriptor, len(t.fields))
	copy(out, t.fields)
	return out
}

// KeyCase returns the key case applied to names without an explicit Key.
func (t *Table) KeyCase() KeyCase {
	return t.keyCase
}

// KeyFor serializes any name belonging to this type, including relationship
// keys, using the table's key case.
func (t *Table) KeyFor(name string) string {
	return t.keyCase.Transform(name)
}

// WireKey returns the serialized key for a declared field.
func (t *Table) WireKey(d Descriptor) string {
	if d.Key != nil {
		return d.Key(d.Name)
	}
	return t.KeyFor(d.Name)
}
