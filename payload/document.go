package payload

import (
	"encoding/json"

	"github.com/zero-day-ai/writepayload/record"
)

// Method is the write verb requested for one resource. It is a client-side
// hint for the transport, not a JSON:API member; transports talking to a
// strict server must strip or translate it.
type Method string

const (
	// MethodCreate creates a record that does not exist yet.
	MethodCreate Method = "create"

	// MethodUpdate updates an existing record or its links.
	MethodUpdate Method = "update"

	// MethodDestroy deletes an existing record.
	MethodDestroy Method = "destroy"

	// MethodDisassociate severs the link to an existing record without deleting it.
	MethodDisassociate Method = "disassociate"
)

// String returns the wire value of the method.
func (m Method) String() string {
	return string(m)
}

// ResourceIdentifier references a resource from relationship linkage.
type ResourceIdentifier struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	TempID string `json:"temp-id,omitempty"`
	Method Method `json:"method"`
}

// Resource is the wire representation of one record.
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id,omitempty"`
	TempID        string                  `json:"temp-id,omitempty"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Meta          map[string]any          `json:"meta,omitempty"`
}

// Relationship is the linkage of one relationship key: an explicit null,
// a single identifier, or an ordered list of identifiers.
type Relationship struct {
	one    *ResourceIdentifier
	many   []ResourceIdentifier
	toMany bool
}

// NullRelationship returns linkage that clears a to-one relationship.
func NullRelationship() Relationship {
	return Relationship{}
}

// ToOne returns to-one linkage.
func ToOne(id ResourceIdentifier) Relationship {
	return Relationship{one: &id}
}

// ToMany returns to-many linkage over a copy of ids.
func ToMany(ids ...ResourceIdentifier) Relationship {
	out := make([]ResourceIdentifier, len(ids))
	copy(out, ids)
	return Relationship{many: out, toMany: true}
}

// IsNull reports whether the linkage is an explicit null.
func (r Relationship) IsNull() bool {
	return !r.toMany && r.one == nil
}

// IsToMany reports whether the linkage is a list.
func (r Relationship) IsToMany() bool {
	return r.toMany
}

// One returns the to-one identifier, or nil.
func (r Relationship) One() *ResourceIdentifier {
	return r.one
}

// Many returns the to-many identifiers in order.
func (r Relationship) Many() []ResourceIdentifier {
	out := make([]ResourceIdentifier, len(r.many))
	copy(out, r.many)
	return out
}

// MarshalJSON writes {"data": null | identifier | [identifiers]}.
func (r Relationship) MarshalJSON() ([]byte, error) {
	switch {
	case r.toMany:
		return json.Marshal(struct {
			Data []ResourceIdentifier `json:"data"`
		}{Data: r.Many()})
	case r.one != nil:
		return json.Marshal(struct {
			Data *ResourceIdentifier `json:"data"`
		}{Data: r.one})
	default:
		return []byte(`{"data":null}`), nil
	}
}

// UnmarshalJSON reads linkage written by MarshalJSON.
func (r *Relationship) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Relationship{}
	switch {
	case len(raw.Data) == 0 || string(raw.Data) == "null":
		return nil
	case raw.Data[0] == '[':
		r.toMany = true
		return json.Unmarshal(raw.Data, &r.many)
	default:
		r.one = &ResourceIdentifier{}
		return json.Unmarshal(raw.Data, r.one)
	}
}

// Document is a write request: the primary resource plus the deduplicated
// resources of every related record that is written alongside it.
type Document struct {
	Data     Resource   `json:"data"`
	Included []Resource `json:"included,omitempty"`

	tempIDs map[string]*record.Record
	sent    []*record.Record
}

// TempIDs maps every temporary identifier used in the document to its
// record, so the read path can match server-assigned ids to records.
func (d *Document) TempIDs() map[string]*record.Record {
	out := make(map[string]*record.Record, len(d.tempIDs))
	for k, v := range d.tempIDs {
		out[k] = v
	}
	return out
}

// Related returns the related records serialized into the document, in
// visit order, without duplicates.
func (d *Document) Related() []*record.Record {
	out := make([]*record.Record, len(d.sent))
	copy(out, d.sent)
	return out
}

// Prepare readies the graph for sending this document. Each temporary
// identifier is stamped onto its record so later builds reuse it until the
// record is persisted, and validation errors are cleared on every related
// record that was serialized. Building alone never mutates the graph.
func (d *Document) Prepare() {
	for id, rec := range d.tempIDs {
		rec.TempID = id
	}
	for _, rec := range d.sent {
		rec.ClearErrors()
	}
}

// MarshalIndent is a convenience for logging and debugging.
func (d *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
