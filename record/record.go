package record

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/zero-day-ai/writepayload/scope"
)

// Record is one domain entity instance in a client-side record graph.
//
// Records are shared by pointer: a record reachable through several
// relationships is one instance, and identity comparisons use pointer
// equality. A Record is not safe for concurrent use; callers serialize
// builds and reconciles over the same graph.
type Record struct {
	// Type is the resource type, e.g. "authors". Empty means undefined.
	Type string

	// ID is the server-assigned identifier, set once persisted.
	ID string

	// TempID is the client-assigned identifier of an unpersisted record.
	TempID string

	persisted    bool
	destroy      bool
	disassociate bool

	attrs   map[string]any
	synced  map[string]any
	changed map[string]struct{}

	relations map[string]Relation
	relOrder  []string
	links     map[string]map[*Record]struct{}

	meta      map[string]any
	metaDirty bool

	errors map[string][]string
}

// New creates an unpersisted record of the given resource type.
func New(resourceType string) *Record {
	r := &Record{Type: resourceType}
	r.init()
	return r
}

// Persisted creates a record that mirrors server state: it is persisted with
// the given id, its attributes are synced and no field is dirty.
func Persisted(resourceType, id string, attrs map[string]any) *Record {
	r := New(resourceType)
	r.ID = id
	r.persisted = true
	for k, v := range attrs {
		r.attrs[k] = v
	}
	r.Sync()
	return r
}

// init allocates the internal maps of a Record built as a struct literal.
func (r *Record) init() {
	if r.attrs == nil {
		r.attrs = make(map[string]any)
	}
	if r.synced == nil {
		r.synced = make(map[string]any)
	}
	if r.changed == nil {
		r.changed = make(map[string]struct{})
	}
	if r.relations == nil {
		r.relations = make(map[string]Relation)
	}
	if r.links == nil {
		r.links = make(map[string]map[*Record]struct{})
	}
	if r.meta == nil {
		r.meta = make(map[string]any)
	}
}

// IsPersisted reports whether the record exists server-side.
func (r *Record) IsPersisted() bool {
	return r.persisted
}

// SetPersisted marks the record as existing server-side.
func (r *Record) SetPersisted(persisted bool) {
	r.persisted = persisted
}

// IsMarkedForDestruction reports whether the record should be destroyed.
func (r *Record) IsMarkedForDestruction() bool {
	return r.destroy
}

// IsMarkedForDisassociation reports whether the record's link should be
// severed without destroying it.
func (r *Record) IsMarkedForDisassociation() bool {
	return r.disassociate
}

// MarkForDestruction flags the record for removal from its owning collection.
func (r *Record) MarkForDestruction() {
	r.destroy = true
	r.disassociate = false
}

// MarkForDisassociation flags the record's link for removal.
func (r *Record) MarkForDisassociation() {
	r.disassociate = true
	r.destroy = false
}

// Unmark clears destruction and disassociation flags.
func (r *Record) Unmark() {
	r.destroy = false
	r.disassociate = false
}

// Set assigns an attribute. The field is tracked as changed while its value
// differs from the last synced value.
func (r *Record) Set(field string, value any) {
	r.init()
	r.attrs[field] = value
	if old, ok := r.synced[field]; ok && reflect.DeepEqual(old, value) {
		delete(r.changed, field)
		return
	}
	r.changed[field] = struct{}{}
}

// Get returns an attribute value.
func (r *Record) Get(field string) (any, bool) {
	v, ok := r.attrs[field]
	return v, ok
}

// Has reports whether the record holds a value for field.
func (r *Record) Has(field string) bool {
	_, ok := r.attrs[field]
	return ok
}

// Attributes returns a copy of all attribute values.
func (r *Record) Attributes() map[string]any {
	out := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}

// Changed reports whether field differs from its synced value.
func (r *Record) Changed(field string) bool {
	_, ok := r.changed[field]
	return ok
}

// ChangedFields returns the changed field names, sorted.
func (r *Record) ChangedFields() []string {
	out := make([]string, 0, len(r.changed))
	for k := range r.changed {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Changes returns field -> [synced, current] for every changed field.
func (r *Record) Changes() map[string][2]any {
	out := make(map[string][2]any, len(r.changed))
	for k := range r.changed {
		out[k] = [2]any{r.synced[k], r.attrs[k]}
	}
	return out
}

// Sync accepts the current state as the server state. Attribute changes,
// meta dirtiness and every relationship link snapshot are reset.
func (r *Record) Sync() {
	r.synced = make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		r.synced[k] = v
	}
	r.changed = make(map[string]struct{})
	r.metaDirty = false
	for key := range r.relations {
		r.snapshot(key)
	}
}

// SetOne sets a to-one relationship. A nil record sets an explicit null.
func (r *Record) SetOne(key string, related *Record) {
	r.setRelation(key, One(related))
}

// SetMany replaces a to-many relationship.
func (r *Record) SetMany(key string, related ...*Record) {
	r.setRelation(key, Many(related...))
}

// Append adds records to a to-many relationship, creating it if needed.
func (r *Record) Append(key string, related ...*Record) {
	current, ok := r.relations[key]
	if !ok || current.kind != KindMany {
		r.setRelation(key, Many(related...))
		return
	}
	r.setRelation(key, Many(append(current.Many(), related...)...))
}

// Unset removes a relationship value so it is treated as not loaded.
func (r *Record) Unset(key string) {
	if _, ok := r.relations[key]; !ok {
		return
	}
	delete(r.relations, key)
	for i, k := range r.relOrder {
		if k == key {
			r.relOrder = append(r.relOrder[:i], r.relOrder[i+1:]...)
			break
		}
	}
}

// Relation returns the current value of a relationship. ok is false when the
// relationship is not loaded.
func (r *Record) Relation(key string) (Relation, bool) {
	rel, ok := r.relations[key]
	return rel, ok
}

// RelationKeys returns loaded relationship keys in the order first set.
func (r *Record) RelationKeys() []string {
	out := make([]string, len(r.relOrder))
	copy(out, r.relOrder)
	return out
}

// Remove drops target from the relationship by identity: every occurrence in
// a to-many relation, or the to-one slot which becomes an explicit null.
// It reports whether anything was removed.
func (r *Record) Remove(key string, target *Record) bool {
	rel, ok := r.relations[key]
	if !ok {
		return false
	}
	switch rel.kind {
	case KindOne:
		if rel.one != target {
			return false
		}
		r.relations[key] = Null()
		return true
	case KindMany:
		kept := make([]*Record, 0, len(rel.many))
		for _, m := range rel.many {
			if m != target {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(rel.many) {
			return false
		}
		r.relations[key] = Relation{kind: KindMany, many: kept}
		return true
	}
	return false
}

func (r *Record) setRelation(key string, rel Relation) {
	r.init()
	if _, ok := r.relations[key]; !ok {
		r.relOrder = append(r.relOrder, key)
	}
	r.relations[key] = rel
}

// HasDirtyRelation reports whether the link from this record to candidate
// under key is new since the last sync, independent of whether candidate
// itself changed.
func (r *Record) HasDirtyRelation(key string, candidate *Record) bool {
	_, linked := r.links[key][candidate]
	return !linked
}

// ResetRelationTracking accepts the current links as synced for every
// relation named in tree, then does the same for the related records along
// the nested scopes.
func (r *Record) ResetRelationTracking(tree scope.Tree) {
	tree.Each(func(key string, _ scope.Tree) {
		relation, _, _ := scope.SplitKey(key)
		r.snapshot(relation)
		rel, ok := r.relations[relation]
		if !ok {
			return
		}
		nested := tree.Descend(key)
		for _, related := range rel.Records() {
			related.ResetRelationTracking(nested)
		}
	})
}

func (r *Record) snapshot(key string) {
	r.init()
	rel, ok := r.relations[key]
	if !ok {
		delete(r.links, key)
		return
	}
	set := make(map[*Record]struct{})
	for _, related := range rel.Records() {
		set[related] = struct{}{}
	}
	r.links[key] = set
}

// IsDirty reports whether the record, or anything reachable through tree,
// has changes worth sending: the record is new or marked, has changed
// attributes or meta, or a scoped relation has a new, removed or dirty link.
func (r *Record) IsDirty(tree scope.Tree) bool {
	if !r.persisted || r.destroy || r.disassociate || len(r.changed) > 0 || r.metaDirty {
		return true
	}
	dirty := false
	tree.Each(func(key string, _ scope.Tree) {
		if dirty {
			return
		}
		dirty = r.relationDirty(key, tree.Descend(key))
	})
	return dirty
}

func (r *Record) relationDirty(key string, nested scope.Tree) bool {
	relation, _, _ := scope.SplitKey(key)
	rel, ok := r.relations[relation]
	if !ok {
		return false
	}
	for linked := range r.links[relation] {
		if !rel.contains(linked) {
			return true
		}
	}
	for _, related := range rel.Records() {
		if r.HasDirtyRelation(relation, related) || related.IsDirty(nested) {
			return true
		}
	}
	return false
}

// Meta returns a copy of the record's meta information.
func (r *Record) Meta() map[string]any {
	out := make(map[string]any, len(r.meta))
	for k, v := range r.meta {
		out[k] = v
	}
	return out
}

// SetMeta stores a meta value and marks meta dirty.
func (r *Record) SetMeta(key string, value any) {
	r.init()
	r.meta[key] = value
	r.metaDirty = true
}

// IsMetaDirty reports whether meta changed since the last sync.
func (r *Record) IsMetaDirty() bool {
	return r.metaDirty
}

// ClearMetaDirty marks meta as synced.
func (r *Record) ClearMetaDirty() {
	r.metaDirty = false
}

// AddError records a validation error for field.
func (r *Record) AddError(field, message string) {
	if r.errors == nil {
		r.errors = make(map[string][]string)
	}
	r.errors[field] = append(r.errors[field], message)
}

// Errors returns a copy of the recorded validation errors.
func (r *Record) Errors() map[string][]string {
	out := make(map[string][]string, len(r.errors))
	for k, v := range r.errors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// HasErrors reports whether any validation error is recorded.
func (r *Record) HasErrors() bool {
	return len(r.errors) > 0
}

// ClearErrors drops all recorded validation errors.
func (r *Record) ClearErrors() {
	r.errors = nil
}

// String identifies the record for logs, e.g. "authors#1" or
// "books(temp:temp-id-3)".
func (r *Record) String() string {
	typ := r.Type
	if typ == "" {
		typ = "<undefined>"
	}
	switch {
	case r.ID != "":
		return fmt.Sprintf("%s#%s", typ, r.ID)
	case r.TempID != "":
		return fmt.Sprintf("%s(temp:%s)", typ, r.TempID)
	default:
		return fmt.Sprintf("%s(new)", typ)
	}
}
