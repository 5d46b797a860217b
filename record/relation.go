package record

// RelationKind distinguishes the shapes a relationship value can take.
type RelationKind int

const (
	// KindNull is an explicit null to-one relationship.
	KindNull RelationKind = iota

	// KindOne is a to-one relationship holding a record.
	KindOne

	// KindMany is a to-many relationship holding an ordered list of records.
	KindMany
)

// String returns the kind name.
func (k RelationKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindOne:
		return "one"
	case KindMany:
		return "many"
	default:
		return "unknown"
	}
}

// Relation is the current value of one relationship on a record.
type Relation struct {
	kind RelationKind
	one  *Record
	many []*Record
}

// Null returns an explicit null relation.
func Null() Relation {
	return Relation{kind: KindNull}
}

// One returns a to-one relation. A nil record yields an explicit null.
func One(r *Record) Relation {
	if r == nil {
		return Null()
	}
	return Relation{kind: KindOne, one: r}
}

// Many returns a to-many relation over a copy of records. Nil entries are dropped.
func Many(records ...*Record) Relation {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return Relation{kind: KindMany, many: out}
}

// Kind returns the relation shape.
func (r Relation) Kind() RelationKind {
	return r.kind
}

// IsNull reports whether the relation is an explicit null.
func (r Relation) IsNull() bool {
	return r.kind == KindNull
}

// One returns the related record of a to-one relation, or nil.
func (r Relation) One() *Record {
	return r.one
}

// Many returns the related records of a to-many relation in order.
func (r Relation) Many() []*Record {
	out := make([]*Record, len(r.many))
	copy(out, r.many)
	return out
}

// Records returns every related record regardless of shape.
func (r Relation) Records() []*Record {
	switch r.kind {
	case KindOne:
		return []*Record{r.one}
	case KindMany:
		return r.Many()
	default:
		return nil
	}
}

func (r Relation) contains(target *Record) bool {
	switch r.kind {
	case KindOne:
		return r.one == target
	case KindMany:
		for _, m := range r.many {
			if m == target {
				return true
			}
		}
	}
	return false
}
