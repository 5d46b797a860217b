package payload

// IncludedSet is the ordered, deduplicated collection of included resources.
// A resource is admitted only if no entry shares its type and either its id
// or its temp-id. The zero value is ready to use.
type IncludedSet struct {
	items []Resource
	index map[identity]struct{}
}

type identity struct {
	typ  string
	temp bool
	id   string
}

func identities(r Resource) []identity {
	var out []identity
	if r.ID != "" {
		out = append(out, identity{typ: r.Type, id: r.ID})
	}
	if r.TempID != "" {
		out = append(out, identity{typ: r.Type, temp: true, id: r.TempID})
	}
	return out
}

func sharesIdentity(ids []identity, r Resource) bool {
	for _, a := range ids {
		for _, b := range identities(r) {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Add admits r unless an equivalent resource is already present. It reports
// whether r was added.
func (s *IncludedSet) Add(r Resource) bool {
	ids := identities(r)
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			return false
		}
	}
	if s.index == nil {
		s.index = make(map[identity]struct{})
	}
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	s.items = append(s.items, r)
	return true
}

// Merge adds every resource of other in order.
func (s *IncludedSet) Merge(other *IncludedSet) {
	if other == nil {
		return
	}
	for _, r := range other.items {
		s.Add(r)
	}
}

// Contains reports whether a resource with the given type and id or temp-id
// is present.
func (s *IncludedSet) Contains(typ, id, tempID string) bool {
	for _, ident := range identities(Resource{Type: typ, ID: id, TempID: tempID}) {
		if _, ok := s.index[ident]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of resources.
func (s *IncludedSet) Len() int {
	return len(s.items)
}

// Resources returns the resources in first-insertion order.
func (s *IncludedSet) Resources() []Resource {
	out := make([]Resource, len(s.items))
	copy(out, s.items)
	return out
}
