package scope

import (
	"strings"
)

// IDMarker is the trailing path segment that marks a dotted key as
// identifier-only without naming a nested relation, as in "genre.id".
const IDMarker = "id"

// Separator splits a dotted include key into its relation and nested path.
const Separator = "."

type entry struct {
	key string
	sub Tree
}

// Tree is a finite, ordered include scope. Each key names a relation to
// traverse and maps to the scope used for the related records. Keys keep
// their insertion order so serialized output is stable.
//
// The zero value is an empty tree ready to use.
type Tree struct {
	entries []entry
}

// New returns an empty Tree.
func New() Tree {
	return Tree{}
}

// Of builds a flat tree whose keys each map to an empty sub-tree.
func Of(keys ...string) Tree {
	var t Tree
	for _, k := range keys {
		t.Set(k, Tree{})
	}
	return t
}

// Set adds or replaces the sub-tree for key. Replacing keeps the key's
// original position.
func (t *Tree) Set(key string, sub Tree) *Tree {
	for i := range t.entries {
		if t.entries[i].key == key {
			t.entries[i].sub = sub
			return t
		}
	}
	t.entries = append(t.entries, entry{key: key, sub: sub})
	return t
}

// Get returns the sub-tree stored at key.
func (t Tree) Get(key string) (Tree, bool) {
	for _, e := range t.entries {
		if e.key == key {
			return e.sub, true
		}
	}
	return Tree{}, false
}

// Keys returns the keys in insertion order.
func (t Tree) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of keys at this level.
func (t Tree) Len() int {
	return len(t.entries)
}

// IsEmpty reports whether the tree has no keys.
func (t Tree) IsEmpty() bool {
	return len(t.entries) == 0
}

// Each calls fn for every key and its sub-tree in order.
func (t Tree) Each(fn func(key string, sub Tree)) {
	for _, e := range t.entries {
		fn(e.key, e.sub)
	}
}

// Merge folds other into t. Keys present in both trees are merged
// recursively; new keys are appended in other's order.
func (t *Tree) Merge(other Tree) {
	for _, oe := range other.entries {
		merged := false
		for i := range t.entries {
			if t.entries[i].key == oe.key {
				t.entries[i].sub.Merge(oe.sub)
				merged = true
				break
			}
		}
		if !merged {
			t.entries = append(t.entries, entry{key: oe.key, sub: oe.sub.Clone()})
		}
	}
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if len(t.entries) == 0 {
		return Tree{}
	}
	out := Tree{entries: make([]entry, len(t.entries))}
	for i, e := range t.entries {
		out.entries[i] = entry{key: e.key, sub: e.sub.Clone()}
	}
	return out
}

// Descend returns the scope to apply one level below key. For a plain key
// that is the stored sub-tree. For a dotted key the remaining path segments
// are wrapped around the stored sub-tree, so "books.author" with sub-tree {}
// descends into {author: {}} and "genre.id" descends into the sub-tree itself.
func (t Tree) Descend(key string) Tree {
	sub, _ := t.Get(key)
	_, path, idOnly := SplitKey(key)
	if !idOnly {
		return sub
	}
	for i := len(path) - 1; i >= 0; i-- {
		var wrap Tree
		wrap.Set(path[i], sub)
		sub = wrap
	}
	return sub
}

// SplitKey breaks an include key into the relation it addresses and the
// nested path named after the first separator. idOnly is true whenever the
// key is dotted; a trailing IDMarker segment is dropped from the path.
func SplitKey(key string) (relation string, path []string, idOnly bool) {
	relation, rest, found := strings.Cut(key, Separator)
	if !found {
		return key, nil, false
	}
	path = strings.Split(rest, Separator)
	if path[len(path)-1] == IDMarker {
		path = path[:len(path)-1]
	}
	if len(path) == 0 {
		path = nil
	}
	return relation, path, true
}

// String renders the tree compactly, e.g. "books{genre},author.id".
func (t Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Tree) write(b *strings.Builder) {
	for i, e := range t.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.key)
		if !e.sub.IsEmpty() {
			b.WriteByte('{')
			e.sub.write(b)
			b.WriteByte('}')
		}
	}
}
