package scope

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidDirective indicates an include directive that cannot be turned
// into a Tree, either because of its Go type or because a key is malformed.
var ErrInvalidDirective = errors.New("invalid include directive")

// Resolve turns caller-facing include shorthand into a Tree.
//
// Accepted directives:
//   - nil: empty scope
//   - string: a single relation, "books" or the identifier-only form "books.id"
//   - []string and []any: several directives merged in order
//   - map[string]any, map[string]string, map[string][]string, map[string]Tree:
//     relation to nested directive; keys are sorted for stable output
//   - Tree or *Tree: cloned as is
//
// Dotted strings are kept verbatim as a single key. They mark identifier-only
// traversal and are interpreted by SplitKey and Tree.Descend.
func Resolve(directive any) (Tree, error) {
	switch d := directive.(type) {
	case nil:
		return Tree{}, nil
	case Tree:
		return d.Clone(), nil
	case *Tree:
		if d == nil {
			return Tree{}, nil
		}
		return d.Clone(), nil
	case string:
		if err := validateKey(d); err != nil {
			return Tree{}, err
		}
		return Of(d), nil
	case []string:
		var t Tree
		for _, k := range d {
			if err := validateKey(k); err != nil {
				return Tree{}, err
			}
			t.Merge(Of(k))
		}
		return t, nil
	case []any:
		var t Tree
		for i, item := range d {
			sub, err := Resolve(item)
			if err != nil {
				return Tree{}, fmt.Errorf("element %d: %w", i, err)
			}
			t.Merge(sub)
		}
		return t, nil
	case map[string]any:
		return resolveMap(d)
	case map[string]string:
		return resolveMap(d)
	case map[string][]string:
		return resolveMap(d)
	case map[string]Tree:
		return resolveMap(d)
	default:
		return Tree{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDirective, directive)
	}
}

// MustResolve is like Resolve but panics on error. Intended for package-level
// scope declarations.
func MustResolve(directive any) Tree {
	t, err := Resolve(directive)
	if err != nil {
		panic(err)
	}
	return t
}

func resolveMap[V any](m map[string]V) (Tree, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var t Tree
	for _, k := range keys {
		if err := validateKey(k); err != nil {
			return Tree{}, err
		}
		sub, err := Resolve(any(m[k]))
		if err != nil {
			return Tree{}, fmt.Errorf("key %q: %w", k, err)
		}
		t.Set(k, sub)
	}
	return t, nil
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidDirective)
	}
	for _, seg := range strings.Split(key, Separator) {
		if strings.TrimSpace(seg) == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidDirective, key)
		}
	}
	return nil
}
