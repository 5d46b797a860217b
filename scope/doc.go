// Package scope models include scopes: finite, ordered trees naming which
// relationships of a record graph to traverse when building a write document.
//
// A scope is usually resolved from shorthand:
//
//	tree, err := scope.Resolve(map[string]any{
//	    "books": []string{"genre", "author.id"},
//	})
//
// A key containing a "." marks identifier-only traversal. The relation is the
// segment before the first dot; the rest names the nested relation to descend
// into, with a trailing "id" naming nothing further.
//
// Because a Tree is finite, walks driven by it terminate even when the record
// graph itself contains cycles.
package scope
