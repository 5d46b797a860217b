package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/writepayload/scope"
)

func TestRecord_AttributeTracking(t *testing.T) {
	r := Persisted("authors", "1", map[string]any{"firstName": "John", "age": 40})
	assert.Empty(t, r.ChangedFields())

	r.Set("firstName", "Jane")
	assert.True(t, r.Changed("firstName"))
	assert.Equal(t, []string{"firstName"}, r.ChangedFields())
	assert.Equal(t, [2]any{"John", "Jane"}, r.Changes()["firstName"])

	// Reverting to the synced value clears the change.
	r.Set("firstName", "John")
	assert.False(t, r.Changed("firstName"))

	r.Set("nickname", "JJ")
	assert.True(t, r.Changed("nickname"))

	r.Sync()
	assert.Empty(t, r.ChangedFields())
	v, ok := r.Get("nickname")
	require.True(t, ok)
	assert.Equal(t, "JJ", v)
}

func TestRecord_StructLiteral(t *testing.T) {
	r := &Record{Type: "books"}
	r.Set("title", "It")
	r.SetOne("genre", New("genres"))
	r.SetMeta("source", "import")

	assert.True(t, r.Has("title"))
	assert.True(t, r.IsMetaDirty())
	_, ok := r.Relation("genre")
	assert.True(t, ok)
}

func TestRecord_Markers(t *testing.T) {
	r := New("books")
	assert.False(t, r.IsPersisted())

	r.MarkForDestruction()
	assert.True(t, r.IsMarkedForDestruction())
	assert.False(t, r.IsMarkedForDisassociation())

	r.MarkForDisassociation()
	assert.False(t, r.IsMarkedForDestruction())
	assert.True(t, r.IsMarkedForDisassociation())

	r.Unmark()
	assert.False(t, r.IsMarkedForDestruction())
	assert.False(t, r.IsMarkedForDisassociation())
}

func TestRecord_Relations(t *testing.T) {
	author := New("authors")
	b1, b2 := New("books"), New("books")

	author.SetMany("books", b1)
	author.Append("books", b2, nil)
	rel, ok := author.Relation("books")
	require.True(t, ok)
	assert.Equal(t, KindMany, rel.Kind())
	assert.Equal(t, []*Record{b1, b2}, rel.Many())

	author.SetOne("genre", nil)
	rel, ok = author.Relation("genre")
	require.True(t, ok)
	assert.True(t, rel.IsNull())
	assert.Nil(t, rel.Records())

	assert.Equal(t, []string{"books", "genre"}, author.RelationKeys())

	author.Unset("genre")
	_, ok = author.Relation("genre")
	assert.False(t, ok)
	assert.Equal(t, []string{"books"}, author.RelationKeys())
}

func TestRecord_Remove(t *testing.T) {
	author := New("authors")
	b1, b2, b3 := New("books"), New("books"), New("books")
	author.SetMany("books", b1, b2, b3, b2)

	assert.True(t, author.Remove("books", b2))
	rel, _ := author.Relation("books")
	assert.Equal(t, []*Record{b1, b3}, rel.Many())
	assert.False(t, author.Remove("books", b2))

	genre := New("genres")
	author.SetOne("genre", genre)
	assert.False(t, author.Remove("genre", b1))
	assert.True(t, author.Remove("genre", genre))
	rel, _ = author.Relation("genre")
	assert.True(t, rel.IsNull())

	assert.False(t, author.Remove("missing", b1))
}

func TestRecord_HasDirtyRelation(t *testing.T) {
	author := Persisted("authors", "1", nil)
	existing := Persisted("books", "10", nil)
	author.SetMany("books", existing)
	author.Sync()

	assert.False(t, author.HasDirtyRelation("books", existing))

	moved := Persisted("books", "11", nil)
	author.Append("books", moved)
	assert.True(t, author.HasDirtyRelation("books", moved))
	assert.False(t, author.HasDirtyRelation("books", existing))
}

func TestRecord_IsDirty(t *testing.T) {
	clean := func() (*Record, *Record, *Record) {
		genre := Persisted("genres", "g1", map[string]any{"name": "Fantasy"})
		book := Persisted("books", "b1", map[string]any{"title": "It"})
		author := Persisted("authors", "a1", map[string]any{"firstName": "Stephen"})
		book.SetOne("genre", genre)
		book.Sync()
		author.SetMany("books", book)
		author.Sync()
		return author, book, genre
	}

	tree := scope.MustResolve(map[string]any{"books": "genre"})

	t.Run("clean graph", func(t *testing.T) {
		author, _, _ := clean()
		assert.False(t, author.IsDirty(tree))
	})

	t.Run("new record", func(t *testing.T) {
		assert.True(t, New("authors").IsDirty(scope.Tree{}))
	})

	t.Run("changed attribute", func(t *testing.T) {
		author, _, _ := clean()
		author.Set("firstName", "Richard")
		assert.True(t, author.IsDirty(scope.Tree{}))
	})

	t.Run("dirty meta", func(t *testing.T) {
		author, _, _ := clean()
		author.SetMeta("note", "x")
		assert.True(t, author.IsDirty(scope.Tree{}))
	})

	t.Run("nested change within scope", func(t *testing.T) {
		author, _, genre := clean()
		genre.Set("name", "Horror")
		assert.True(t, author.IsDirty(tree))
	})

	t.Run("nested change outside scope", func(t *testing.T) {
		author, _, genre := clean()
		genre.Set("name", "Horror")
		assert.False(t, author.IsDirty(scope.Of("books")))
	})

	t.Run("identifier-only key follows relation", func(t *testing.T) {
		author, book, _ := clean()
		book.MarkForDisassociation()
		assert.True(t, author.IsDirty(scope.Of("books.id")))
	})

	t.Run("new link", func(t *testing.T) {
		author, _, _ := clean()
		author.Append("books", Persisted("books", "b2", nil))
		assert.True(t, author.IsDirty(scope.Of("books")))
	})

	t.Run("removed link", func(t *testing.T) {
		author, book, _ := clean()
		author.Remove("books", book)
		assert.True(t, author.IsDirty(scope.Of("books")))
	})
}

func TestRecord_IsDirty_SelfReferenceTerminates(t *testing.T) {
	genre := Persisted("genres", "g1", nil)
	genre.SetOne("parentGenre", genre)
	genre.Sync()

	tree := scope.MustResolve(map[string]any{"parentGenre": map[string]any{"parentGenre": "parentGenre"}})
	assert.False(t, genre.IsDirty(tree))

	genre.Set("name", "Fantasy")
	assert.True(t, genre.IsDirty(tree))
}

func TestRecord_ResetRelationTracking(t *testing.T) {
	author := Persisted("authors", "1", nil)
	book := Persisted("books", "10", nil)
	genre := Persisted("genres", "20", nil)
	tag := Persisted("tags", "30", nil)

	author.SetMany("books", book)
	author.SetMany("tags", tag)
	book.SetOne("genre", genre)

	author.ResetRelationTracking(scope.MustResolve(map[string]any{"books": "genre"}))

	assert.False(t, author.HasDirtyRelation("books", book))
	assert.False(t, book.HasDirtyRelation("genre", genre))
	assert.True(t, author.HasDirtyRelation("tags", tag), "relations outside the scope keep their state")
}

func TestRecord_Errors(t *testing.T) {
	r := New("books")
	assert.False(t, r.HasErrors())

	r.AddError("title", "can't be blank")
	r.AddError("title", "is too short")
	assert.True(t, r.HasErrors())
	assert.Equal(t, []string{"can't be blank", "is too short"}, r.Errors()["title"])

	r.ClearErrors()
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.Errors())
}

func TestRecord_Meta(t *testing.T) {
	r := Persisted("books", "1", nil)
	assert.False(t, r.IsMetaDirty())

	r.SetMeta("reason", "typo")
	assert.True(t, r.IsMetaDirty())
	assert.Equal(t, map[string]any{"reason": "typo"}, r.Meta())

	r.ClearMetaDirty()
	assert.False(t, r.IsMetaDirty())
}

func TestRecord_String(t *testing.T) {
	assert.Equal(t, "authors#1", Persisted("authors", "1", nil).String())

	r := New("books")
	assert.Equal(t, "books(new)", r.String())
	r.TempID = "temp-id-3"
	assert.Equal(t, "books(temp:temp-id-3)", r.String())

	assert.Equal(t, "<undefined>(new)", New("").String())
}
