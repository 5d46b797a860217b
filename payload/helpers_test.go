package payload

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/record"
	"github.com/zero-day-ai/writepayload/scope"
	"github.com/zero-day-ai/writepayload/tempid"
)

// testRegistry declares the fixture types used across the package tests.
func testRegistry() *attribute.DefaultRegistry {
	return attribute.NewRegistry().
		Register("authors", attribute.NewTable(attribute.KeyCaseNone).
			Field("firstName").
			Field("lastName").
			Number("age").
			Virtual("fullName")).
		Register("non_fiction_authors", attribute.NewTable(attribute.KeyCaseSnake).
			Field("firstName")).
		Register("books", attribute.NewTable(attribute.KeyCaseNone).
			Field("title").
			Number("pages")).
		Register("genres", attribute.NewTable(attribute.KeyCaseNone).
			Field("name"))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBuilder(opts ...Option) *Builder {
	base := []Option{
		WithLogger(quietLogger()),
		WithTempIDGenerator(tempid.NewSequence("temp-id")),
	}
	return NewBuilder(testRegistry(), append(base, opts...)...)
}

// synced returns a persisted record whose attributes and links are clean.
func synced(resourceType, id string, attrs map[string]any) *record.Record {
	return record.Persisted(resourceType, id, attrs)
}

func build(t *testing.T, b *Builder, root *record.Record, directive any) *Document {
	t.Helper()
	doc, err := b.Build(context.Background(), root, scope.MustResolve(directive), false)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}
