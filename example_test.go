package writepayload_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zero-day-ai/writepayload"
	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/record"
	"github.com/zero-day-ai/writepayload/tempid"
)

func ExampleWriter_Build() {
	registry := attribute.NewRegistry().
		Register("authors", attribute.NewTable(attribute.KeyCaseCamel).Field("firstName")).
		Register("books", attribute.NewTable(attribute.KeyCaseCamel).Field("title"))

	w, err := writepayload.NewWriter(
		writepayload.WithRegistry(registry),
		writepayload.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		writepayload.WithTempIDGenerator(tempid.NewSequence("temp-id")),
	)
	if err != nil {
		panic(err)
	}

	author := record.Persisted("authors", "1", map[string]any{"firstName": "John"})
	author.Set("firstName", "Jane")
	book := record.New("books")
	book.Set("title", "Kindred")
	author.SetMany("books", book)

	doc, err := w.Build(context.Background(), author, "books")
	if err != nil {
		panic(err)
	}
	out, _ := doc.MarshalIndent()
	fmt.Println(string(out))
	// Output:
	// {
	//   "data": {
	//     "type": "authors",
	//     "id": "1",
	//     "attributes": {
	//       "firstName": "Jane"
	//     },
	//     "relationships": {
	//       "books": {
	//         "data": [
	//           {
	//             "type": "books",
	//             "temp-id": "temp-id-1",
	//             "method": "create"
	//           }
	//         ]
	//       }
	//     }
	//   },
	//   "included": [
	//     {
	//       "type": "books",
	//       "temp-id": "temp-id-1",
	//       "attributes": {
	//         "title": "Kindred"
	//       }
	//     }
	//   ]
	// }
}
