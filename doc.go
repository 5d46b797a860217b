// Package writepayload builds JSON:API-style write documents from an
// in-memory graph of records and keeps the graph in step with what the
// server accepted.
//
// # Core Concepts
//
//   - Records: typed resources with tracked attribute changes and links
//     (package record)
//   - Include scopes: ordered trees naming which relationships to walk
//     (package scope)
//   - Attribute descriptors: which fields are persisted and how their keys
//     are spelled on the wire (package attribute)
//   - Documents: the primary resource plus deduplicated included resources
//     (package payload)
//
// # Getting Started
//
//	w, err := writepayload.NewWriter(
//		writepayload.WithDescriptorFile("config/attributes.yaml"),
//		writepayload.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	doc, err := w.Build(ctx, author, map[string]any{"books": "genre"})
//	if err != nil {
//		return err
//	}
//	body, _ := json.Marshal(doc)
//	// send body, then once the server confirmed the write:
//	_ = w.Commit(ctx, author, map[string]any{"books": "genre"})
//
// # Change Tracking
//
// Persisted records send only changed attributes. A related record is
// linked when its link is new, when it has changes under its nested scope,
// or when the scope asks for identifiers with a dotted key such as
// "books.id". Records marked for destruction or disassociation are linked
// with the matching method and removed from the graph by Commit.
//
// # Error Handling
//
// Every error returned by a Writer is an *Error carrying the operation and
// a kind:
//
//	if errors.Is(err, &writepayload.Error{Kind: writepayload.KindConfiguration}) {
//		// a record type without descriptors, or an undefined type
//	}
//
// # Observability
//
// Builds and commits emit OpenTelemetry spans and counters through the
// global providers unless WithTracer or WithMeter supply others.
package writepayload
