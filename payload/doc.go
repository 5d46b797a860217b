// Package payload builds JSON:API-style write documents from a record graph,
// sending only what changed.
//
// # Building
//
// A Builder walks the root record and the relationships named by an include
// scope. Attributes of new records are sent in full; persisted records send
// only changed fields. A related record appears in linkage when its link is
// new, when it has changes under its nested scope, or when the scope asks for
// identifiers with a dotted key such as "books.id". New records marked for
// destruction are left out entirely.
//
//	builder := payload.NewBuilder(registry, payload.WithLogger(logger))
//	doc, err := builder.Build(ctx, author, scope.MustResolve("books"), false)
//	if err != nil {
//	    return err // *ConfigError, nothing was built
//	}
//	doc.Prepare()
//	body, _ := json.Marshal(doc)
//
// Every related resource lands once in the document's included list, keyed by
// type and id or temp-id. Unpersisted related records get one temporary
// identifier per build, reused on every path that reaches them; Prepare stamps
// those identifiers onto the records so retries reuse them as well.
//
// # Reconciling
//
// After the server confirms the write, Reconcile (or Builder.Commit) removes
// destroyed and disassociated records from the graph and resets link tracking
// for the relationships that were sent.
//
// Builds and reconciles over the same graph must not run concurrently.
package payload
