package payload

import (
	"context"

	otelattr "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/writepayload/record"
	"github.com/zero-day-ai/writepayload/scope"
)

// Reconcile updates the graph after the server accepted a document built
// from root and tree. Related records marked for destruction or
// disassociation are removed from their owning relationship, survivors are
// reconciled along their nested scope, and link tracking is reset for the
// scoped relationships so the next build only reports new changes.
//
// Call it only after the write is confirmed.
func Reconcile(root *record.Record, tree scope.Tree) {
	prune(root, tree)
	root.ResetRelationTracking(tree)
}

// Commit is Reconcile with tracing, metrics and logging.
func (b *Builder) Commit(ctx context.Context, root *record.Record, tree scope.Tree) {
	ctx, span := b.tracer.Start(ctx, SpanReconcile, trace.WithAttributes(
		otelattr.String(AttrResourceType, root.Type),
		otelattr.String(AttrScope, tree.String()),
	))
	defer span.End()

	pruned := prune(root, tree)
	root.ResetRelationTracking(tree)

	span.SetAttributes(otelattr.Int(AttrPrunedCount, pruned))
	b.metrics.recordPrune(ctx, root.Type, pruned)
	if pruned > 0 {
		b.logger.Debug("pruned related records after write", "record", root.String(), "count", pruned)
	}
}

// prune removes marked related records reachable through tree and returns
// how many links were removed.
func prune(rec *record.Record, tree scope.Tree) int {
	removed := 0
	for _, key := range tree.Keys() {
		relation, _, _ := scope.SplitKey(key)
		rel, ok := rec.Relation(relation)
		if !ok || rel.IsNull() {
			continue
		}
		nested := tree.Descend(key)
		for _, related := range rel.Records() {
			if related.IsMarkedForDestruction() || related.IsMarkedForDisassociation() {
				if rec.Remove(relation, related) {
					removed++
				}
				continue
			}
			removed += prune(related, nested)
		}
	}
	return removed
}
