package payload

import (
	"context"
	"fmt"
	"log/slog"

	otelattr "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/record"
	"github.com/zero-day-ai/writepayload/scope"
	"github.com/zero-day-ai/writepayload/tempid"
)

// Builder turns a record graph into write documents.
//
// A Builder holds only collaborators and is safe to share. Each Build call
// is a synchronous walk that performs no I/O and does not mutate the graph.
type Builder struct {
	registry attribute.Registry
	tempIDs  tempid.Generator
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *instruments
}

// NewBuilder creates a Builder resolving attribute descriptors from registry.
func NewBuilder(registry attribute.Registry, opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{
		registry: registry,
		tempIDs:  cfg.tempIDs,
		logger:   cfg.logger,
		tracer:   cfg.tracer,
		metrics:  newInstruments(cfg.meter, cfg.logger),
	}
}

// buildState is shared by every level of one Build call.
type buildState struct {
	assigned map[*record.Record]string
	sent     []*record.Record
	seen     map[*record.Record]struct{}
}

// tempIDFor returns the temporary identifier of an unpersisted record,
// generating one on the first visit of this build. A record that already
// carries a TempID keeps it.
func (b *Builder) tempIDFor(rec *record.Record, st *buildState) string {
	if rec.TempID != "" {
		return rec.TempID
	}
	if id, ok := st.assigned[rec]; ok {
		return id
	}
	id := b.tempIDs.Generate()
	st.assigned[rec] = id
	return id
}

// Build serializes root and the relationships named by tree.
//
// With idOnly set the root carries no attributes, only identity and the
// linkage of its scoped relationships. The returned document is complete or
// nil: a record with an undefined or unregistered type anywhere in the walk
// aborts the build with a *ConfigError.
func (b *Builder) Build(ctx context.Context, root *record.Record, tree scope.Tree, idOnly bool) (*Document, error) {
	ctx, span := b.tracer.Start(ctx, SpanBuild, trace.WithAttributes(
		otelattr.String(AttrResourceType, root.Type),
		otelattr.String(AttrScope, tree.String()),
	))
	defer span.End()

	st := &buildState{
		assigned: make(map[*record.Record]string),
		seen:     make(map[*record.Record]struct{}),
	}
	var included IncludedSet

	data, err := b.build(root, tree, idOnly, "", st, &included)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc := &Document{
		Data:    data,
		tempIDs: make(map[string]*record.Record, len(st.assigned)),
		sent:    st.sent,
	}
	primary := identities(data)
	for _, res := range included.Resources() {
		if !sharesIdentity(primary, res) {
			doc.Included = append(doc.Included, res)
		}
	}
	for rec, id := range st.assigned {
		doc.tempIDs[id] = rec
	}
	for _, rec := range append([]*record.Record{root}, st.sent...) {
		if rec.TempID != "" && !rec.IsPersisted() {
			doc.tempIDs[rec.TempID] = rec
		}
	}

	span.SetAttributes(otelattr.Int(AttrIncludedCount, len(doc.Included)))
	b.metrics.recordBuild(ctx, root.Type, len(doc.Included))
	return doc, nil
}

func (b *Builder) tableFor(rec *record.Record, path string) (*attribute.Table, error) {
	if rec.Type == "" {
		return nil, &ConfigError{Path: path, Record: rec.String(), Err: ErrUndefinedType}
	}
	table, err := b.registry.ForType(rec.Type)
	if err != nil {
		return nil, &ConfigError{Path: path, Record: rec.String(), Err: err}
	}
	return table, nil
}

// build produces the resource for rec and adds the resources of its scoped
// related records to included.
func (b *Builder) build(rec *record.Record, tree scope.Tree, idOnly bool, path string, st *buildState, included *IncludedSet) (Resource, error) {
	table, err := b.tableFor(rec, path)
	if err != nil {
		return Resource{}, err
	}

	res := Resource{Type: rec.Type}
	if !idOnly {
		if attrs := ExtractAttributes(rec, table); len(attrs) > 0 {
			res.Attributes = attrs
		}
	}

	rels, err := b.relationships(rec, table, tree, path, st, included)
	if err != nil {
		return Resource{}, err
	}
	if len(rels) > 0 {
		res.Relationships = rels
	}

	if meta := rec.Meta(); rec.IsMetaDirty() && len(meta) > 0 {
		res.Meta = meta
	}

	// Identity is read after the walk: an unpersisted root reached again
	// through its own relationships is assigned its temp-id there.
	if rec.IsPersisted() {
		res.ID = rec.ID
	} else if rec.TempID != "" {
		res.TempID = rec.TempID
	} else if id, ok := st.assigned[rec]; ok {
		res.TempID = id
	}
	return res, nil
}

func (b *Builder) relationships(rec *record.Record, table *attribute.Table, tree scope.Tree, path string, st *buildState, included *IncludedSet) (map[string]Relationship, error) {
	out := make(map[string]Relationship)
	for _, key := range tree.Keys() {
		relation, _, forced := scope.SplitKey(key)
		nested := tree.Descend(key)

		rel, ok := rec.Relation(relation)
		if !ok {
			continue
		}
		wireKey := table.KeyFor(relation)
		relPath := joinPath(path, relation)

		switch rel.Kind() {
		case record.KindNull:
			out[wireKey] = NullRelationship()

		case record.KindMany:
			var ids []ResourceIdentifier
			for i, related := range rel.Many() {
				if !b.eligible(rec, relation, related, nested, forced) {
					continue
				}
				id, err := b.related(related, nested, forced, fmt.Sprintf("%s[%d]", relPath, i), st, included)
				if err != nil {
					return nil, err
				}
				ids = append(ids, id)
			}
			if len(ids) == 0 {
				b.logger.Debug("omitting relationship with nothing to send", "record", rec.String(), "relationship", relation)
				continue
			}
			out[wireKey] = ToMany(ids...)

		case record.KindOne:
			related := rel.One()
			if !b.eligible(rec, relation, related, nested, forced) {
				b.logger.Debug("omitting relationship with nothing to send", "record", rec.String(), "relationship", relation)
				continue
			}
			id, err := b.related(related, nested, forced, relPath, st, included)
			if err != nil {
				return nil, err
			}
			out[wireKey] = ToOne(id)
		}
	}
	return out, nil
}

// eligible reports whether related belongs in owner's linkage: it is not a
// new record being destroyed, and either identifiers were requested, the
// link itself is new, or related has changes under nested.
func (b *Builder) eligible(owner *record.Record, relation string, related *record.Record, nested scope.Tree, forced bool) bool {
	if isNewAndDestroyed(related) {
		b.logger.Debug("skipping new record marked for destruction", "record", related.String(), "relationship", relation)
		return false
	}
	return forced || owner.HasDirtyRelation(relation, related) || related.IsDirty(nested)
}

// related serializes one related record into a child included set, then
// folds the child resource and its contributions into included.
func (b *Builder) related(rec *record.Record, nested scope.Tree, idOnly bool, path string, st *buildState, included *IncludedSet) (ResourceIdentifier, error) {
	var tempID string
	if !rec.IsPersisted() {
		tempID = b.tempIDFor(rec, st)
	}

	var child IncludedSet
	res, err := b.build(rec, nested, idOnly, path, st, &child)
	if err != nil {
		return ResourceIdentifier{}, err
	}
	if !idOnly {
		included.Add(res)
	}
	included.Merge(&child)

	if _, ok := st.seen[rec]; !ok {
		st.seen[rec] = struct{}{}
		st.sent = append(st.sent, rec)
	}

	return IdentifierFor(rec, tempID)
}

func joinPath(parent, relation string) string {
	if parent == "" {
		return relation
	}
	return parent + "." + relation
}
