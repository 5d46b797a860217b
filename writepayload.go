package writepayload

import (
	"context"
	"log/slog"

	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/payload"
	"github.com/zero-day-ai/writepayload/record"
	"github.com/zero-day-ai/writepayload/scope"
)

// Writer prepares write documents for a record graph and reconciles the
// graph once the server confirmed a write.
//
// A Writer is safe for concurrent use across independent graphs. Calls on
// the same graph must not overlap.
type Writer struct {
	builder *payload.Builder
	logger  *slog.Logger
}

// NewWriter creates a Writer. Attribute descriptors must be supplied with
// WithRegistry or WithDescriptorFile.
func NewWriter(opts ...Option) (*Writer, error) {
	const op = "NewWriter"

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.registry == nil && cfg.descriptorPath != "" {
		registry, err := attribute.LoadFile(cfg.descriptorPath)
		if err != nil {
			return nil, NewConfigurationError(op, err).WithContext(map[string]any{"path": cfg.descriptorPath})
		}
		cfg.registry = registry
	}
	if cfg.registry == nil {
		return nil, NewConfigurationError(op, ErrNoRegistry)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	builderOpts := []payload.Option{payload.WithLogger(logger)}
	if cfg.tracer != nil {
		builderOpts = append(builderOpts, payload.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		builderOpts = append(builderOpts, payload.WithMeter(cfg.meter))
	}
	if cfg.tempIDs != nil {
		builderOpts = append(builderOpts, payload.WithTempIDGenerator(cfg.tempIDs))
	}

	return &Writer{
		builder: payload.NewBuilder(cfg.registry, builderOpts...),
		logger:  logger,
	}, nil
}

// Build produces the write document for root and the relationships named
// by directive, then prepares the graph for sending it: temporary
// identifiers are stamped on new records and validation errors of the sent
// related records are cleared.
//
// The directive accepts everything scope.Resolve does: a relation name, a
// list of names, a nested map or a scope.Tree.
func (w *Writer) Build(ctx context.Context, root *record.Record, directive any) (*payload.Document, error) {
	return w.build(ctx, "Writer.Build", root, directive, false)
}

// BuildIdentifiers is Build without the root's attributes: only its
// identity and the linkage of the scoped relationships are sent.
func (w *Writer) BuildIdentifiers(ctx context.Context, root *record.Record, directive any) (*payload.Document, error) {
	return w.build(ctx, "Writer.BuildIdentifiers", root, directive, true)
}

func (w *Writer) build(ctx context.Context, op string, root *record.Record, directive any, idOnly bool) (*payload.Document, error) {
	if root == nil {
		return nil, wrap(op, ErrNilRecord)
	}
	tree, err := scope.Resolve(directive)
	if err != nil {
		return nil, wrap(op, err)
	}

	doc, err := w.builder.Build(ctx, root, tree, idOnly)
	if err != nil {
		w.logger.Error("failed to build write document", "record", root.String(), "scope", tree.String(), "error", err)
		return nil, wrap(op, err)
	}
	doc.Prepare()

	w.logger.Debug("built write document",
		"record", root.String(),
		"scope", tree.String(),
		"included", len(doc.Included))
	return doc, nil
}

// Commit reconciles the graph after the server accepted the document built
// from root and directive: destroyed and disassociated related records are
// removed and link tracking is reset for the scoped relationships.
func (w *Writer) Commit(ctx context.Context, root *record.Record, directive any) error {
	const op = "Writer.Commit"
	if root == nil {
		return wrap(op, ErrNilRecord)
	}
	tree, err := scope.Resolve(directive)
	if err != nil {
		return wrap(op, err)
	}
	w.builder.Commit(ctx, root, tree)
	return nil
}
