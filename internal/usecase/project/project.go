// Package project maps logical field descriptors to the target server's schema fields.
package project

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/field"
	"github.com/kailas-cloud/schemagen/internal/domain/schema"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
)

// Result is the projector output.
type Result struct {
	ContentField string
	Fields       []schema.Field
}

// Projector turns descriptors into schema fields for one server tier.
type Projector struct {
	logger   *zap.Logger
	reserved map[string]struct{}
}

// New creates a projector that rejects the stock system field names.
// A nil logger discards warnings.
func New(logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Projector{logger: logger}
	return p.WithReserved(schema.DefaultSystemFields().Names())
}

// WithReserved replaces the set of names registry fields may not use.
func (p *Projector) WithReserved(names []string) *Projector {
	p.reserved = make(map[string]struct{}, len(names))
	for _, n := range names {
		if n != "" {
			p.reserved[n] = struct{}{}
		}
	}
	return p
}

// Project maps descs in order. Exactly one content field is expected:
// none fails with domain.ErrSchema, extras after the first are logged and kept as ordinary fields.
// A descriptor named like a reserved system field fails with domain.ErrSchema.
func (p *Projector) Project(descs []field.Descriptor, v server.Version) (Result, error) {
	tier := v.Tier()
	res := Result{Fields: make([]schema.Field, 0, len(descs))}

	for _, d := range descs {
		if _, ok := p.reserved[d.Name]; ok {
			return Result{}, fmt.Errorf("%w: field %q collides with system field", domain.ErrSchema, d.Name)
		}

		typeName, err := TypeName(d.Kind, tier)
		if err != nil {
			return Result{}, fmt.Errorf("project %q: %w", d.Name, err)
		}

		if d.Content {
			if res.ContentField == "" {
				res.ContentField = d.Name
			} else {
				p.logger.Warn("Multiple content fields designated, using the first",
					zap.String("content_field", res.ContentField),
					zap.String("ignored", d.Name),
				)
			}
		}

		res.Fields = append(res.Fields, schema.Field{
			Name:        d.Name,
			TypeName:    typeName,
			Indexed:     d.Indexed,
			Stored:      d.Stored,
			Multivalued: d.Multivalued,
		})
	}

	if res.ContentField == "" {
		return Result{}, fmt.Errorf("%w: no content field designated", domain.ErrSchema)
	}
	return res, nil
}
