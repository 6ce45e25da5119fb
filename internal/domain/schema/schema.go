package schema

import (
	"github.com/kailas-cloud/schemagen/internal/domain/server"
)

// DefaultOperator is the query parser default operator when none is configured.
const DefaultOperator = "AND"

// VersionField is the update log field Solr expects in every schema.
const VersionField = "_version_"

// Field is a projected field in the target server's vocabulary.
type Field struct {
	Name        string
	TypeName    string
	Indexed     bool
	Stored      bool
	Multivalued bool
}

// SystemFields are the bookkeeping fields every schema declares regardless of the registry.
type SystemFields struct {
	ID          string // unique document key
	ContentType string // "app.model" tag of the indexed object
	InternalID  string // primary key of the indexed object
}

// DefaultSystemFields returns the stock system field names.
func DefaultSystemFields() SystemFields {
	return SystemFields{ID: "id", ContentType: "doc_type", InternalID: "doc_id"}
}

// Names lists every field name the schema declares on its own, VersionField included.
// Registry fields must not reuse any of them.
func (s SystemFields) Names() []string {
	return []string{s.ID, s.ContentType, s.InternalID, VersionField}
}

// RenderParams are the inputs of NewRenderContext.
type RenderParams struct {
	Info            server.Info
	ConnectionAlias string
	ContentField    string
	Fields          []Field
	DefaultOperator string
	System          SystemFields
}

// RenderContext is an immutable snapshot consumed once by the renderer.
type RenderContext struct {
	info            server.Info
	alias           string
	contentField    string
	fields          []Field
	defaultOperator string
	system          SystemFields
}

// NewRenderContext snapshots params. The field slice is copied.
func NewRenderContext(p RenderParams) RenderContext {
	fields := make([]Field, len(p.Fields))
	copy(fields, p.Fields)

	op := p.DefaultOperator
	if op == "" {
		op = DefaultOperator
	}
	return RenderContext{
		info:            p.Info,
		alias:           p.ConnectionAlias,
		contentField:    p.ContentField,
		fields:          fields,
		defaultOperator: op,
		system:          p.System,
	}
}

// Version returns the resolved server version.
func (c RenderContext) Version() server.Version { return c.info.Version }

// Tier returns the compatibility tier.
func (c RenderContext) Tier() server.Tier { return c.info.Version.Tier() }

// ConnectionAlias returns the connection the schema was built for.
func (c RenderContext) ConnectionAlias() string { return c.alias }

// ContentField returns the designated full-text field name.
func (c RenderContext) ContentField() string { return c.contentField }

// Fields returns a copy of the projected fields in declaration order.
func (c RenderContext) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// DefaultOperator returns the default query operator.
func (c RenderContext) DefaultOperator() string { return c.defaultOperator }

// ID returns the document key field name.
func (c RenderContext) ID() string { return c.system.ID }

// ContentType returns the content-type tag field name.
func (c RenderContext) ContentType() string { return c.system.ContentType }

// InternalID returns the internal id field name.
func (c RenderContext) InternalID() string { return c.system.InternalID }

// VersionField returns the update log field name.
func (c RenderContext) VersionField() string { return VersionField }
