package schema

import (
	"testing"

	"github.com/kailas-cloud/schemagen/internal/domain/server"
)

func TestNewRenderContext_CopiesFields(t *testing.T) {
	fields := []Field{{Name: "text", TypeName: "text_en"}}
	ctx := NewRenderContext(RenderParams{
		Info:   server.Info{Version: server.Version{Major: 7}},
		Fields: fields,
		System: DefaultSystemFields(),
	})

	fields[0].Name = "mutated"
	if got := ctx.Fields()[0].Name; got != "text" {
		t.Errorf("context must not alias caller slice, got %q", got)
	}

	out := ctx.Fields()
	out[0].Name = "mutated"
	if got := ctx.Fields()[0].Name; got != "text" {
		t.Errorf("Fields() must return a copy, got %q", got)
	}
}

func TestNewRenderContext_Defaults(t *testing.T) {
	ctx := NewRenderContext(RenderParams{
		Info:   server.Info{Version: server.Version{Major: 8, Minor: 2}},
		System: DefaultSystemFields(),
	})
	if ctx.DefaultOperator() != DefaultOperator {
		t.Errorf("expected default operator %q, got %q", DefaultOperator, ctx.DefaultOperator())
	}
	if ctx.Tier() != server.Solr8 {
		t.Errorf("expected solr_8, got %s", ctx.Tier())
	}
	if ctx.ID() != "id" || ctx.ContentType() != "doc_type" || ctx.InternalID() != "doc_id" {
		t.Errorf("unexpected system fields: %s %s %s", ctx.ID(), ctx.ContentType(), ctx.InternalID())
	}
}
