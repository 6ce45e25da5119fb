package schemagen

import (
	"context"

	"github.com/kailas-cloud/schemagen/internal/domain/field"
	"github.com/kailas-cloud/schemagen/internal/domain/schema"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
	"github.com/kailas-cloud/schemagen/internal/usecase/deploy"
)

// AdminClient introspects the target Solr core.
type AdminClient interface {
	SystemInfo(ctx context.Context) (map[string]any, error)
	Core() string
}

// FieldRegistry enumerates the logical fields of a connection.
type FieldRegistry interface {
	Fields(ctx context.Context, alias string) ([]field.Descriptor, error)
}

// Renderer turns a render context into a schema document.
type Renderer interface {
	Render(key server.Tier, c schema.RenderContext) (string, error)
}

// Deployer delivers the rendered document.
type Deployer interface {
	Deploy(ctx context.Context, req deploy.Request) (deploy.Result, error)
}
