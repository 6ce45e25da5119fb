// Package schemagen runs the schema build pipeline for one connection:
// resolve the server version, project the fields, render, deploy.
package schemagen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/schema"
	"github.com/kailas-cloud/schemagen/internal/domain/target"
	logpkg "github.com/kailas-cloud/schemagen/internal/logger"
	"github.com/kailas-cloud/schemagen/internal/metrics"
	"github.com/kailas-cloud/schemagen/internal/usecase/deploy"
	"github.com/kailas-cloud/schemagen/internal/usecase/project"
	"github.com/kailas-cloud/schemagen/internal/usecase/resolve"
)

// Pipeline stage names, used as metric labels.
const (
	StageIntrospect = "introspect"
	StageResolve    = "resolve"
	StageFields     = "fields"
	StageProject    = "project"
	StageRender     = "render"
	StageDeploy     = "deploy"
)

// Run outcomes, used as metric labels.
const (
	OutcomeOK            = "ok"
	OutcomeConfiguration = "configuration_error"
	OutcomeSchema        = "schema_error"
	OutcomeIO            = "io_error"
	OutcomeReloadFailed  = "reload_failed"
	OutcomeError         = "error"
)

// Settings are the document-level knobs of the generated schema.
type Settings struct {
	DefaultOperator string
	System          schema.SystemFields
}

// Deps are the collaborators of a Service.
type Deps struct {
	Admin     AdminClient
	Registry  FieldRegistry
	Projector *project.Projector
	Renderer  Renderer
	Deployer  Deployer
}

// Request describes one schema build.
type Request struct {
	Alias    string
	Override string // explicit server version, wins over introspection
	Target   target.Target
}

// Service runs the pipeline. It keeps no state between runs.
type Service struct {
	admin     AdminClient
	registry  FieldRegistry
	projector *project.Projector
	renderer  Renderer
	deployer  Deployer
	settings  Settings
}

// New creates a schema build service.
func New(deps Deps, settings Settings) *Service {
	s := &Service{
		admin:     deps.Admin,
		registry:  deps.Registry,
		projector: deps.Projector,
		renderer:  deps.Renderer,
		deployer:  deps.Deployer,
		settings:  settings,
	}
	if s.projector == nil {
		s.projector = project.New(nil)
	}
	if s.settings.DefaultOperator == "" {
		s.settings.DefaultOperator = schema.DefaultOperator
	}
	if s.settings.System == (schema.SystemFields{}) {
		s.settings.System = schema.DefaultSystemFields()
	}
	s.projector.WithReserved(s.settings.System.Names())
	return s
}

// Run builds the schema for req.Alias and delivers it to req.Target.
// Configuration and schema errors are returned before anything is written.
// Logs go to the logger carried by ctx, tagged with the connection and target.
func (s *Service) Run(ctx context.Context, req Request) (res deploy.Result, err error) {
	defer func() {
		metrics.RunsTotal.WithLabelValues(req.Target.Kind().String(), Outcome(err)).Inc()
	}()

	ctx, log := logpkg.With(ctx, zap.String("connection", req.Alias), zap.Stringer("target", req.Target.Kind()))

	start := time.Now()
	raw, err := s.admin.SystemInfo(ctx)
	observe(StageIntrospect, start)
	if err != nil {
		if ctx.Err() != nil {
			return deploy.Result{}, fmt.Errorf("introspect: %w", ctx.Err())
		}
		log.Warn("Solr introspection failed, continuing without server info", zap.Error(err))
		raw = map[string]any{}
	}

	start = time.Now()
	info, err := resolve.Resolve(raw, req.Override)
	observe(StageResolve, start)
	if err != nil {
		return deploy.Result{}, err
	}
	log.Debug("Resolved server version",
		zap.Stringer("version", info.Version),
		zap.String("tier", string(info.Version.Tier())),
	)

	start = time.Now()
	descs, err := s.registry.Fields(ctx, req.Alias)
	observe(StageFields, start)
	if err != nil {
		return deploy.Result{}, err
	}

	start = time.Now()
	projected, err := s.projector.Project(descs, info.Version)
	observe(StageProject, start)
	if err != nil {
		return deploy.Result{}, err
	}
	metrics.FieldsProjected.WithLabelValues(req.Alias, string(info.Version.Tier())).Set(float64(len(projected.Fields)))

	rc := schema.NewRenderContext(schema.RenderParams{
		Info:            info,
		ConnectionAlias: req.Alias,
		ContentField:    projected.ContentField,
		Fields:          projected.Fields,
		DefaultOperator: s.settings.DefaultOperator,
		System:          s.settings.System,
	})

	start = time.Now()
	doc, err := s.renderer.Render(rc.Tier(), rc)
	observe(StageRender, start)
	if err != nil {
		return deploy.Result{}, err
	}

	start = time.Now()
	res, err = s.deployer.Deploy(ctx, deploy.Request{
		Target:   req.Target,
		Document: doc,
		Info:     info,
		Core:     s.admin.Core(),
	})
	observe(StageDeploy, start)
	if err != nil {
		return res, err
	}

	log.Info("Schema built",
		zap.String("tier", string(rc.Tier())),
		zap.Int("fields", len(projected.Fields)),
		zap.String("content_field", projected.ContentField),
		zap.Bool("reloaded", res.Reloaded),
	)
	return res, nil
}

// Outcome classifies err for metrics and exit codes.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrReloadFailed):
		return OutcomeReloadFailed
	case errors.Is(err, domain.ErrConfiguration):
		return OutcomeConfiguration
	case errors.Is(err, domain.ErrSchema):
		return OutcomeSchema
	case errors.Is(err, domain.ErrIO):
		return OutcomeIO
	default:
		return OutcomeError
	}
}

func observe(stage string, start time.Time) {
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
