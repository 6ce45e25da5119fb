package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/schemagen/internal/config"
	dbRedis "github.com/kailas-cloud/schemagen/internal/db/redis"
	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/target"
	logpkg "github.com/kailas-cloud/schemagen/internal/logger"
	"github.com/kailas-cloud/schemagen/internal/repository/registry"
	"github.com/kailas-cloud/schemagen/internal/transport/solr"
	"github.com/kailas-cloud/schemagen/internal/usecase/deploy"
	"github.com/kailas-cloud/schemagen/internal/usecase/health"
	"github.com/kailas-cloud/schemagen/internal/usecase/project"
	"github.com/kailas-cloud/schemagen/internal/usecase/render"
	"github.com/kailas-cloud/schemagen/internal/usecase/schemagen"
)

type buildSchemaOptions struct {
	filename    string
	using       string
	solrVersion string
	commitLocal bool
	configPath  string
}

func (o *buildSchemaOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.filename, "filename", "f", "",
		"write the schema to this file instead of stdout")
	fs.StringVarP(&o.using, "using", "u", "default",
		"connection alias to generate the schema for")
	fs.StringVarP(&o.solrVersion, "solr-version", "s", "",
		"target Solr version (e.g. 8.11.2); overrides the version reported by the server")
	fs.BoolVarP(&o.commitLocal, "commit-local", "c", false,
		"write schema.xml into the local core's conf directory and reload the core")
	fs.StringVar(&o.configPath, "config", "",
		"path to the config file (default: config/$ENV.yaml)")
}

func (a *App) newBuildSchemaCmd() *cobra.Command {
	opts := &buildSchemaOptions{}
	cmd := &cobra.Command{
		Use:   "build-schema",
		Short: "Generate a Solr schema.xml for a connection",
		Long: `Generate a Solr schema.xml for the fields registered under a connection.

By default the schema is printed to stdout. Use --filename to write it to a file,
or --commit-local to write it into the core directory of a Solr server running on
this host and reload the core. --filename and --commit-local are mutually exclusive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuildSchema(cmd.Context(), opts)
		},
	}
	opts.bind(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("filename", "commit-local")
	return cmd
}

func (a *App) runBuildSchema(ctx context.Context, opts *buildSchemaOptions) error {
	tgt, err := target.FromFlags(opts.filename, opts.commitLocal)
	if err != nil {
		return err
	}

	cfg, err := a.loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := a.newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	conn, ok := cfg.Connections[opts.using]
	if !ok {
		return fmt.Errorf("%w: connection %q is not configured (known: %v)",
			domain.ErrConfiguration, opts.using, cfg.Aliases())
	}

	client, err := solr.NewClient(solr.Config{
		URL:     conn.URL,
		Timeout: seconds(conn.TimeoutSec),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	reg, _, closeReg, err := a.buildRegistry(ctx, opts.using, conn.Registry, true)
	if err != nil {
		return err
	}
	defer closeReg()

	renderer, err := render.New()
	if err != nil {
		return err
	}

	svc := schemagen.New(schemagen.Deps{
		Admin:     client,
		Registry:  reg,
		Projector: project.New(logger),
		Renderer:  renderer,
		Deployer: deploy.New(deploy.Config{
			Stdout:   a.stdout(),
			Stderr:   a.stderr(),
			Reloader: client,
			Hosts:    a.Hosts,
		}),
	}, schemagen.Settings{
		DefaultOperator: cfg.Schema.DefaultOperator,
		System:          cfg.SystemFields(),
	})

	_, err = svc.Run(ctx, schemagen.Request{
		Alias:    opts.using,
		Override: opts.solrVersion,
		Target:   tgt,
	})
	a.flushMetrics(cfg.Metrics.Textfile, logger)
	return err
}

// buildRegistry binds alias to the configured field source. The returned pinger
// checks the backing store; the returned func releases any connection it holds.
func (a *App) buildRegistry(
	ctx context.Context, alias string, rc config.RegistryConfig, waitReady bool,
) (*registry.Registry, health.Pinger, func(), error) {
	logger := logpkg.FromContext(ctx)
	reg := registry.New()
	switch rc.Source {
	case config.SourceRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    rc.RedisAddrs,
			Username: rc.RedisUsername,
			Password: rc.RedisPassword,
			DB:       rc.RedisDB,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: field registry store: %w", domain.ErrConfiguration, err)
		}
		if waitReady {
			if err := store.WaitForReady(ctx, seconds(rc.ReadinessTimeout)); err != nil {
				store.Close()
				return nil, nil, nil, fmt.Errorf("field registry store not ready: %w: %w", domain.ErrIO, err)
			}
		}
		key := rc.RedisKey
		if key == "" {
			key = registry.DefaultKeyPrefix + alias
		}
		logger.Debug("Using Redis field registry", zap.Strings("addrs", rc.RedisAddrs), zap.String("key", key))
		reg.Register(alias, registry.NewStoreSource(store, key))
		return reg, store, store.Close, nil
	default:
		logger.Debug("Using file field registry", zap.String("path", rc.Path))
		src := registry.FileSource{Path: rc.Path}
		reg.Register(alias, src)
		return reg, src, func() {}, nil
	}
}
