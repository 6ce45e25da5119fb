package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/schemagen/internal/domain"
	logpkg "github.com/kailas-cloud/schemagen/internal/logger"
	"github.com/kailas-cloud/schemagen/internal/transport/solr"
	"github.com/kailas-cloud/schemagen/internal/usecase/health"
)

// failedPinger reports a dependency that could not even be constructed.
type failedPinger struct{ err error }

func (p failedPinger) Ping(context.Context) error { return p.err }

func (a *App) newCheckCmd() *cobra.Command {
	var using, configPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the Solr core and field registry of a connection are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd.Context(), cmd.OutOrStdout(), using, configPath)
		},
	}
	cmd.Flags().StringVarP(&using, "using", "u", "default", "connection alias to check")
	cmd.Flags().StringVar(&configPath, "config", "", "path to the config file (default: config/$ENV.yaml)")
	return cmd
}

func (a *App) runCheck(ctx context.Context, out io.Writer, alias, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := a.newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	conn, ok := cfg.Connections[alias]
	if !ok {
		return fmt.Errorf("%w: connection %q is not configured (known: %v)",
			domain.ErrConfiguration, alias, cfg.Aliases())
	}

	client, err := solr.NewClient(solr.Config{
		URL:     conn.URL,
		Timeout: seconds(conn.TimeoutSec),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	_, regPinger, closeReg, err := a.buildRegistry(ctx, alias, conn.Registry, false)
	if err != nil {
		regPinger = failedPinger{err: err}
	} else {
		defer closeReg()
	}

	report := health.New(client, regPinger, logger).Check(ctx)

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%s: %s\n", name, report.Checks[name]); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIO, err)
		}
	}
	if _, err := fmt.Fprintf(out, "status: %s\n", report.Status); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}

	if report.Status != health.Healthy {
		return fmt.Errorf("%w: connection %q is %s", domain.ErrIO, alias, report.Status)
	}
	return nil
}
