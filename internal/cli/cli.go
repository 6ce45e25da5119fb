// Package cli wires configuration, collaborators and the schema build pipeline
// behind the schemagen command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/schemagen/internal/config"
	"github.com/kailas-cloud/schemagen/internal/domain"
	logpkg "github.com/kailas-cloud/schemagen/internal/logger"
	"github.com/kailas-cloud/schemagen/internal/metrics"
	"github.com/kailas-cloud/schemagen/internal/usecase/deploy"
	"github.com/kailas-cloud/schemagen/internal/version"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitReloadFailed = 3 // schema written, core reload failed
)

// App carries the process-level dependencies of the command tree.
// Zero values fall back to the real process environment.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    string

	// Hooks for tests.
	Hosts    deploy.HostResolver
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}
	return a.Stderr
}

func (a *App) env() string {
	if a.Env == "" {
		return config.GetEnv()
	}
	return a.Env
}

// NewRootCmd builds the schemagen command tree.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemagen",
		Short: "schemagen - Solr schema generator",
		Long: `schemagen generates a Solr schema.xml from the logical field registry of a
connection, tailored to the version of the running Solr server, and optionally
commits it into the local core followed by a core reload.

Configuration is read from config/<ENV>.yaml (ENV defaults to "local") or --config.
Variables from a .env file in the working directory are loaded first.
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	cmd.SetOut(a.stdout())
	cmd.SetErr(a.stderr())

	cmd.AddCommand(a.newBuildSchemaCmd(), a.newCheckCmd(), a.newVersionCmd())
	return cmd
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "schemagen", version.String())
			return err
		},
	}
}

// loadConfig reads the explicit config path when given, the ENV config otherwise.
func (a *App) loadConfig(path string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(a.env())
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return cfg, nil
}

func (a *App) newLogger(level string) (*zap.Logger, error) {
	if a.Logger != nil {
		return a.Logger, nil
	}
	l, err := logpkg.NewLogger(a.env(), level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return l, nil
}

// flushMetrics writes the run metrics to the textfile collector path, if configured.
func (a *App) flushMetrics(path string, logger *zap.Logger) {
	if path == "" {
		return
	}
	reg := a.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := metrics.Register(reg); err != nil {
		logger.Warn("Failed to register metrics", zap.Error(err))
		return
	}
	if err := metrics.WriteTextfile(path, reg); err != nil {
		logger.Warn("Failed to write metrics textfile", zap.Error(err))
	}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrReloadFailed):
		return ExitReloadFailed
	default:
		return ExitError
	}
}

// Execute runs the command tree with args and returns the exit status.
func Execute(ctx context.Context, args []string) int {
	app := &App{}
	return app.Execute(ctx, args)
}

// Execute runs the command tree with args and returns the exit status.
// Errors are printed to stderr.
func (a *App) Execute(ctx context.Context, args []string) int {
	cmd := a.NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(a.stderr(), "Error:", err)
	}
	return ExitCode(err)
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
