// Package deploy delivers a rendered schema to stdout, a file, or the live core's conf directory.
package deploy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
	"github.com/kailas-cloud/schemagen/internal/domain/target"
	logpkg "github.com/kailas-cloud/schemagen/internal/logger"
)

// SchemaFile is the schema file name inside a core's conf directory.
const SchemaFile = "schema.xml"

const banner = "\n\n\n" +
	"Save the following output to 'schema.xml' and place it in your Solr configuration directory.\n" +
	"--------------------------------------------------------------------------------------------\n" +
	"\n"

// ReloadError means the schema file was written but the core reload failed.
// The core keeps serving the previous schema until it is reloaded.
type ReloadError struct {
	Core string
	Path string
	Err  error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("schema written to %s but reload of core %q failed: %v", e.Path, e.Core, e.Err)
}

// Unwrap matches both domain.ErrReloadFailed and the transport cause.
func (e *ReloadError) Unwrap() []error { return []error{domain.ErrReloadFailed, e.Err} }

// Request is one delivery.
type Request struct {
	Target   target.Target
	Document string
	Info     server.Info
	Core     string // core name parsed from the connection URL
}

// Result describes what was delivered.
type Result struct {
	Path     string // empty for stdout
	Reloaded bool
}

// Config wires the executor's collaborators.
type Config struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Reloader Reloader
	Hosts    HostResolver
}

// Executor performs exactly one delivery per call.
type Executor struct {
	stdout   io.Writer
	stderr   io.Writer
	reloader Reloader
	hosts    HostResolver
}

// New creates an executor. Nil writers default to os.Stdout/os.Stderr and a nil host resolver to SystemHost.
func New(cfg Config) *Executor {
	e := &Executor{
		stdout:   cfg.Stdout,
		stderr:   cfg.Stderr,
		reloader: cfg.Reloader,
		hosts:    cfg.Hosts,
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	if e.hosts == nil {
		e.hosts = SystemHost{}
	}
	return e
}

// Deploy delivers req.Document to req.Target, logging through the logger carried by ctx.
func (e *Executor) Deploy(ctx context.Context, req Request) (Result, error) {
	switch req.Target.Kind() {
	case target.Stdout:
		return Result{}, e.printStdout(req.Document)
	case target.FilePath:
		if req.Target.Path() == "" {
			return Result{}, fmt.Errorf("%w: empty output path", domain.ErrConfiguration)
		}
		if err := WriteFile(req.Target.Path(), req.Document); err != nil {
			return Result{}, err
		}
		logpkg.FromContext(ctx).Info("Schema written", zap.String("path", req.Target.Path()))
		return Result{Path: req.Target.Path()}, nil
	case target.CommitLocal:
		return e.commitLocal(ctx, req)
	default:
		return Result{}, fmt.Errorf("%w: unknown deployment target %s", domain.ErrConfiguration, req.Target.Kind())
	}
}

func (e *Executor) printStdout(doc string) error {
	if _, err := io.WriteString(e.stderr, banner); err != nil {
		return fmt.Errorf("write banner: %w: %w", domain.ErrIO, err)
	}
	if _, err := io.WriteString(e.stdout, doc); err != nil {
		return fmt.Errorf("write schema to stdout: %w: %w", domain.ErrIO, err)
	}
	return nil
}

// commitLocal writes into the core's conf directory and reloads the core.
// The server must report the same host as this machine; otherwise nothing is written.
func (e *Executor) commitLocal(ctx context.Context, req Request) (Result, error) {
	dir, host := req.Info.CoreDirectory, req.Info.Host
	if dir == "" || host == "" {
		return Result{}, fmt.Errorf("%w: core directory undeterminable", domain.ErrConfiguration)
	}
	if req.Core == "" {
		return Result{}, fmt.Errorf("%w: core name undeterminable from connection url", domain.ErrConfiguration)
	}
	if e.reloader == nil {
		return Result{}, fmt.Errorf("%w: no admin client for reload", domain.ErrConfiguration)
	}

	local, err := e.hosts.FQDN()
	if err != nil {
		return Result{}, fmt.Errorf("%w: resolve local hostname: %w", domain.ErrConfiguration, err)
	}
	if !sameHost(host, local) {
		return Result{}, fmt.Errorf("%w: Solr host is %q while local hostname is %q, cannot commit locally",
			domain.ErrConfiguration, host, local)
	}

	log := logpkg.FromContext(ctx).With(zap.String("core", req.Core))
	path := filepath.Join(dir, "conf", SchemaFile)
	if err := WriteFile(path, req.Document); err != nil {
		return Result{}, err
	}
	log.Info("Schema committed to core", zap.String("path", path))

	if err := e.reloader.Reload(ctx, req.Core); err != nil {
		return Result{Path: path}, &ReloadError{Core: req.Core, Path: path, Err: err}
	}
	log.Info("Core reloaded")
	return Result{Path: path, Reloaded: true}, nil
}

// WriteFile truncates or creates path and writes doc. The file is closed on every path.
func WriteFile(path, doc string) (err error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", path, domain.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w: %w", path, domain.ErrIO, cerr)
		}
	}()

	if _, err := io.WriteString(f, doc); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, domain.ErrIO, err)
	}
	return nil
}
