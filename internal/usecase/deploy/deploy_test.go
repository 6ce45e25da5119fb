package deploy

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
	"github.com/kailas-cloud/schemagen/internal/domain/target"
	logpkg "github.com/kailas-cloud/schemagen/internal/logger"
)

const doc = "<schema/>\n"

// --- Mocks ---

type mockReloader struct {
	cores []string
	err   error
}

func (m *mockReloader) Reload(_ context.Context, core string) error {
	m.cores = append(m.cores, core)
	return m.err
}

type fixedHost struct {
	name string
	err  error
}

func (h fixedHost) FQDN() (string, error) { return h.name, h.err }

func coreDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

// --- Tests ---

func TestDeploy_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := New(Config{Stdout: &stdout, Stderr: &stderr})

	res, err := e.Deploy(context.Background(), Request{Target: target.NewStdout(), Document: doc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != doc {
		t.Errorf("stdout = %q, want %q", stdout.String(), doc)
	}
	if !strings.Contains(stderr.String(), "Save the following output to 'schema.xml'") {
		t.Errorf("missing banner on stderr: %q", stderr.String())
	}
	if res.Path != "" || res.Reloaded {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestDeploy_FilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.xml")
	if err := os.WriteFile(path, []byte("previous content that is longer than the new one"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var stdout bytes.Buffer
	e := New(Config{Stdout: &stdout, Stderr: &bytes.Buffer{}})
	res, err := e.Deploy(context.Background(), Request{Target: target.NewFilePath(path), Document: doc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != doc {
		t.Errorf("file = %q, want %q (must truncate)", got, doc)
	}
	if res.Path != path {
		t.Errorf("unexpected result path %q", res.Path)
	}
	if stdout.Len() != 0 {
		t.Error("file target must not print to stdout")
	}
}

func TestDeploy_LogsThroughContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logpkg.ContextWithLogger(context.Background(), zap.New(core).With(zap.String("connection", "books")))
	path := filepath.Join(t.TempDir(), "schema.xml")

	e := New(Config{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	if _, err := e.Deploy(ctx, Request{Target: target.NewFilePath(path), Document: doc}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written := logs.FilterMessage("Schema written")
	if written.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", written.Len())
	}
	fields := written.All()[0].ContextMap()
	if fields["path"] != path || fields["connection"] != "books" {
		t.Errorf("unexpected entry fields: %v", fields)
	}
}

func TestDeploy_FilePath_IOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "schema.xml")
	e := New(Config{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	_, err := e.Deploy(context.Background(), Request{Target: target.NewFilePath(path), Document: doc})
	if !errors.Is(err, domain.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestDeploy_CommitLocal(t *testing.T) {
	dir := coreDir(t)
	reloader := &mockReloader{}
	e := New(Config{Reloader: reloader, Hosts: fixedHost{name: "solr.example.com"}})

	res, err := e.Deploy(context.Background(), Request{
		Target:   target.NewCommitLocal(),
		Document: doc,
		Info:     server.Info{CoreDirectory: dir, Host: "solr.example.com"},
		Core:     "books",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(dir, "conf", "schema.xml")
	if res.Path != want || !res.Reloaded {
		t.Errorf("unexpected result %+v", res)
	}
	got, err := os.ReadFile(want)
	if err != nil || string(got) != doc {
		t.Errorf("schema file = %q (%v)", got, err)
	}
	if len(reloader.cores) != 1 || reloader.cores[0] != "books" {
		t.Errorf("expected reload of books, got %v", reloader.cores)
	}
}

func TestDeploy_CommitLocal_HostMatchIgnoresCaseAndRootDot(t *testing.T) {
	dir := coreDir(t)
	e := New(Config{Reloader: &mockReloader{}, Hosts: fixedHost{name: "Solr.Example.com."}})

	_, err := e.Deploy(context.Background(), Request{
		Target: target.NewCommitLocal(), Document: doc,
		Info: server.Info{CoreDirectory: dir, Host: "solr.example.com"},
		Core: "books",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeploy_CommitLocal_HostMismatchWritesNothing(t *testing.T) {
	dir := coreDir(t)
	reloader := &mockReloader{}
	e := New(Config{Reloader: reloader, Hosts: fixedHost{name: "laptop.example.com"}})

	_, err := e.Deploy(context.Background(), Request{
		Target: target.NewCommitLocal(), Document: doc,
		Info: server.Info{CoreDirectory: dir, Host: "solr.example.com"},
		Core: "books",
	})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "conf"))
	if len(entries) != 0 {
		t.Errorf("host mismatch must not touch the filesystem, found %d entries", len(entries))
	}
	if len(reloader.cores) != 0 {
		t.Error("host mismatch must not reload")
	}
}

func TestDeploy_CommitLocal_MissingCoreInfo(t *testing.T) {
	tests := []struct {
		name string
		info server.Info
		core string
	}{
		{"no directory", server.Info{Host: "h.example.com"}, "books"},
		{"no host", server.Info{CoreDirectory: "/var/solr/books"}, "books"},
		{"no core name", server.Info{CoreDirectory: "/var/solr/books", Host: "h.example.com"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{Reloader: &mockReloader{}, Hosts: fixedHost{name: "h.example.com"}})
			_, err := e.Deploy(context.Background(), Request{
				Target: target.NewCommitLocal(), Document: doc, Info: tt.info, Core: tt.core,
			})
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestDeploy_CommitLocal_HostResolverError(t *testing.T) {
	dir := coreDir(t)
	e := New(Config{Reloader: &mockReloader{}, Hosts: fixedHost{err: errors.New("no hostname")}})

	_, err := e.Deploy(context.Background(), Request{
		Target: target.NewCommitLocal(), Document: doc,
		Info: server.Info{CoreDirectory: dir, Host: "solr.example.com"},
		Core: "books",
	})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestDeploy_CommitLocal_ReloadFailure(t *testing.T) {
	dir := coreDir(t)
	cause := errors.New("connection refused")
	e := New(Config{Reloader: &mockReloader{err: cause}, Hosts: fixedHost{name: "solr.example.com"}})

	res, err := e.Deploy(context.Background(), Request{
		Target: target.NewCommitLocal(), Document: doc,
		Info: server.Info{CoreDirectory: dir, Host: "solr.example.com"},
		Core: "books",
	})
	if !errors.Is(err, domain.ErrReloadFailed) {
		t.Fatalf("expected ErrReloadFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
	if errors.Is(err, domain.ErrIO) {
		t.Error("reload failure must not look like a write failure")
	}
	var re *ReloadError
	if !errors.As(err, &re) || re.Core != "books" {
		t.Errorf("expected ReloadError for books, got %v", err)
	}
	if res.Reloaded || res.Path == "" {
		t.Errorf("unexpected result %+v", res)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "conf", "schema.xml")); string(got) != doc {
		t.Error("schema must stay written after reload failure")
	}
}

func TestWriteFile_Error(t *testing.T) {
	err := WriteFile(t.TempDir(), doc)
	if !errors.Is(err, domain.ErrIO) {
		t.Errorf("writing to a directory should be ErrIO, got %v", err)
	}
}
