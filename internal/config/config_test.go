package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Connections: map[string]ConnectionConfig{
			"default": {
				URL:      "http://localhost:8983/solr/books",
				Registry: RegistryConfig{Source: SourceFile, Path: "fields.yaml"},
			},
		},
		Schema: SchemaConfig{DefaultOperator: "AND"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "no connections",
			mutate: func(c *Config) { c.Connections = nil },
			want:   "at least one connection is required",
		},
		{
			name: "missing url",
			mutate: func(c *Config) {
				conn := c.Connections["default"]
				conn.URL = ""
				c.Connections["default"] = conn
			},
			want: "connections.default.url is required",
		},
		{
			name: "file without path",
			mutate: func(c *Config) {
				conn := c.Connections["default"]
				conn.Registry.Path = ""
				c.Connections["default"] = conn
			},
			want: "connections.default.registry.path is required",
		},
		{
			name: "redis without addrs",
			mutate: func(c *Config) {
				conn := c.Connections["default"]
				conn.Registry = RegistryConfig{Source: SourceRedis}
				c.Connections["default"] = conn
			},
			want: "connections.default.registry.redis_addrs is required",
		},
		{
			name: "unknown source",
			mutate: func(c *Config) {
				conn := c.Connections["default"]
				conn.Registry.Source = "etcd"
				c.Connections["default"] = conn
			},
			want: `registry.source must be "file" or "redis", got "etcd"`,
		},
		{
			name:   "bad operator",
			mutate: func(c *Config) { c.Schema.DefaultOperator = "XOR" },
			want:   `schema.default_operator must be "AND" or "OR", got "XOR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		Connections: map[string]ConnectionConfig{
			"default": {URL: "http://localhost:8983/solr/books"},
			"shared":  {URL: "http://localhost:8983/solr/news", Registry: RegistryConfig{Source: SourceRedis}},
		},
	}
	cfg.ApplyDefaults()

	def := cfg.Connections["default"]
	if def.TimeoutSec != 10 {
		t.Errorf("expected TimeoutSec=10, got %d", def.TimeoutSec)
	}
	if def.Registry.Source != SourceFile {
		t.Errorf("expected source=file, got %q", def.Registry.Source)
	}
	if def.Registry.ReadinessTimeout != 5 {
		t.Errorf("expected ReadinessTimeout=5, got %d", def.Registry.ReadinessTimeout)
	}
	if got := cfg.Connections["shared"].Registry.RedisKey; got != "schemagen:fields:shared" {
		t.Errorf("expected RedisKey='schemagen:fields:shared', got %q", got)
	}
	if cfg.Schema.DefaultOperator != "AND" {
		t.Errorf("expected DefaultOperator=AND, got %q", cfg.Schema.DefaultOperator)
	}
	sys := cfg.SystemFields()
	if sys.ID != "id" || sys.ContentType != "doc_type" || sys.InternalID != "doc_id" {
		t.Errorf("unexpected system fields %+v", sys)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Connections: map[string]ConnectionConfig{
			"default": {TimeoutSec: 3, Registry: RegistryConfig{Source: SourceRedis, RedisKey: "custom"}},
		},
		Schema: SchemaConfig{DefaultOperator: "or", IDField: "uid"},
	}
	cfg.ApplyDefaults()

	conn := cfg.Connections["default"]
	if conn.TimeoutSec != 3 {
		t.Errorf("expected TimeoutSec=3, got %d", conn.TimeoutSec)
	}
	if conn.Registry.RedisKey != "custom" {
		t.Errorf("expected RedisKey='custom', got %q", conn.Registry.RedisKey)
	}
	if cfg.Schema.DefaultOperator != "OR" {
		t.Errorf("expected DefaultOperator=OR, got %q", cfg.Schema.DefaultOperator)
	}
	if cfg.Schema.IDField != "uid" {
		t.Errorf("expected IDField=uid, got %q", cfg.Schema.IDField)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SOLR_URL", "http://solr.internal:8983/solr/books")

	cfg, err := Parse([]byte(`
connections:
  default:
    url: ${SOLR_URL}
    registry:
      path: ${FIELDS_PATH:-config/fields.yaml}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conn := cfg.Connections["default"]
	if conn.URL != "http://solr.internal:8983/solr/books" {
		t.Errorf("unexpected url %q", conn.URL)
	}
	if conn.Registry.Path != "config/fields.yaml" {
		t.Errorf("unexpected path %q", conn.Registry.Path)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("connections: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("connections: {}\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemagen.yaml")
	body := "connections:\n  default:\n    url: http://localhost:8983/solr/books\n    registry:\n      path: fields.yaml\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Aliases(); len(got) != 1 || got[0] != "default" {
		t.Errorf("unexpected aliases %v", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cfg.Connections["default"]; !ok {
		t.Error("expected a default connection in config/local.yaml")
	}
}
