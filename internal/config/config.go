package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/schemagen/internal/domain/schema"
)

// Registry source kinds.
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// Config holds the schemagen configuration.
type Config struct {
	Connections map[string]ConnectionConfig `yaml:"connections"`
	Schema      SchemaConfig                `yaml:"schema"`
	Metrics     MetricsConfig               `yaml:"metrics"`
	Logging     LoggingConfig               `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// ConnectionConfig describes one Solr connection alias.
type ConnectionConfig struct {
	URL        string         `yaml:"url"` // e.g. http://localhost:8983/solr/books
	TimeoutSec int            `yaml:"timeout_sec"`
	Registry   RegistryConfig `yaml:"registry"`
}

// RegistryConfig tells where the field list of a connection lives.
type RegistryConfig struct {
	Source        string   `yaml:"source"` // file, redis (default: file)
	Path          string   `yaml:"path"`
	RedisAddrs    []string `yaml:"redis_addrs"`
	RedisUsername string   `yaml:"redis_username"`
	RedisPassword string   `yaml:"redis_password"`
	RedisDB       int      `yaml:"redis_db"`
	RedisKey      string   `yaml:"redis_key"` // default: schemagen:fields:<alias>

	ReadinessTimeout int `yaml:"readiness_timeout_sec"`
}

// SchemaConfig holds document-level settings of the generated schema.
type SchemaConfig struct {
	DefaultOperator  string `yaml:"default_operator"` // AND, OR
	IDField          string `yaml:"id_field"`
	ContentTypeField string `yaml:"content_type_field"`
	InternalIDField  string `yaml:"internal_id_field"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node-exporter textfile path, empty disables
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes raw YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// Aliases returns the configured connection aliases, sorted.
func (c *Config) Aliases() []string {
	out := make([]string, 0, len(c.Connections))
	for a := range c.Connections {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	for alias, conn := range c.Connections {
		if conn.TimeoutSec <= 0 {
			conn.TimeoutSec = 10
		}
		if conn.Registry.Source == "" {
			conn.Registry.Source = SourceFile
		}
		if conn.Registry.Source == SourceRedis && conn.Registry.RedisKey == "" {
			conn.Registry.RedisKey = "schemagen:fields:" + alias
		}
		if conn.Registry.ReadinessTimeout <= 0 {
			conn.Registry.ReadinessTimeout = 5
		}
		c.Connections[alias] = conn
	}

	sys := schema.DefaultSystemFields()
	if c.Schema.DefaultOperator == "" {
		c.Schema.DefaultOperator = schema.DefaultOperator
	}
	c.Schema.DefaultOperator = strings.ToUpper(c.Schema.DefaultOperator)
	if c.Schema.IDField == "" {
		c.Schema.IDField = sys.ID
	}
	if c.Schema.ContentTypeField == "" {
		c.Schema.ContentTypeField = sys.ContentType
	}
	if c.Schema.InternalIDField == "" {
		c.Schema.InternalIDField = sys.InternalID
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if len(c.Connections) == 0 {
		return fmt.Errorf("connections: at least one connection is required")
	}
	for _, alias := range c.Aliases() {
		conn := c.Connections[alias]
		if conn.URL == "" {
			return fmt.Errorf("connections.%s.url is required", alias)
		}
		switch conn.Registry.Source {
		case SourceFile:
			if conn.Registry.Path == "" {
				return fmt.Errorf("connections.%s.registry.path is required for source %q", alias, SourceFile)
			}
		case SourceRedis:
			if len(conn.Registry.RedisAddrs) == 0 {
				return fmt.Errorf("connections.%s.registry.redis_addrs is required for source %q", alias, SourceRedis)
			}
		default:
			return fmt.Errorf(
				"connections.%s.registry.source must be %q or %q, got %q",
				alias, SourceFile, SourceRedis, conn.Registry.Source,
			)
		}
	}
	switch c.Schema.DefaultOperator {
	case "AND", "OR":
		// ok
	default:
		return fmt.Errorf("schema.default_operator must be \"AND\" or \"OR\", got %q", c.Schema.DefaultOperator)
	}
	return nil
}

// SystemFields returns the configured system field names.
func (c *Config) SystemFields() schema.SystemFields {
	return schema.SystemFields{
		ID:          c.Schema.IDField,
		ContentType: c.Schema.ContentTypeField,
		InternalID:  c.Schema.InternalIDField,
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
