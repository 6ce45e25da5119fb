// Package registry enumerates the logical index fields of each connection alias.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kailas-cloud/schemagen/internal/db"
	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/field"
)

// DefaultKeyPrefix prefixes Redis keys holding field lists; the alias is appended.
const DefaultKeyPrefix = "schemagen:fields:"

// Source loads the field list of one connection.
type Source interface {
	Load(ctx context.Context) ([]field.Descriptor, error)
}

// Registry maps connection aliases to field sources.
type Registry struct {
	sources map[string]Source
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register binds alias to src, replacing any previous binding.
func (r *Registry) Register(alias string, src Source) {
	r.sources[alias] = src
}

// Aliases returns the registered aliases, sorted.
func (r *Registry) Aliases() []string {
	out := make([]string, 0, len(r.sources))
	for a := range r.sources {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Fields returns the ordered field descriptors of alias.
func (r *Registry) Fields(ctx context.Context, alias string) ([]field.Descriptor, error) {
	src, ok := r.sources[alias]
	if !ok {
		return nil, fmt.Errorf("%w: no field registry for connection %q", domain.ErrConfiguration, alias)
	}
	descs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fields for %q: %w", alias, err)
	}
	return descs, nil
}

// FileSource reads a YAML or JSON field list from disk.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) ([]field.Descriptor, error) {
	data, err := os.ReadFile(filepath.Clean(s.Path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", s.Path, domain.ErrIO, err)
	}
	return Decode(data)
}

// Ping checks that the field list file exists and is a regular file.
func (s FileSource) Ping(_ context.Context) error {
	fi, err := os.Stat(filepath.Clean(s.Path))
	if err != nil {
		return fmt.Errorf("stat %s: %w: %w", s.Path, domain.ErrIO, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", domain.ErrConfiguration, s.Path)
	}
	return nil
}

// StoreSource reads the field list from a key in a shared store.
type StoreSource struct {
	store db.KVReader
	key   string
}

// NewStoreSource creates a source reading key from store.
func NewStoreSource(store db.KVReader, key string) *StoreSource {
	return &StoreSource{store: store, key: key}
}

// Load implements Source.
func (s *StoreSource) Load(ctx context.Context) ([]field.Descriptor, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: field list key %q not found", domain.ErrConfiguration, s.key)
		}
		return nil, fmt.Errorf("get %s: %w: %w", s.key, domain.ErrIO, err)
	}
	return Decode(data)
}
