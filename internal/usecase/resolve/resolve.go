// Package resolve determines the target server's version and compatibility tier.
package resolve

import (
	"fmt"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
)

// Resolve builds server.Info from raw system info and an optional explicit version.
// A non-empty override replaces the introspected version before parsing.
// Returns domain.ErrConfiguration if no usable version is available.
func Resolve(raw map[string]any, override string) (server.Info, error) {
	if override != "" {
		raw = server.WithSpecVersion(raw, override)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	v, ok := lookup(raw).Version()
	if !ok {
		return server.Info{}, fmt.Errorf(
			"%w: version undeterminable, supply explicit override (--solr-version)", domain.ErrConfiguration,
		)
	}

	info := server.Info{Raw: raw, Version: v}
	info.CoreDirectory, _ = server.CoreDirectory(raw)
	info.Host, _ = server.Host(raw)
	return info, nil
}

func lookup(raw map[string]any) server.Resolution {
	s, ok := server.SpecVersion(raw)
	if !ok {
		return server.Unresolved()
	}
	v, err := server.ParseVersion(s)
	if err != nil {
		return server.Unresolved()
	}
	return server.Resolved(v)
}
