package solr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kailas-cloud/schemagen/internal/domain"
)

// CoreURL is a connection URL split into the core name and the admin base.
type CoreURL struct {
	Core  string   // last non-empty path segment
	Base  *url.URL // the connection URL itself, without trailing slash
	Admin *url.URL // scheme://host + path prefix before the core segment
}

// ParseCoreURL splits e.g. "http://localhost:8983/solr/books/" into core "books"
// and admin base "http://localhost:8983/solr".
func ParseCoreURL(raw string) (CoreURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return CoreURL{}, fmt.Errorf("%w: invalid connection url %q: %w", domain.ErrConfiguration, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return CoreURL{}, fmt.Errorf("%w: connection url %q must be absolute", domain.ErrConfiguration, raw)
	}

	p := strings.TrimRight(u.Path, "/")
	i := strings.LastIndex(p, "/")
	core := p[i+1:]
	if core == "" {
		return CoreURL{}, fmt.Errorf("%w: connection url %q has no core segment", domain.ErrConfiguration, raw)
	}

	base := &url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host, Path: p}
	admin := &url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host, Path: p[:i]}
	return CoreURL{Core: core, Base: base, Admin: admin}, nil
}

// SystemInfoURL is the core-level system info endpoint.
func (c CoreURL) SystemInfoURL() string {
	u := *c.Base
	u.Path += "/admin/system"
	u.RawQuery = url.Values{"wt": {"json"}}.Encode()
	return u.String()
}

// PingURL is the core-level ping handler.
func (c CoreURL) PingURL() string {
	u := *c.Base
	u.Path += "/admin/ping"
	u.RawQuery = url.Values{"wt": {"json"}}.Encode()
	return u.String()
}

// ReloadURL is the CoreAdmin RELOAD endpoint for core.
func (c CoreURL) ReloadURL(core string) string {
	u := *c.Admin
	u.Path += "/admin/cores"
	u.RawQuery = url.Values{
		"action": {"RELOAD"},
		"core":   {core},
		"wt":     {"json"},
	}.Encode()
	return u.String()
}
