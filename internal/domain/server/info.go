package server

// Raw keys of the core-level system info response.
const (
	KeyLucene      = "lucene"
	KeySpecVersion = "solr-spec-version"
	KeyCore        = "core"
	KeyDirectory   = "directory"
	KeyInstance    = "instance"
	KeyHost        = "host"
)

// Info is what the core knows about the target server for one invocation.
type Info struct {
	Raw           map[string]any
	Version       Version
	CoreDirectory string // empty if the server did not report it
	Host          string // fully-qualified name reported by the server
}

// SpecVersion extracts lucene.solr-spec-version from raw system info.
func SpecVersion(raw map[string]any) (string, bool) {
	return lookupString(raw, KeyLucene, KeySpecVersion)
}

// WithSpecVersion returns a copy of raw with lucene.solr-spec-version set to v.
// raw itself is not modified.
func WithSpecVersion(raw map[string]any, v string) map[string]any {
	out := make(map[string]any, len(raw)+1)
	for k, val := range raw {
		out[k] = val
	}
	lucene := make(map[string]any)
	if src, ok := raw[KeyLucene].(map[string]any); ok {
		for k, val := range src {
			lucene[k] = val
		}
	}
	lucene[KeySpecVersion] = v
	out[KeyLucene] = lucene
	return out
}

// CoreDirectory extracts core.directory.instance from raw system info.
func CoreDirectory(raw map[string]any) (string, bool) {
	return lookupString(raw, KeyCore, KeyDirectory, KeyInstance)
}

// Host extracts core.host from raw system info.
func Host(raw map[string]any) (string, bool) {
	return lookupString(raw, KeyCore, KeyHost)
}

func lookupString(raw map[string]any, path ...string) (string, bool) {
	var cur any = raw
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[key]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
