package project

import (
	"fmt"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/field"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
)

// Field types shared by every tier.
var common = map[field.Kind]string{
	field.Text:      "text_en",
	field.String:    "string",
	field.Boolean:   "boolean",
	field.NGram:     "ngram",
	field.EdgeNGram: "edge_ngram",
	field.DateRange: "date_range",
}

// Trie numerics (Solr 5-6) and point numerics (Solr 7+).
var trie = merge(common, map[field.Kind]string{
	field.Integer:  "tlong",
	field.Float:    "tfloat",
	field.Date:     "tdate",
	field.Location: "location",
})

var point = merge(common, map[field.Kind]string{
	field.Integer:  "plong",
	field.Float:    "pfloat",
	field.Date:     "pdate",
	field.Location: "location",
})

// typeTable maps (tier, kind) to a fieldType declared in that tier's template.
var typeTable = map[server.Tier]map[field.Kind]string{
	server.Solr5: trie,
	server.Solr6: trie,
	server.Solr7: point,
	server.Solr8: point,
	server.Solr9: point,
}

func merge(base, extra map[field.Kind]string) map[field.Kind]string {
	out := make(map[field.Kind]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// TypeName returns the concrete type for kind at tier.
// Unknown tier is a configuration error; a known tier lacking the kind is a schema error.
func TypeName(kind field.Kind, tier server.Tier) (string, error) {
	kinds, ok := typeTable[tier]
	if !ok {
		return "", fmt.Errorf("%w: unsupported server generation %s", domain.ErrConfiguration, tier)
	}
	name, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("%w: field kind %q has no type in %s", domain.ErrSchema, kind, tier)
	}
	return name, nil
}

// TypeNames returns every distinct type name used at tier.
func TypeNames(tier server.Tier) []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range field.Kinds() {
		name, ok := typeTable[tier][k]
		if ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
