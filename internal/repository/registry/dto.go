package registry

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/field"
)

// fieldsDoc is the on-disk (and in-Redis) field list. YAML or JSON.
type fieldsDoc struct {
	Fields []fieldDTO `yaml:"fields"`
}

type fieldDTO struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Multivalued bool   `yaml:"multivalued"`
	Indexed     *bool  `yaml:"indexed"` // default true
	Stored      *bool  `yaml:"stored"`  // default true
	Content     bool   `yaml:"content"`
}

func (d fieldDTO) toDomain() field.Descriptor {
	return field.Descriptor{
		Name:        d.Name,
		Kind:        field.Kind(d.Kind),
		Multivalued: d.Multivalued,
		Indexed:     boolOr(d.Indexed, true),
		Stored:      boolOr(d.Stored, true),
		Content:     d.Content,
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Decode parses a field list. Malformed documents are configuration errors,
// invalid or duplicate fields are schema errors.
func Decode(data []byte) ([]field.Descriptor, error) {
	var doc fieldsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse field list: %w", domain.ErrConfiguration, err)
	}

	descs := make([]field.Descriptor, 0, len(doc.Fields))
	for _, d := range doc.Fields {
		descs = append(descs, d.toDomain())
	}
	if err := field.ValidateAll(descs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSchema, err)
	}
	return descs, nil
}
