package field

import "fmt"

// Kind is the logical data kind of an indexed field.
type Kind string

// Field kind constants.
const (
	Text      Kind = "text"
	String    Kind = "string"
	Integer   Kind = "integer"
	Float     Kind = "float"
	Date      Kind = "date"
	Boolean   Kind = "boolean"
	Location  Kind = "location"
	NGram     Kind = "ngram"
	EdgeNGram Kind = "edge_ngram"
	// DateRange holds date intervals; needs a native range type on the server.
	DateRange Kind = "daterange"
)

// Kinds lists every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{Text, String, Integer, Float, Date, Boolean, Location, NGram, EdgeNGram, DateRange}
}

// IsValid checks if the kind is known.
func (k Kind) IsValid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Descriptor is a logical field as enumerated by the index registry.
type Descriptor struct {
	Name        string
	Kind        Kind
	Multivalued bool
	Indexed     bool
	Stored      bool
	Content     bool
}

// Validate checks a single descriptor.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if !d.Kind.IsValid() {
		return fmt.Errorf("invalid field kind %q for %q", d.Kind, d.Name)
	}
	return nil
}

// ValidateAll checks every descriptor and name uniqueness within the collection.
func ValidateAll(descs []Descriptor) error {
	seen := make(map[string]bool, len(descs))
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate field name: %s", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}
