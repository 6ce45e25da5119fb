package server

// Tier is a compatibility bucket keyed by major version, e.g. "solr_7".
// It selects both the schema template and the type-mapping table.
type Tier string

// Supported server generations.
const (
	Solr5 Tier = "solr_5"
	Solr6 Tier = "solr_6"
	Solr7 Tier = "solr_7"
	Solr8 Tier = "solr_8"
	Solr9 Tier = "solr_9"
)

// Tiers lists the supported tiers in ascending order.
func Tiers() []Tier {
	return []Tier{Solr5, Solr6, Solr7, Solr8, Solr9}
}

// IsSupported reports whether the tier is one of Tiers().
func (t Tier) IsSupported() bool {
	for _, known := range Tiers() {
		if t == known {
			return true
		}
	}
	return false
}
