// Package classify assigns companies to one of a fixed set of industry
// domains, used downstream to select market fixtures and styling.
package classify

// Domain is a closed industry category key
type Domain string

const (
	DomainManufacturing  Domain = "manufacturing"
	DomainTechnology     Domain = "technology"
	DomainLogistics      Domain = "logistics"
	DomainConsumer       Domain = "consumer"
	DomainHealthcare     Domain = "healthcare"
	DomainInfrastructure Domain = "infrastructure"
	DomainChemicals      Domain = "chemicals"
	DomainAutomotive     Domain = "automotive"
)

type domainInfo struct {
	Name     string
	Keywords []string
}

// domainTable drives both the LLM prompt and the keyword fallback
var domainTable = map[Domain]domainInfo{
	DomainManufacturing: {
		Name: "Manufacturing & Industrials",
		Keywords: []string{"manufacturing", "production", "plant", "facility", "industrial",
			"oem", "b2b", "fabrication", "assembly", "machining", "factory",
			"electronics", "components", "hardware"},
	},
	DomainTechnology: {
		Name: "Technology & IT Services",
		Keywords: []string{"software", "saas", "platform", "cloud", "digital", "ai", "ml",
			"development", "consulting", "integration", "it services", "tech",
			"data", "analytics", "salesforce", "odoo", "erp", "crm"},
	},
	DomainLogistics: {
		Name: "Logistics & Supply Chain",
		Keywords: []string{"logistics", "supply chain", "warehousing", "transportation",
			"distribution", "freight", "3pl", "last mile", "express", "delivery",
			"shipping", "cargo", "courier"},
	},
	DomainConsumer: {
		Name: "Consumer Brands (D2C/B2C)",
		Keywords: []string{"brand", "consumer", "d2c", "e-commerce", "retail", "wellness",
			"fmcg", "marketplace", "lifestyle", "personal care", "food",
			"beverage", "fashion", "beauty"},
	},
	DomainHealthcare: {
		Name: "Healthcare & Pharma",
		Keywords: []string{"pharma", "pharmaceutical", "healthcare", "medical", "biotech",
			"diagnostics", "hospital", "therapeutic", "formulation", "drug",
			"medicine", "clinical", "api", "generic"},
	},
	DomainInfrastructure: {
		Name: "Infrastructure & Real Estate",
		Keywords: []string{"construction", "infrastructure", "real estate", "developer",
			"epc", "project", "contractor", "builder", "roads", "bridges",
			"housing", "commercial"},
	},
	DomainChemicals: {
		Name: "Chemicals & Specialty Materials",
		Keywords: []string{"chemical", "polymer", "resin", "specialty", "formulation",
			"additive", "coating", "petrochemical", "industrial chemicals",
			"paints", "adhesives"},
	},
	DomainAutomotive: {
		Name: "Automotive & Components",
		Keywords: []string{"automotive", "auto components", "forging", "casting", "oem",
			"tier-1", "aftermarket", "vehicle", "car", "truck", "two-wheeler",
			"engine", "transmission"},
	},
}

// Valid reports whether the key names a known domain
func Valid(d Domain) bool {
	_, ok := domainTable[d]
	return ok
}

// DisplayName returns the human-readable name for a domain key
func DisplayName(d Domain) string {
	if info, ok := domainTable[d]; ok {
		return info.Name
	}
	return string(d)
}

// Domains returns all known domain keys
func Domains() []Domain {
	return []Domain{
		DomainManufacturing, DomainTechnology, DomainLogistics, DomainConsumer,
		DomainHealthcare, DomainInfrastructure, DomainChemicals, DomainAutomotive,
	}
}
