package dataset

// defaultRegions maps the GeoNames admin1 FIPS codes used for Canada to
// province and territory names. US rows already carry two-letter state codes
// and pass through unchanged.
var defaultRegions = map[string]string{
	"01": "Alberta",
	"02": "British Columbia",
	"03": "Manitoba",
	"04": "New Brunswick",
	"05": "Newfoundland and Labrador",
	"07": "Nova Scotia",
	"08": "Ontario",
	"09": "Prince Edward Island",
	"10": "Quebec",
	"11": "Saskatchewan",
	"12": "Yukon",
	"13": "Northwest Territories",
	"14": "Nunavut",
}

// DefaultRegions returns a fresh copy of the built-in admin1 table.
func DefaultRegions() map[string]string {
	regions := make(map[string]string, len(defaultRegions))
	for code, name := range defaultRegions {
		regions[code] = name
	}
	return regions
}

// MergeRegions returns base with overrides applied on top. Neither input is modified.
func MergeRegions(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for code, name := range base {
		merged[code] = name
	}
	for code, name := range overrides {
		merged[code] = name
	}
	return merged
}

// lookup returns the name for code, or code itself when the table has no entry.
func lookup(table map[string]string, code string) string {
	if name, ok := table[code]; ok {
		return name
	}
	return code
}
