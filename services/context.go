// Package services implements the quotation computation engine: the five
// cost-item kinds, the estimate aggregate, the totals pipeline, the job-code
// repartition and the export generators.
package services

// Context carries everything an item needs to compute its hours: the current
// machine configuration plus the coefficient tables already resolved for the
// estimate's (sector, business type) selection. A Context is built by
// Project.Context and treated as immutable by all item methods.
type Context struct {
	Product         string
	ProductCategory string
	BusinessType    string
	Sector          string

	// Coefficients applied to contractual documents.
	DocSectorCoeff   float64
	DocBusinessCoeff float64

	// Per-category coefficients for calculations and options.
	CalcCategoryCoeff   map[string]float64
	OptionCategoryCoeff map[string]float64
}

// NewContext returns a context with neutral coefficients (1.0) and empty
// configuration. Items evaluated against it fall back to their raw hours.
func NewContext() Context {
	return Context{DocSectorCoeff: 1.0, DocBusinessCoeff: 1.0}
}

// coeffFor looks up a coefficient table entry, defaulting to the neutral 1.0
// when the key is absent. Partial configuration must never fail a computation.
func coeffFor(table map[string]float64, key string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1.0
}

// hoursFor looks up an hours table entry, defaulting to 0.0 when absent.
func hoursFor(table map[string]float64, key string) float64 {
	return table[key]
}
