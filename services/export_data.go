package services

// Template scaling constants the planning spreadsheet expects in its
// designated cell pair. They are template data, not computed values.
const (
	PlanningScaleLow  = 1.2
	PlanningScaleHigh = 1.5
)

// ExportData holds everything the Excel and PDF generators need: the
// estimate's identity, the totals pipeline snapshot and the job-code
// repartition in catalog order.
type ExportData struct {
	Title           string
	ReferenceNumber string
	Client          string
	Designation     string
	Date            string
	Revision        string
	Quantity        int
	Sector          string
	BusinessType    string
	Product         string

	ContingencyPercent float64
	Totals             Totals
	Repartition        []JobHours
}

// BuildExportData assembles the export payload from an estimate.
func BuildExportData(p *Project, cat *Catalog) ExportData {
	title := p.Designation
	if title == "" {
		title = p.CRMNumber
	}
	return ExportData{
		Title:              title,
		ReferenceNumber:    p.CRMNumber,
		Client:             p.Client,
		Designation:        p.Designation,
		Date:               p.Date,
		Revision:           p.Revision,
		Quantity:           p.Quantity,
		Sector:             p.Sector,
		BusinessType:       p.BusinessType,
		Product:            p.Product,
		ContingencyPercent: p.ContingencyPercent,
		Totals:             p.ComputeTotals(),
		Repartition:        p.Repartition(cat),
	}
}
