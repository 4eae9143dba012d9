package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a one-page estimate summary using maroto/v2: the
// configuration, the totals pipeline and the hours-by-job-code table.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addConfigSection(m, data)
	addTotalsSection(m, data)
	addRepartitionSection(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addEstimateHeader adds the title, reference number, and date to the PDF.
func addEstimateHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s - Rev %s", data.ReferenceNumber, data.Revision), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.Date), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addConfigSection lists the estimate's configuration fields.
func addConfigSection(m core.Maroto, data ExportData) {
	addSectionTitle(m, "Configuration")

	lines := []struct {
		label string
		value string
	}{
		{"Client", data.Client},
		{"Designation", data.Designation},
		{"Business type", data.BusinessType},
		{"Sector", data.Sector},
		{"Product", data.Product},
		{"Machines", fmt.Sprintf("%d", data.Quantity)},
		{"Contingency", FormatPercent(data.ContingencyPercent)},
	}
	for _, l := range lines {
		addLabelValueRow(m, l.label, l.value, fontstyle.Normal)
	}
}

// addTotalsSection lists the totals pipeline figures.
func addTotalsSection(m core.Maroto, data ExportData) {
	m.AddRows(row.New(4))
	addSectionTitle(m, "Totals")

	addLabelValueRow(m, "First machine subtotal", FormatHours(data.Totals.FirstMachineSubtotal), fontstyle.Normal)
	addLabelValueRow(m, "First machine total", FormatHours(data.Totals.FirstMachineTotal), fontstyle.Normal)
	addLabelValueRow(m, fmt.Sprintf("Total for %d machine(s)", data.Quantity), FormatHours(data.Totals.NMachinesTotal), fontstyle.Normal)
	addLabelValueRow(m, "Experience coefficient", fmt.Sprintf("%.2f", data.Totals.ExperienceCoefficient), fontstyle.Normal)
	addLabelValueRow(m, "Final total", FormatHours(data.Totals.TotalFinal), fontstyle.Bold)
}

// addRepartitionSection lists the hours by job code in catalog order.
func addRepartitionSection(m core.Maroto, data ExportData) {
	m.AddRows(row.New(4))
	addSectionTitle(m, "Hours by job code")

	for _, jh := range data.Repartition {
		addLabelValueRow(m, fmt.Sprintf("%s - %s", jh.Code, jh.Label), FormatHours(jh.Hours), fontstyle.Normal)
	}
}

// addSectionTitle adds a full-width dark header row.
func addSectionTitle(m core.Maroto, title string) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(&props.Cell{BackgroundColor: headerBg}),
		),
	)
}

// addLabelValueRow adds a two-column row with the label left and the value right.
func addLabelValueRow(m core.Maroto, label, value string, style fontstyle.Type) {
	bg := &props.Color{Red: 245, Green: 245, Blue: 245}
	cellStyle := &props.Cell{BackgroundColor: bg}
	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(
				text.New(label, props.Text{
					Size:  8,
					Style: style,
					Align: align.Left,
				}),
			).WithStyle(cellStyle),
			col.New(4).Add(
				text.New(value, props.Text{
					Size:  8,
					Style: style,
					Align: align.Right,
				}),
			).WithStyle(cellStyle),
		),
	)
}
