package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates the planning workbook for an estimate and returns
// the file contents as a byte slice. The sheet carries the configuration
// block, the totals pipeline, the job-code repartition as a header/value
// row pair, and the planning scale constants downstream templates read.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Chiffrage"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Label column wide, value column medium.
	if err := f.SetColWidth(sheetName, "A", "A", 34); err != nil {
		return nil, fmt.Errorf("set col width A: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "Z", 14); err != nil {
		return nil, fmt.Errorf("set col width B: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Title style: bold, 16pt.
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	// Subtitle style (reference, date).
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Section header style: bold, white text, charcoal background.
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	// Label style: bold with borders.
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	// Value style: normal with borders.
	valueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create value style: %w", err)
	}

	// Job-code header style: bold, centered, light fill.
	jobHeaderStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DDDDDD"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create job header style: %w", err)
	}

	// Hours value style: two decimals, centered, with borders.
	hoursStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		NumFmt: 2,
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create hours style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", "D1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", "D1", titleStyle)

	if data.ReferenceNumber != "" {
		if err := f.MergeCell(sheetName, "A2", "D2"); err != nil {
			return nil, fmt.Errorf("merge ref: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Ref: "+sanitizeExcelCell(data.ReferenceNumber)+" - Rev "+data.Revision)
		f.SetCellStyle(sheetName, "A2", "D2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", "D3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+data.Date)
	f.SetCellStyle(sheetName, "A3", "D3", subtitleStyle)

	// ── Configuration block ─────────────────────────────────────────────

	row := 5
	f.SetCellValue(sheetName, cell("A", row), "Configuration")
	f.SetCellStyle(sheetName, cell("A", row), cell("B", row), sectionStyle)
	row++

	configRows := []struct {
		label string
		value any
	}{
		{"Client", sanitizeExcelCell(data.Client)},
		{"Designation", sanitizeExcelCell(data.Designation)},
		{"Business type", sanitizeExcelCell(data.BusinessType)},
		{"Sector", sanitizeExcelCell(data.Sector)},
		{"Product", sanitizeExcelCell(data.Product)},
		{"Machines", data.Quantity},
		{"Contingency", FormatPercent(data.ContingencyPercent)},
	}
	for _, cr := range configRows {
		f.SetCellValue(sheetName, cell("A", row), cr.label)
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), labelStyle)
		f.SetCellValue(sheetName, cell("B", row), cr.value)
		f.SetCellStyle(sheetName, cell("B", row), cell("B", row), valueStyle)
		row++
	}

	// ── Totals block ────────────────────────────────────────────────────

	row++
	f.SetCellValue(sheetName, cell("A", row), "Totals")
	f.SetCellStyle(sheetName, cell("A", row), cell("B", row), sectionStyle)
	row++

	totalRows := []struct {
		label string
		value float64
	}{
		{"First machine subtotal", data.Totals.FirstMachineSubtotal},
		{"First machine total", data.Totals.FirstMachineTotal},
		{fmt.Sprintf("Total for %d machine(s)", data.Quantity), data.Totals.NMachinesTotal},
		{"Experience coefficient", data.Totals.ExperienceCoefficient},
		{"Final total", data.Totals.TotalFinal},
	}
	for _, tr := range totalRows {
		f.SetCellValue(sheetName, cell("A", row), tr.label)
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), labelStyle)
		f.SetCellValue(sheetName, cell("B", row), tr.value)
		f.SetCellStyle(sheetName, cell("B", row), cell("B", row), hoursStyle)
		row++
	}

	// ── Repartition block ───────────────────────────────────────────────

	row++
	f.SetCellValue(sheetName, cell("A", row), "Hours by job code")
	f.SetCellStyle(sheetName, cell("A", row), cell("B", row), sectionStyle)
	row++

	// Header row and value row, one column per job code in catalog order.
	headerRow := row
	valueRow := row + 1
	for i, jh := range data.Repartition {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		f.SetCellValue(sheetName, cell(colName, headerRow), sanitizeExcelCell(jh.Code))
		f.SetCellStyle(sheetName, cell(colName, headerRow), cell(colName, headerRow), jobHeaderStyle)
		f.SetCellValue(sheetName, cell(colName, valueRow), jh.Hours)
		f.SetCellStyle(sheetName, cell(colName, valueRow), cell(colName, valueRow), hoursStyle)
	}
	row = valueRow + 2

	// Planning scale constants, read by the downstream planning template.
	f.SetCellValue(sheetName, cell("A", row), "Planning scale")
	f.SetCellStyle(sheetName, cell("A", row), cell("A", row), labelStyle)
	f.SetCellValue(sheetName, cell("B", row), PlanningScaleLow)
	f.SetCellStyle(sheetName, cell("B", row), cell("B", row), valueStyle)
	f.SetCellValue(sheetName, cell("C", row), PlanningScaleHigh)
	f.SetCellStyle(sheetName, cell("C", row), cell("C", row), valueStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// cell builds an A1-style reference from a column name and row number.
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
