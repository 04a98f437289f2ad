package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"io"

	allocationdomain "github.com/wattsplit/wattsplit/internal/allocation/domain"
	"github.com/wattsplit/wattsplit/internal/config"
	"github.com/xuri/excelize/v2"
)

const sheet = "Statement"

// Exporter renders a statement as an xlsx workbook.
type Exporter struct {
	display *config.DisplayConfigHolder
}

func New(display *config.DisplayConfigHolder) *Exporter {
	return &Exporter{display: display}
}

func (e *Exporter) Format() string { return "xlsx" }

func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *Exporter) Extension() string { return "xlsx" }

func (e *Exporter) Render(ctx context.Context, st allocationdomain.Statement) (io.Reader, error) {
	_ = ctx
	display := e.display.Get()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "F", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	unitPrice := st.UnitPrice.StringFixed(2)
	if !st.PriceDefined {
		unitPrice = "undefined"
	}

	summary := [][]interface{}{
		{display.StatementTitle, ""},
		{"Generated at", st.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total units purchased (" + display.UnitLabel + ")", st.TotalUnits.StringFixed(2)},
		{"Total amount billed (" + st.Currency + ")", st.TotalAmount.StringFixed(2)},
		{"Unit price (" + st.Currency + "/" + display.UnitLabel + ")", unitPrice},
		{"Total metered usage (" + display.UnitLabel + ")", st.TotalUsage.StringFixed(2)},
		{"Unaccounted units (" + display.UnitLabel + ")", st.UnaccountedUnits.StringFixed(2)},
	}
	for i, pair := range summary {
		row := i + 1
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), pair[0]); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pair[1]); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}

	headerRow := len(summary) + 2
	headers := []string{
		"Tenant",
		"Used (" + display.UnitLabel + ")",
		"Bonus (" + display.UnitLabel + ")",
		"Final (" + display.UnitLabel + ")",
		"Share (%)",
		"Amount (" + st.Currency + ")",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := headerRow + 1
	for _, r := range st.Results {
		values := []interface{}{
			r.Name,
			r.Usage.StringFixed(2),
			r.Bonus.StringFixed(2),
			r.FinalUnits.StringFixed(2),
			r.Percent.StringFixed(2),
			r.Amount.StringFixed(2),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, fmt.Errorf("result cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write result: %w", err)
			}
		}
		row++
	}

	totalsRow := []interface{}{
		"Total",
		st.TotalUsage.StringFixed(2),
		"",
		st.SumFinalUnits().StringFixed(2),
		st.SumPercents().StringFixed(2),
		st.SumAmounts().StringFixed(2),
	}
	for i, v := range totalsRow {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return nil, fmt.Errorf("totals cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return nil, fmt.Errorf("write totals: %w", err)
		}
	}
	first, _ = excelize.CoordinatesToCellName(1, row)
	last, _ = excelize.CoordinatesToCellName(len(totalsRow), row)
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return nil, fmt.Errorf("style totals: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}
