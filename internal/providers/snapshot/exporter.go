package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fogleman/gg"
	allocationdomain "github.com/wattsplit/wattsplit/internal/allocation/domain"
	"github.com/wattsplit/wattsplit/internal/config"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth = 760
	marginX    = 24.0
	rowHeight  = 18.0
)

// Exporter renders a statement as a PNG snapshot of the results table.
type Exporter struct {
	display *config.DisplayConfigHolder
}

func New(display *config.DisplayConfigHolder) *Exporter {
	return &Exporter{display: display}
}

func (e *Exporter) Format() string      { return "png" }
func (e *Exporter) ContentType() string { return "image/png" }
func (e *Exporter) Extension() string   { return "png" }

func (e *Exporter) Render(ctx context.Context, st allocationdomain.Statement) (io.Reader, error) {
	_ = ctx
	display := e.display.Get()

	// title + 3 meta lines + header + results + totals + padding
	height := int(rowHeight*(float64(len(st.Results))+8) + 40)

	dc := gg.NewContext(imageWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)

	y := 28.0
	dc.DrawString(display.StatementTitle, marginX, y)
	y += rowHeight * 1.5

	unitPrice := st.UnitPrice.StringFixed(2) + " " + st.Currency + "/" + display.UnitLabel
	if !st.PriceDefined {
		unitPrice = "undefined"
	}
	meta := []string{
		fmt.Sprintf("Generated at %s", st.GeneratedAt.Format("2006-01-02 15:04:05 MST")),
		fmt.Sprintf("Purchased %s %s, billed %s %s, unit price %s",
			st.TotalUnits.StringFixed(2), display.UnitLabel,
			st.TotalAmount.StringFixed(2), st.Currency, unitPrice),
		fmt.Sprintf("Metered usage %s %s, unaccounted %s %s",
			st.TotalUsage.StringFixed(2), display.UnitLabel,
			st.UnaccountedUnits.StringFixed(2), display.UnitLabel),
	}
	for _, line := range meta {
		dc.DrawString(line, marginX, y)
		y += rowHeight
	}
	y += rowHeight / 2

	columns := []float64{marginX, 220, 320, 420, 520, 620}
	headers := []string{"Tenant", "Used", "Bonus", "Final", "%", "Amount"}
	for i, h := range headers {
		dc.DrawString(h, columns[i], y)
	}
	y += 6
	dc.DrawLine(marginX, y, imageWidth-marginX, y)
	dc.Stroke()
	y += rowHeight

	for _, r := range st.Results {
		cells := []string{
			r.Name,
			r.Usage.StringFixed(2),
			r.Bonus.StringFixed(2),
			r.FinalUnits.StringFixed(2),
			r.Percent.StringFixed(2),
			r.Amount.StringFixed(2),
		}
		for i, c := range cells {
			dc.DrawString(c, columns[i], y)
		}
		y += rowHeight
	}

	y += 6 - rowHeight
	dc.DrawLine(marginX, y, imageWidth-marginX, y)
	dc.Stroke()
	y += rowHeight

	totals := []string{
		"Total",
		st.TotalUsage.StringFixed(2),
		"",
		st.SumFinalUnits().StringFixed(2),
		st.SumPercents().StringFixed(2),
		st.SumAmounts().StringFixed(2),
	}
	for i, c := range totals {
		dc.DrawString(c, columns[i], y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}
