package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	allocationdomain "github.com/wattsplit/wattsplit/internal/allocation/domain"
	"github.com/wattsplit/wattsplit/internal/config"
)

// Exporter renders a statement as a PDF document.
type Exporter struct {
	display *config.DisplayConfigHolder
}

func New(display *config.DisplayConfigHolder) *Exporter {
	return &Exporter{display: display}
}

func (e *Exporter) Format() string      { return "pdf" }
func (e *Exporter) ContentType() string { return "application/pdf" }
func (e *Exporter) Extension() string   { return "pdf" }

func (e *Exporter) Render(ctx context.Context, st allocationdomain.Statement) (io.Reader, error) {
	_ = ctx
	display := e.display.Get()

	cfg := marotocfg.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, display.StatementTitle, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	unitPrice := st.UnitPrice.StringFixed(2) + " " + st.Currency + "/" + display.UnitLabel
	if !st.PriceDefined {
		unitPrice = "undefined (no purchased units)"
	}

	// Header metadata
	m.AddRow(28,
		col.New(6).Add(
			text.New("Generated at: "+st.GeneratedAt.Format("2006-01-02 15:04:05 MST"), props.Text{Top: 0}),
			text.New("Total units purchased: "+st.TotalUnits.StringFixed(2)+" "+display.UnitLabel, props.Text{Top: 5}),
			text.New("Total amount billed: "+st.TotalAmount.StringFixed(2)+" "+st.Currency, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Unit price: "+unitPrice, props.Text{Top: 0}),
			text.New("Total metered usage: "+st.TotalUsage.StringFixed(2)+" "+display.UnitLabel, props.Text{Top: 5}),
			text.New("Unaccounted units: "+st.UnaccountedUnits.StringFixed(2)+" "+display.UnitLabel, props.Text{Top: 10}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(3, "Tenant", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Used ("+display.UnitLabel+")", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Bonus", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Final", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "%", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, r := range st.Results {
		m.AddRow(8,
			text.NewCol(3, r.Name, props.Text{Size: 9}),
			text.NewCol(2, r.Usage.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.Bonus.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.FinalUnits.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, r.Percent.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.Amount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, st.TotalUsage.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		col.New(2),
		text.NewCol(2, st.SumFinalUnits().StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, st.SumPercents().StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, st.SumAmounts().StringFixed(2)+" "+st.Currency, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
