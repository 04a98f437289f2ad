package pdf

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattsplit/wattsplit/internal/allocation/service"
	"github.com/wattsplit/wattsplit/internal/config"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
)

func testStatement(t *testing.T) *readingdomain.Snapshot {
	t.Helper()

	previousA, _ := decimal.NewFromString("97.87")
	currentA, _ := decimal.NewFromString("126.95")
	previousB, _ := decimal.NewFromString("155.3")
	currentB, _ := decimal.NewFromString("175.4")
	totalUnits, _ := decimal.NewFromString("52.8")
	totalAmount, _ := decimal.NewFromString("12000")

	return &readingdomain.Snapshot{
		Readings: []readingdomain.TenantReading{
			{ID: snowflake.ID(1), Name: "A", Previous: previousA, Current: currentA},
			{ID: snowflake.ID(2), Name: "B", Previous: previousB, Current: currentB},
		},
		Params: readingdomain.BillParameters{
			TotalUnits:  totalUnits,
			TotalAmount: totalAmount,
		},
	}
}

func TestRenderPDF(t *testing.T) {
	display, err := config.NewDisplayConfigHolder()
	require.NoError(t, err)

	st, err := service.Calculate(*testStatement(t), "USD", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	exporter := New(display)
	assert.Equal(t, "pdf", exporter.Format())
	assert.Equal(t, "application/pdf", exporter.ContentType())

	artifact, err := exporter.Render(context.Background(), *st)
	require.NoError(t, err)

	body, err := io.ReadAll(artifact)
	require.NoError(t, err)
	require.NotEmpty(t, body)
	assert.Equal(t, "%PDF", string(body[:4]))
}
