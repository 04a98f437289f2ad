package snapshot

import (
	"context"
	"image/png"
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

func TestRenderSnapshot(t *testing.T) {
	display, err := config.NewDisplayConfigHolder()
	require.NoError(t, err)

	previous, _ := decimal.NewFromString("97.87")
	current, _ := decimal.NewFromString("126.95")
	totalUnits, _ := decimal.NewFromString("52.8")
	totalAmount, _ := decimal.NewFromString("12000")

	snapshot := readingdomain.Snapshot{
		Readings: []readingdomain.TenantReading{
			{ID: snowflake.ID(1), Name: "A", Previous: previous, Current: current},
		},
		Params: readingdomain.BillParameters{
			TotalUnits:  totalUnits,
			TotalAmount: totalAmount,
		},
	}

	st, err := service.Calculate(snapshot, "USD", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	exporter := New(display)
	assert.Equal(t, "png", exporter.Format())
	assert.Equal(t, "image/png", exporter.ContentType())

	artifact, err := exporter.Render(context.Background(), *st)
	require.NoError(t, err)

	img, err := png.Decode(artifact)
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 100)
}
