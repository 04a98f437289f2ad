package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattsplit/wattsplit/internal/config"
	exportdomain "github.com/wattsplit/wattsplit/internal/export/domain"
	"github.com/wattsplit/wattsplit/internal/providers/pdf"
	"github.com/wattsplit/wattsplit/internal/providers/snapshot"
	"github.com/wattsplit/wattsplit/internal/providers/spreadsheet"
)

func TestRegistry(t *testing.T) {
	display, err := config.NewDisplayConfigHolder()
	require.NoError(t, err)

	registry := NewRegistry(
		pdf.New(display),
		spreadsheet.New(display),
		snapshot.New(display),
	)

	assert.Equal(t, []string{"pdf", "png", "xlsx"}, registry.Formats())

	exporter, err := registry.Get("pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", exporter.ContentType())

	_, err = registry.Get("docx")
	assert.ErrorIs(t, err, exportdomain.ErrUnknownFormat)
}
