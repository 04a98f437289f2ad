package export

import (
	exportdomain "github.com/wattsplit/wattsplit/internal/export/domain"
	"github.com/wattsplit/wattsplit/internal/providers/pdf"
	"github.com/wattsplit/wattsplit/internal/providers/snapshot"
	"github.com/wattsplit/wattsplit/internal/providers/spreadsheet"
	"go.uber.org/fx"
)

type registryParam struct {
	fx.In

	PDF         *pdf.Exporter
	Spreadsheet *spreadsheet.Exporter
	Snapshot    *snapshot.Exporter
}

func newRegistry(p registryParam) *Registry {
	return NewRegistry(
		exportdomain.Exporter(p.PDF),
		exportdomain.Exporter(p.Spreadsheet),
		exportdomain.Exporter(p.Snapshot),
	)
}

var Module = fx.Module("export",
	fx.Provide(
		pdf.New,
		spreadsheet.New,
		snapshot.New,
		newRegistry,
	),
)
