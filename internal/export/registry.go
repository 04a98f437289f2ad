package export

import (
	"sort"

	exportdomain "github.com/wattsplit/wattsplit/internal/export/domain"
)

// Registry maps a format key (pdf, xlsx, png) to its exporter.
type Registry struct {
	exporters map[string]exportdomain.Exporter
}

func NewRegistry(exporters ...exportdomain.Exporter) *Registry {
	byFormat := make(map[string]exportdomain.Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &Registry{exporters: byFormat}
}

func (r *Registry) Get(format string) (exportdomain.Exporter, error) {
	e, ok := r.exporters[format]
	if !ok {
		return nil, exportdomain.ErrUnknownFormat
	}
	return e, nil
}

// Formats lists the registered format keys in stable order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.exporters))
	for format := range r.exporters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
