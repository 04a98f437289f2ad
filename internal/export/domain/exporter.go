// Package domain defines the export adapter contract. Every adapter
// consumes a fully computed statement snapshot and renders it to one
// target format; adapters never touch the reading store.
package domain

import (
	"context"
	"errors"
	"io"

	allocationdomain "github.com/wattsplit/wattsplit/internal/allocation/domain"
)

// Exporter renders a statement to a downloadable artifact.
type Exporter interface {
	Format() string
	ContentType() string
	Extension() string
	Render(ctx context.Context, st allocationdomain.Statement) (io.Reader, error)
}

var ErrUnknownFormat = errors.New("unknown_format")
