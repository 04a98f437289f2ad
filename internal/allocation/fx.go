package allocation

import (
	"github.com/wattsplit/wattsplit/internal/allocation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("allocation.service",
	fx.Provide(service.NewService),
)
