package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/wattsplit/wattsplit/internal/clock"
	"github.com/wattsplit/wattsplit/internal/config"
	"github.com/wattsplit/wattsplit/internal/logger"
	"github.com/wattsplit/wattsplit/internal/server"
	"github.com/wattsplit/wattsplit/internal/telemetry"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		logger.Module,
		telemetry.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),

		// HTTP surface and functional domains
		server.Module,
	)

	app.Run()
}

// RegisterSnowflake provides the process-wide ID generator node.
func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
