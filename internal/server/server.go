package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wattsplit/wattsplit/internal/allocation"
	allocationdomain "github.com/wattsplit/wattsplit/internal/allocation/domain"
	"github.com/wattsplit/wattsplit/internal/config"
	"github.com/wattsplit/wattsplit/internal/export"
	"github.com/wattsplit/wattsplit/internal/reading"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
	"github.com/wattsplit/wattsplit/internal/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	reading.Module,
	allocation.Module,
	export.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParam struct {
	fx.In

	Log     *zap.Logger
	Metrics *telemetry.Metrics `optional:"true"`
}

func NewEngine(p EngineParam) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(p.Log.Named("http"), p.Metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	display       *config.DisplayConfigHolder
	readingSvc    readingdomain.Service
	allocationSvc allocationdomain.Service
	exporters     *export.Registry
	metrics       *telemetry.Metrics
}

type ServerParam struct {
	fx.In

	Engine        *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	Display       *config.DisplayConfigHolder
	ReadingSvc    readingdomain.Service
	AllocationSvc allocationdomain.Service
	Exporters     *export.Registry
	Metrics       *telemetry.Metrics `optional:"true"`
}

func NewServer(p ServerParam) *Server {
	s := &Server{
		engine:        p.Engine,
		cfg:           p.Cfg,
		log:           p.Log.Named("server"),
		display:       p.Display,
		readingSvc:    p.ReadingSvc,
		allocationSvc: p.AllocationSvc,
		exporters:     p.Exporters,
		metrics:       p.Metrics,
	}
	s.RegisterAPIRoutes()
	return s
}

// RegisterAPIRoutes mounts the v1 API on the engine.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.GET("/tenants", s.ListTenants)
	v1.POST("/tenants", s.AddTenant)
	v1.PATCH("/tenants/:id", s.UpdateTenant)
	v1.DELETE("/tenants/:id", s.RemoveTenant)

	v1.GET("/bill", s.GetBillParameters)
	v1.PUT("/bill", s.SetBillParameters)

	v1.GET("/statement", s.GetStatement)
	v1.GET("/statement/export/:format", s.ExportStatement)
}
