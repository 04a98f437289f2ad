package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) ExportStatement(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.Param("format")))

	exporter, err := s.exporters.Get(format)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	statement, err := s.allocationSvc.Compute(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	artifact, err := exporter.Render(c.Request.Context(), *statement)
	if err != nil {
		s.metrics.ExportAttempt(format, "error")
		s.log.Error("export failed",
			zap.String("format", format),
			zap.Error(err),
		)
		AbortWithError(c, ErrExportFailed)
		return
	}

	body, err := io.ReadAll(artifact)
	if err != nil {
		s.metrics.ExportAttempt(format, "error")
		AbortWithError(c, ErrExportFailed)
		return
	}
	s.metrics.ExportAttempt(format, "ok")

	filename := fmt.Sprintf("%s-%s.%s",
		s.display.Get().FilenamePrefix,
		statement.GeneratedAt.Format("20060102-150405"),
		exporter.Extension(),
	)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exporter.ContentType(), body)
}
