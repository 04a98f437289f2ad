package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
)

type updateTenantRequest struct {
	Name     *string          `json:"name,omitempty"`
	Previous *decimal.Decimal `json:"previous,omitempty"`
	Current  *decimal.Decimal `json:"current,omitempty"`
}

func (s *Server) ListTenants(c *gin.Context) {
	resp, err := s.readingSvc.ListTenants(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddTenant(c *gin.Context) {
	resp, err := s.readingSvc.AddTenant(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTenant(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.readingSvc.UpdateTenant(c.Request.Context(), readingdomain.UpdateRequest{
		ID:       id,
		Name:     req.Name,
		Previous: req.Previous,
		Current:  req.Current,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveTenant(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.readingSvc.RemoveTenant(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
