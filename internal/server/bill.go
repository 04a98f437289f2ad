package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
)

type setBillParametersRequest struct {
	TotalUnits  decimal.Decimal `json:"total_units"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (s *Server) GetBillParameters(c *gin.Context) {
	resp, err := s.readingSvc.GetBillParameters(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetBillParameters(c *gin.Context) {
	var req setBillParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.readingSvc.SetBillParameters(c.Request.Context(), readingdomain.SetBillParametersRequest{
		TotalUnits:  req.TotalUnits,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
