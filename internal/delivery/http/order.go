package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"faral-orders/internal/models"
	"faral-orders/internal/service"
)

// SubmitOrder accepts one order submission. Any outcome answers HTTP 200
// with the status envelope; a status of "error" means nothing was recorded.
func (h *Handler) SubmitOrder(c *gin.Context) {
	var o models.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusOK, statusResponse{Status: "error", Message: "malformed payload: " + err.Error()})
		return
	}

	if err := h.svc.SubmitOrder(c.Request.Context(), o); err != nil {
		c.JSON(http.StatusOK, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "Order submitted successfully"})
}

type worklistResponse struct {
	Totals map[string]int `json:"totals"`
}

// GetWorklist returns the current kitchen-prep totals.
func (h *Handler) GetWorklist(c *gin.Context) {
	totals, err := h.svc.Worklist(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, worklistResponse{Totals: totals})
}

type partitionOrdersResponse struct {
	Rows [][]string `json:"rows"`
}

// GetPartitionOrders returns the recorded rows of one partition's ledger.
func (h *Handler) GetPartitionOrders(c *gin.Context) {
	name := strings.TrimSpace(c.Param("partition"))
	rows, err := h.svc.PartitionRows(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			newErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, partitionOrdersResponse{Rows: rows})
}
