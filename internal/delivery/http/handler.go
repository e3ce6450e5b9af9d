package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"faral-orders/internal/service"
)

type Handler struct {
	svc service.Intake
}

func NewHandler(s service.Intake) *Handler {
	return &Handler{svc: s}
}

// statusResponse is the envelope every intake response carries. The HTTP
// status does not distinguish outcomes; callers inspect the status field.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/orders", h.SubmitOrder)
		api.GET("/worklist", h.GetWorklist)
		api.GET("/orders/:partition", h.GetPartitionOrders)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
