package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func dashboardHandler(svc DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		stats, err := svc.Summary(c.Request.Context(), u.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"stats":          stats,
			"revenueDisplay": formatMYR(stats.Revenue),
		})
	}
}
