package handlers

import (
	"net/http"

	"shopledger/internal/reports"

	"github.com/gin-gonic/gin"
)

func GetDashboard(svc *reports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		dashboard, err := svc.Dashboard()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

func ExportReportPDF(svc *reports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := svc.ExportPDF()
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=report.pdf")
		c.Data(http.StatusOK, "application/pdf", payload)
	}
}
