package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"github.com/tewankitchen/pos-api/pkg/export"
	"go.uber.org/zap"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
	topItems      int
	log           *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService, topItems int, log *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService, topItems: topItems, log: log}
}

// day parses ?date=YYYY-MM-DD in the store timezone, defaulting to today.
func (h *ReportHandler) day(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	d, err := time.ParseInLocation("2006-01-02", raw, h.reportService.Location())
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

// Daily returns the sales summary of one day
func (h *ReportHandler) Daily(c *gin.Context) {
	day, ok := h.day(c)
	if !ok {
		return
	}
	top := h.topItems
	if raw := c.Query("top"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.BadRequest(c, "Invalid top")
			return
		}
		top = v
	}

	stats, err := h.reportService.DailyStats(c.Request.Context(), day, top)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Daily report retrieved successfully", response.NewDailyStatsResponse(stats))
}

// Export downloads the day's sales as an XLSX workbook
func (h *ReportHandler) Export(c *gin.Context) {
	day, ok := h.day(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.DailyXLSX(c.Request.Context(), day)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}
