package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"assurdoc/internal/csvexport"
	"assurdoc/internal/service"
)

// StatsHandler handles reporting endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// sinceDays reads the days query parameter, defaulting to a week.
func sinceDays(c *gin.Context) time.Time {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	return time.Now().UTC().AddDate(0, 0, -days)
}

// RecentAnalyses handles GET /api/v1/analyses/recent
// @Summary List recent analyses
// @Description Return analyses created in the last N days, newest first
// @Tags stats
// @Produce json
// @Param days query int false "Number of days to look back" default(7)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.DemandeAnalysis,meta=PagMeta} "Recent analyses"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /analyses/recent [get]
func (h *StatsHandler) RecentAnalyses(c *gin.Context) {
	offset, limit := parsePagination(c)

	analyses, total, err := h.statsService.RecentAnalyses(c.Request.Context(), sinceDays(c), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportCSV handles GET /api/v1/analyses/export.csv
// @Summary Export recent analyses as CSV
// @Description Stream analyses created in the last N days as a UTF-8 CSV file with BOM
// @Tags stats
// @Produce text/csv
// @Param days query int false "Number of days to look back" default(7)
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /analyses/export.csv [get]
func (h *StatsHandler) ExportCSV(c *gin.Context) {
	since := sinceDays(c)

	// Export is unbounded on purpose; the repository caps the page size.
	analyses, _, err := h.statsService.RecentAnalyses(c.Request.Context(), since, 0, 10000)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("analyses")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		log.Printf("statsHandler.ExportCSV: writing BOM: %v", err)
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("statsHandler.ExportCSV: writing header: %v", err)
		return
	}
	if err := w.WriteAnalyses(analyses); err != nil {
		log.Printf("statsHandler.ExportCSV: writing rows: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("statsHandler.ExportCSV: flushing: %v", err)
	}
}
