package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assurdoc/internal/service"
)

// InsurerHandler handles insurer reference data and per-insurer reporting
// endpoints.
type InsurerHandler struct {
	insurerService  service.InsurerService
	analysisService service.AnalysisService
	statsService    service.StatsService
}

// NewInsurerHandler creates a new InsurerHandler.
func NewInsurerHandler(insurerService service.InsurerService, analysisService service.AnalysisService, statsService service.StatsService) *InsurerHandler {
	return &InsurerHandler{insurerService: insurerService, analysisService: analysisService, statsService: statsService}
}

// Create handles POST /api/v1/insurers
// @Summary Create an insurer
// @Description Register an insurer with its covered zones and countries; an existing insurer with the same name is updated
// @Tags insurers
// @Accept json
// @Produce json
// @Param request body service.CreateInsurerInput true "Insurer definition"
// @Success 201 {object} Response{data=domain.Insurer} "Insurer created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /insurers [post]
func (h *InsurerHandler) Create(c *gin.Context) {
	var input service.CreateInsurerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	insurer, err := h.insurerService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, insurer)
}

// List handles GET /api/v1/insurers
// @Summary List insurers
// @Description Return all registered insurers ordered by name
// @Tags insurers
// @Produce json
// @Success 200 {object} Response{data=[]domain.Insurer} "Insurers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /insurers [get]
func (h *InsurerHandler) List(c *gin.Context) {
	insurers, err := h.insurerService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, insurers)
}

// Get handles GET /api/v1/insurers/:id
// @Summary Get an insurer
// @Tags insurers
// @Produce json
// @Param id path string true "Insurer ID"
// @Success 200 {object} Response{data=domain.Insurer} "Insurer"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Insurer not found"
// @Security BearerAuth
// @Router /insurers/{id} [get]
func (h *InsurerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid insurer id format")
		return
	}

	insurer, err := h.insurerService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, insurer)
}

// ListAnalyses handles GET /api/v1/insurers/:id/analyses
// @Summary List analyses routed to an insurer
// @Description Return analyses routed to the insurer, newest first, optionally filtered by avis
// @Tags insurers
// @Produce json
// @Param id path string true "Insurer ID"
// @Param avis query string false "Filter by avis: favorable, reserve, defavorable or rejet_fraude"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.DemandeAnalysis,meta=PagMeta} "Analyses"
// @Failure 400 {object} ErrorResponseBody "Unknown avis filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Insurer not found"
// @Security BearerAuth
// @Router /insurers/{id}/analyses [get]
func (h *InsurerHandler) ListAnalyses(c *gin.Context) {
	offset, limit := parsePagination(c)

	analyses, total, err := h.analysisService.ListByInsurer(c.Request.Context(), c.Param("id"), c.Query("avis"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Stats handles GET /api/v1/insurers/:id/stats
// @Summary Get insurer statistics
// @Description Return aggregate analysis counts and average scores for an insurer
// @Tags insurers
// @Produce json
// @Param id path string true "Insurer ID"
// @Success 200 {object} Response{data=domain.InsurerStats} "Statistics"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Insurer not found"
// @Security BearerAuth
// @Router /insurers/{id}/stats [get]
func (h *InsurerHandler) Stats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid insurer id format")
		return
	}

	stats, err := h.statsService.InsurerStats(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
