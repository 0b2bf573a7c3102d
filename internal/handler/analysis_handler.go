package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assurdoc/internal/domain"
	"assurdoc/internal/middleware"
	"assurdoc/internal/service"
	"assurdoc/internal/views"
)

// AnalysisHandler handles demande submission, task polling and result
// retrieval endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Submit handles POST /api/v1/analyses
// @Summary Submit a demande for analysis
// @Description Upload one or more documents (PDF or text, max 20MB each) and enqueue the demande for asynchronous analysis
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Documents of the demande (repeatable)"
// @Param demande_id formData string false "Demande identifier; generated when omitted"
// @Success 202 {object} Response{data=SubmitResponse} "Analysis enqueued"
// @Failure 400 {object} ErrorResponseBody "No documents or unsupported file type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 503 {object} ErrorResponseBody "Queue full"
// @Security BearerAuth
// @Router /analyses [post]
func (h *AnalysisHandler) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		HandleError(c, domain.ErrNoDocuments)
		return
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		f, openErr := header.Open()
		if openErr != nil {
			HandleError(c, domain.ErrUnreadableFile)
			return
		}
		data, readErr := io.ReadAll(f)
		_ = f.Close()
		if readErr != nil {
			HandleError(c, domain.ErrUnreadableFile)
			return
		}
		files = append(files, service.UploadedFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	demandeID := c.PostForm("demande_id")
	if demandeID == "" {
		demandeID = uuid.NewString()
	}

	taskID, err := h.analysisService.Submit(c.Request.Context(), demandeID, files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, SubmitResponse{TaskID: taskID, DemandeID: demandeID})
}

// TaskStatus handles GET /api/v1/analyses/tasks/:taskID
// @Summary Poll an analysis task
// @Description Return the queue status of a submitted analysis task; the result is embedded once the task is done
// @Tags analyses
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} Response{data=queue.Task} "Task status"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Task not found"
// @Security BearerAuth
// @Router /analyses/tasks/{taskID} [get]
func (h *AnalysisHandler) TaskStatus(c *gin.Context) {
	task, err := h.analysisService.TaskStatus(c.Param("taskID"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, task)
}

// Get handles GET /api/v1/analyses/:demandeID
// @Summary Get an analysis
// @Description Return the full analysis of a demande
// @Tags analyses
// @Produce json
// @Param demandeID path string true "Demande ID"
// @Success 200 {object} Response{data=domain.DemandeAnalysis} "Analysis"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Security BearerAuth
// @Router /analyses/{demandeID} [get]
func (h *AnalysisHandler) Get(c *gin.Context) {
	analysis, err := h.analysisService.Get(c.Request.Context(), c.Param("demandeID"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

// View handles GET /api/v1/analyses/:demandeID/view
// @Summary Get a role-scoped view of an analysis
// @Description Project the analysis to the caller's role, or to the role query parameter when the caller is an admin
// @Tags analyses
// @Produce json
// @Param demandeID path string true "Demande ID"
// @Param role query string false "View role (admin only): assureur, medecin, technicien or agent"
// @Success 200 {object} Response "Role-scoped view"
// @Failure 400 {object} ErrorResponseBody "Unknown role"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Security BearerAuth
// @Router /analyses/{demandeID}/view [get]
func (h *AnalysisHandler) View(c *gin.Context) {
	role := domain.UserRole(middleware.GetRole(c))
	if requested := c.Query("role"); requested != "" {
		if role != domain.RoleAdmin && requested != string(role) {
			RespondError(c, http.StatusForbidden, "FORBIDDEN", "only admins can request another role's view")
			return
		}
		role = domain.UserRole(requested)
	}
	if role == domain.RoleAdmin {
		// Admins without an explicit role get the widest projection.
		role = domain.RoleAgent
	}

	formatter, err := views.For(role)
	if err != nil {
		HandleError(c, err)
		return
	}

	analysis, err := h.analysisService.Get(c.Request.Context(), c.Param("demandeID"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, formatter.Project(analysis))
}

// Notifications handles GET /api/v1/analyses/:demandeID/notifications
// @Summary List insurer notifications for a demande
// @Description Return the routing notification records emitted for a demande
// @Tags analyses
// @Produce json
// @Param demandeID path string true "Demande ID"
// @Success 200 {object} Response{data=[]domain.InsurerNotification} "Notifications"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /analyses/{demandeID}/notifications [get]
func (h *AnalysisHandler) Notifications(c *gin.Context) {
	notifications, err := h.analysisService.Notifications(c.Request.Context(), c.Param("demandeID"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, notifications)
}
