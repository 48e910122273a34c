package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-diagnostics/internal/extract"
	"resume-diagnostics/internal/shared/server/middleware"
	"resume-diagnostics/internal/shared/server/respond"
)

// multipart framing allowance on top of the file limit
const formOverheadBytes = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.POST("/resumes/:id/reanalyze", h.reanalyze)
	rg.POST("/analyze", h.analyze)
	rg.POST("/jd-match", h.match)
	rg.POST("/roles", h.roles)
	rg.GET("/profile", h.profile)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxUploadBytes()+formOverheadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", ErrTooLarge.Error(), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	jd := c.PostForm("job_description")
	res, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file, jd)
	if err != nil {
		writeServiceError(c, err, "failed to analyze resume")
		return
	}

	c.Set(middleware.ResumeIDKey, res.ID)
	if res.ATSScore != nil {
		c.Set(middleware.ATSScoreKey, *res.ATSScore)
	}
	respond.Created(c, toResumeResponse(res, true))
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	c.Set(middleware.ResumeIDKey, id)

	res, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to fetch resume")
		return
	}

	respond.OK(c, toResumeResponse(res, true))
}

type reanalyzeRequest struct {
	JobDescription *string `json:"jobDescription"`
}

func (h *Handler) reanalyze(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	c.Set(middleware.ResumeIDKey, id)

	// the body is optional; without one the upload's job description is kept
	var req reanalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Reanalyze(c.Request.Context(), id, req.JobDescription)
	if err != nil {
		writeServiceError(c, err, "failed to reanalyze resume")
		return
	}

	if res.ATSScore != nil {
		c.Set(middleware.ATSScoreKey, *res.ATSScore)
	}
	respond.OK(c, toResumeResponse(res, true))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeServiceError(c, err, "failed to list resumes")
		return
	}

	resp := make([]ResumeResponse, 0, len(items))
	for _, res := range items {
		resp = append(resp, toResumeResponse(res, false))
	}
	respond.OK(c, gin.H{
		"items":  resp,
		"limit":  limit,
		"offset": offset,
	})
}

type analyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// analyze accepts empty resumeText; the result then carries the no-text advisory.
func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.AnalyzeText(c.Request.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		writeServiceError(c, err, "failed to analyze resume")
		return
	}

	c.Set(middleware.ATSScoreKey, result.ATSScore)
	respond.OK(c, toAnalysisResponse(result))
}

type matchRequest struct {
	ResumeText     string `json:"resumeText" binding:"required"`
	JobDescription string `json:"jobDescription" binding:"required"`
	Mode           string `json:"mode" binding:"omitempty,oneof=tokens skills"`
}

func (h *Handler) match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeText and jobDescription are required; mode must be tokens or skills", nil)
		return
	}

	result, err := h.Svc.Match(c.Request.Context(), req.ResumeText, req.JobDescription, req.Mode)
	if err != nil {
		writeServiceError(c, err, "failed to match job description")
		return
	}

	respond.OK(c, toMatchResponse(result))
}

type rolesRequest struct {
	Skills          []string `json:"skills"`
	ResumeText      string   `json:"resumeText"`
	ExperienceYears *float64 `json:"experienceYears" binding:"omitempty,gte=0"`
}

func (h *Handler) roles(c *gin.Context) {
	var req rolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.Roles(c.Request.Context(), req.Skills, req.ResumeText, req.ExperienceYears)
	if err != nil {
		writeServiceError(c, err, "failed to recommend roles")
		return
	}

	respond.OK(c, toRolesResponse(rec))
}

func (h *Handler) profile(c *gin.Context) {
	respond.OK(c, h.Svc.Engine.Profile())
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, "unsupported_type", "only PDF, DOCX and plain text files are supported", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
