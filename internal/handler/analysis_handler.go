package handler

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srinathstart/HealthSyncAI/internal/export"
	"github.com/srinathstart/HealthSyncAI/internal/service"
)

// AnalysisHandler handles lab-report analysis endpoints.
type AnalysisHandler struct {
	svc service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(svc service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Analyze handles POST /api/v1/reports/analyze
// @Summary Analyze a PDF lab report
// @Accept multipart/form-data
// @Param file formData file true "PDF lab report"
// @Success 201 {object} APIResponse
// @Router /reports/analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.svc.AnalyzeUpload(c.Request.Context(), service.AnalyzeInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, report)
}

// List handles GET /api/v1/reports
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	reports, total, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, reports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/reports/:id
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	report, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// DownloadRaw handles GET /api/v1/reports/:id/raw
// Serves the extracted record as a pretty-printed JSON attachment.
func (h *AnalysisHandler) DownloadRaw(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	report, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if len(report.RawData) == 0 {
		RespondError(c, http.StatusNotFound, "RAW_DATA_NOT_AVAILABLE", "raw extraction did not complete for this report")
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, report.RawData, "", "  "); err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.RawArtifactName+`"`)
	c.Data(http.StatusOK, "application/json", pretty.Bytes())
}

// DownloadAnalysis handles GET /api/v1/reports/:id/analysis
// Serves the scoring JSON exactly as the model emitted it.
func (h *AnalysisHandler) DownloadAnalysis(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	report, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if len(report.AnalysisJSON) == 0 {
		RespondError(c, http.StatusNotFound, "ANALYSIS_NOT_AVAILABLE", "analysis output not available for this report")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.AnalysisArtifactName+`"`)
	c.Data(http.StatusOK, "application/json", report.AnalysisJSON)
}

// Graph handles GET /api/v1/reports/graph
func (h *AnalysisHandler) Graph(c *gin.Context) {
	points, err := h.svc.GraphSeries(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, points)
}

// Export handles GET /api/v1/reports/export
// Streams the parameter history as an XLSX workbook.
func (h *AnalysisHandler) Export(c *gin.Context) {
	points, err := h.svc.GraphSeries(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename()+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := export.WriteWorkbook(c.Writer, points); err != nil {
		// headers are gone; all we can do is log
		log.Printf("analysisHandler.Export: writing workbook: %v", err)
	}
}

func parseReportID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "report id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
