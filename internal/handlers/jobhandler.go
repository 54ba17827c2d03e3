package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/services"
)

type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{
		LLMService: llm,
		JobService: j,
	}
}

// ParseJob is the POST /jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	extracted, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		if errors.Is(err, services.ErrLLMDisabled) {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    extracted,
	})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.CreateJob(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListJobs is GET /jobs?q=&location=&include_closed=&limit=
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dtos.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	jobs, err := h.JobService.ListJobs(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	job, err := h.JobService.CloseJob(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
