package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(a *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a}
}

// Apply is POST /jobs/:id/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.ApplicationService.Apply(jobID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	jobID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.ApplicationService.ListForJob(jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// UpdateStatus is PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.ApplicationService.UpdateStatus(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
