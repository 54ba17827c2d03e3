package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sps2604/Prosearch-sub001/internal/services"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateApplication), errors.Is(err, services.ErrJobClosed):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrLLMDisabled):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

type Handlers struct {
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Profiles     *ProfileHandler
	// optional, guards the professional search route
	SearchLimiter *IPRateLimiter
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		// Job Routes
		api.POST("/jobs/extract", h.Jobs.ParseJob)
		api.POST("/jobs", h.Jobs.CreateJob)
		api.GET("/jobs", h.Jobs.ListJobs)
		api.POST("/jobs/:id/close", h.Jobs.CloseJob)

		// Application Routes
		api.POST("/jobs/:id/applications", h.Applications.Apply)
		api.GET("/jobs/:id/applications", h.Applications.ListForJob)
		api.PATCH("/applications/:id/status", h.Applications.UpdateStatus)

		// Profile Routes
		api.POST("/professionals", h.Profiles.CreateProfessional)
		searchChain := []gin.HandlerFunc{h.Profiles.SearchProfessionals}
		if h.SearchLimiter != nil {
			searchChain = append([]gin.HandlerFunc{h.SearchLimiter.RateLimit()}, searchChain...)
		}
		api.GET("/professionals/search", searchChain...)
		api.GET("/professionals/by-name/:name", h.Profiles.GetProfessionalByName)
		api.GET("/professionals/:id", h.Profiles.GetProfessional)
		api.POST("/businesses", h.Profiles.CreateBusiness)
	}
}
