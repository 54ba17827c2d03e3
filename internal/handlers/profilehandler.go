package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/search"
	"github.com/sps2604/Prosearch-sub001/internal/services"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
	Directory      search.Directory
	// used when a search request carries no limit
	DefaultLimit int
}

func NewProfileHandler(p *services.ProfileService, dir search.Directory, defaultLimit int) *ProfileHandler {
	if defaultLimit <= 0 {
		defaultLimit = search.DefaultLimit
	}
	return &ProfileHandler{
		ProfileService: p,
		Directory:      dir,
		DefaultLimit:   defaultLimit,
	}
}

func (h *ProfileHandler) CreateProfessional(c *gin.Context) {
	var req dtos.ProfessionalCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	p, err := h.ProfileService.CreateProfessional(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create professional: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProfileHandler) CreateBusiness(c *gin.Context) {
	var req dtos.BusinessCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	b, err := h.ProfileService.CreateBusiness(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// SearchProfessionals is GET /professionals/search. It runs one search
// with no debounce; the outcome always has a results list and at most one
// of error or info.
func (h *ProfileHandler) SearchProfessionals(c *gin.Context) {
	var req dtos.ProfessionalSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	limit := h.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	criteria := search.NewCriteria(req.Query, req.Location, req.MinExperience, limit)

	out := search.Run(c.Request.Context(), h.Directory, criteria)
	c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) GetProfessional(c *gin.Context) {
	p, err := h.ProfileService.GetProfessional(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfessionalByName serves the path produced by name-keyed result
// selection, /profile/<name>.
func (h *ProfileHandler) GetProfessionalByName(c *gin.Context) {
	p, err := h.ProfileService.GetProfessionalByName(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
