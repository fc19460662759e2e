package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/service"
)

type FeatureHandler struct {
	features *service.FeatureService
}

func NewFeatureHandler(features *service.FeatureService) *FeatureHandler {
	return &FeatureHandler{features: features}
}

type createFeatureRequest struct {
	Key          string `json:"key" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required,oneof=core premium addon"`
	RequiredPlan string `json:"required_plan" binding:"required,oneof=free basic pro enterprise"`
	IsActive     *bool  `json:"is_active"`
}

func (h *FeatureHandler) List(c *gin.Context) {
	entries, err := h.features.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": entries})
}

func (h *FeatureHandler) Create(c *gin.Context) {
	var req createFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry := &model.FeatureCatalogEntry{
		Key:          req.Key,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		RequiredPlan: req.RequiredPlan,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := h.features.Create(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *FeatureHandler) Delete(c *gin.Context) {
	if err := h.features.Delete(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
