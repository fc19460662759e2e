package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/service"
)

type ModuleHandler struct {
	modules *service.ModuleService
}

func NewModuleHandler(modules *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{modules: modules}
}

type createModuleRequest struct {
	FeatureKey string                          `json:"feature_key" binding:"required"`
	Name       string                          `json:"name" binding:"required,labslug"`
	Fields     map[string]model.FieldTemplate  `json:"fields" binding:"required"`
	Actions    map[string]model.ActionTemplate `json:"actions"`
	Settings   map[string]any                  `json:"settings"`
}

func (h *ModuleHandler) List(c *gin.Context) {
	entries, err := h.modules.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": entries})
}

func (h *ModuleHandler) Create(c *gin.Context) {
	var req createModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry := &model.ModuleCatalogEntry{
		FeatureKey: req.FeatureKey,
		Name:       req.Name,
		Fields:     req.Fields,
		Actions:    req.Actions,
		Settings:   req.Settings,
	}
	if err := h.modules.Create(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ModuleHandler) Delete(c *gin.Context) {
	if err := h.modules.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
