package httpapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/realtime"
	"github.com/solhub/admin-api/internal/service"
)

type LaboratoryHandler struct {
	labs    *service.LaboratoryService
	watcher *realtime.Watcher

	mu         sync.Mutex
	liveStatus string
}

func NewLaboratoryHandler(labs *service.LaboratoryService, watcher *realtime.Watcher) *LaboratoryHandler {
	return &LaboratoryHandler{labs: labs, watcher: watcher}
}

type laboratoryRequest struct {
	Slug     string          `json:"slug" binding:"omitempty,labslug"`
	Name     string          `json:"name" binding:"required"`
	Status   string          `json:"status" binding:"required,oneof=active inactive trial"`
	Branding model.Branding  `json:"branding"`
	Config   model.LabConfig `json:"config"`
}

func (h *LaboratoryHandler) Create(c *gin.Context) {
	var req laboratoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lab := &model.Laboratory{
		Slug:     req.Slug,
		Name:     req.Name,
		Status:   req.Status,
		Branding: req.Branding,
		Config:   req.Config,
	}
	if err := h.labs.Create(c.Request.Context(), lab); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lab)
}

func (h *LaboratoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	lab, err := h.labs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lab)
}

func (h *LaboratoryHandler) List(c *gin.Context) {
	labs, err := h.labs.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"laboratories": labs})
}

// Live serves the reconciled list view. A status change swaps the live
// filter and reloads the snapshot without resubscribing to the feed.
func (h *LaboratoryHandler) Live(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	h.mu.Lock()
	if status != h.liveStatus {
		rec := h.watcher.Reconciler()
		rec.SetFilter(realtime.StatusFilter(status))
		labs, err := h.labs.List(c.Request.Context(), "")
		if err != nil {
			h.mu.Unlock()
			respondError(c, err)
			return
		}
		rec.Reset(labs)
		h.liveStatus = status
	}
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"laboratories": h.watcher.Reconciler().Snapshot()})
}

func (h *LaboratoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	var req laboratoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lab, err := h.labs.Update(c.Request.Context(), id, &model.Laboratory{
		Slug:     req.Slug,
		Name:     req.Name,
		Status:   req.Status,
		Branding: req.Branding,
		Config:   req.Config,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lab)
}

func (h *LaboratoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	if err := h.labs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type toggleFeatureRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *LaboratoryHandler) ToggleFeature(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	var req toggleFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.labs.ToggleFeature(c.Request.Context(), id, c.Param("key"), *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LaboratoryHandler) Features(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	features, err := h.labs.ResolveLabFeatures(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": features})
}

func (h *LaboratoryHandler) Modules(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	modules, err := h.labs.ResolveLabModules(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

func (h *LaboratoryHandler) UpdateModuleConfig(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	var cfg model.ModuleConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.labs.UpdateModuleConfig(c.Request.Context(), id, c.Param("name"), cfg); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
