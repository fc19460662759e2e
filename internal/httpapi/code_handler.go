package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/service"
)

type CodeHandler struct {
	codes *service.AccessCodeService
}

func NewCodeHandler(codes *service.AccessCodeService) *CodeHandler {
	return &CodeHandler{codes: codes}
}

type createCodeRequest struct {
	Code      string     `json:"code"`
	MaxUses   *int       `json:"max_uses"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type codeResponse struct {
	model.AccessCode
	EffectiveStatus model.CodeStatus `json:"effective_status"`
}

func (h *CodeHandler) Create(c *gin.Context) {
	labID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}
	var req createCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	code, err := h.codes.Create(c.Request.Context(), labID, req.Code, req.MaxUses, req.ExpiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, codeResponse{AccessCode: *code, EffectiveStatus: code.EffectiveStatus()})
}

func (h *CodeHandler) List(c *gin.Context) {
	labID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid laboratory id"})
		return
	}

	codes, err := h.codes.ListByLaboratory(c.Request.Context(), labID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	out := make([]codeResponse, 0, len(codes))
	for _, code := range codes {
		out = append(out, codeResponse{AccessCode: code, EffectiveStatus: code.StatusAt(now)})
	}
	c.JSON(http.StatusOK, gin.H{"codes": out})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *CodeHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code id"})
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.codes.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CodeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code id"})
		return
	}
	if err := h.codes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
