package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/dto"
	"github.com/crixfer/DIID-GS/internal/service"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// ScopeHandler exposes quarter scope selection endpoints.
type ScopeHandler struct {
	service *service.ScopeService
}

// NewScopeHandler constructs a scope handler.
func NewScopeHandler(svc *service.ScopeService) *ScopeHandler {
	return &ScopeHandler{service: svc}
}

// Select godoc
// @Summary Select the working quarter
// @Description Loads the quarter's collections into the scope snapshot; an empty quarter_id clears the scope
// @Tags Scope
// @Accept json
// @Produce json
// @Param payload body dto.ScopeSelectRequest true "Scope selection"
// @Success 200 {object} response.Envelope
// @Router /scope [put]
func (h *ScopeHandler) Select(c *gin.Context) {
	var req dto.ScopeSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	snapshot, err := h.service.Select(c.Request.Context(), req.QuarterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if snapshot.Partial() {
		meta = map[string]interface{}{"partial": true}
	}
	response.JSON(c, http.StatusOK, snapshot, nil, meta)
}

// Snapshot godoc
// @Summary Current scope snapshot
// @Tags Scope
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scope [get]
func (h *ScopeHandler) Snapshot(c *gin.Context) {
	snapshot := h.service.Snapshot()
	response.JSON(c, http.StatusOK, snapshot, nil)
}
