package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/service"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// CalendarHandler exposes calendar note endpoints.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs a calendar handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// Agenda godoc
// @Summary Quarter calendar with holiday overlay
// @Tags Calendar
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/calendar [get]
func (h *CalendarHandler) Agenda(c *gin.Context) {
	agenda, err := h.service.Agenda(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agenda, nil)
}

// CreateNote godoc
// @Summary Create calendar note
// @Tags Calendar
// @Accept json
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param payload body service.CreateCalendarNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Router /quarters/{quarterId}/calendar/notes [post]
func (h *CalendarHandler) CreateNote(c *gin.Context) {
	var req service.CreateCalendarNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	note, err := h.service.CreateNote(c.Request.Context(), c.Param("quarterId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateNote godoc
// @Summary Update calendar note
// @Tags Calendar
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param payload body service.UpdateCalendarNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Router /calendar/notes/{id} [put]
func (h *CalendarHandler) UpdateNote(c *gin.Context) {
	var req service.UpdateCalendarNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	note, err := h.service.UpdateNote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// DeleteNote godoc
// @Summary Delete calendar note
// @Tags Calendar
// @Produce json
// @Param id path string true "Note ID"
// @Success 204
// @Router /calendar/notes/{id} [delete]
func (h *CalendarHandler) DeleteNote(c *gin.Context) {
	if err := h.service.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
