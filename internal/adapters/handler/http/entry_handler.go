package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
)

const defaultEntryWindowDays = 30

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

type checkInRequest struct {
	HabitID string      `json:"habit_id" binding:"required"`
	Date    domain.Date `json:"date" swaggertype:"string" example:"2025-01-08"`
	Value   *float64    `json:"value" binding:"required"`
	Notes   *string     `json:"notes"`
}

type undoRequest struct {
	HabitID string      `json:"habit_id" binding:"required"`
	Date    domain.Date `json:"date" swaggertype:"string" example:"2025-01-08"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("/check-in", h.CheckIn)
		entries.POST("/undo", h.Undo)
		entries.GET("", h.ListByHabit)
		entries.GET("/:id", h.Get)
		entries.DELETE("/:id", h.Delete)
	}
}

// CheckIn godoc
// @Summary  Record a value for a day
// @Description Replace habits store the value as the day's total; cumulative
// @Description habits append it as a signed delta.
// @Tags     entries
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body checkInRequest true "check-in"
// @Success  200 {object} services.CheckInResult
// @Failure  400,403,404,409 {object} map[string]string
// @Router   /entries/check-in [post]
func (h *EntryHandler) CheckIn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.CheckIn(c.Request.Context(), services.CheckInInput{
		HabitID: req.HabitID,
		UserID:  userID,
		Date:    req.Date,
		Value:   *req.Value,
		Notes:   req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Undo godoc
// @Summary  Drop the last operation of a cumulative entry
// @Tags     entries
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body undoRequest true "entry day"
// @Success  200 {object} services.CheckInResult
// @Failure  400 {object} map[string]string
// @Router   /entries/undo [post]
func (h *EntryHandler) Undo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req undoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.Undo(c.Request.Context(), services.UndoInput{
		HabitID: req.HabitID,
		UserID:  userID,
		Date:    req.Date,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EntryHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByHabit godoc
// @Summary  Entries of a habit, newest first
// @Tags     entries
// @Produce  json
// @Security BearerAuth
// @Param    habit_id query string true  "habit id"
// @Param    from     query string false "YYYY-MM-DD, defaults to 30 days before to"
// @Param    to       query string false "YYYY-MM-DD, defaults to today"
// @Success  200 {array} domain.DailyEntry
// @Router   /entries [get]
func (h *EntryHandler) ListByHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habitID := c.Query("habit_id")
	if habitID == "" {
		badRequest(c, "habit_id is required")
		return
	}

	to, ok := dateQuery(c, "to", domain.Today())
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from", to.AddDays(-defaultEntryWindowDays))
	if !ok {
		return
	}

	list, err := h.svc.ListByHabitID(c.Request.Context(), habitID, userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
