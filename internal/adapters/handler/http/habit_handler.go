package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
)

type HabitHandler struct {
	svc        *services.HabitService
	milestones *services.MilestoneService
}

func NewHabitHandler(svc *services.HabitService, milestones *services.MilestoneService) *HabitHandler {
	return &HabitHandler{
		svc:        svc,
		milestones: milestones,
	}
}

type createHabitRequest struct {
	Title       string              `json:"title" binding:"required"`
	Direction   domain.Direction    `json:"direction" binding:"required"`
	StartValue  float64             `json:"start_value"`
	Unit        string              `json:"unit"`
	Progression *domain.Progression `json:"progression"`
	TargetValue *float64            `json:"target_value"`
	EntryMode   domain.EntryMode    `json:"entry_mode"`
	StartDate   domain.Date         `json:"start_date" swaggertype:"string" example:"2025-01-01"`
}

type updateHabitRequest struct {
	Title       *string             `json:"title"`
	Direction   *domain.Direction   `json:"direction"`
	StartValue  *float64            `json:"start_value"`
	Unit        *string             `json:"unit"`
	Progression *domain.Progression `json:"progression"`
	TargetValue *float64            `json:"target_value"`
	ClearTarget bool                `json:"clear_target"`
	EntryMode   *domain.EntryMode   `json:"entry_mode"`
	Version     int                 `json:"version" binding:"required"`
}

// lifecycleRequest is optional; a missing date means today.
type lifecycleRequest struct {
	Date domain.Date `json:"date" swaggertype:"string" example:"2025-02-01"`
}

type milestonesResponse struct {
	HabitID    string                `json:"habit_id"`
	Milestones []domain.MilestoneKey `json:"milestones"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)

		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
		habits.POST("/:id/pause", h.Pause)
		habits.POST("/:id/resume", h.Resume)

		habits.GET("/:id/dose", h.Dose)
		habits.GET("/:id/compound", h.Compound)
		habits.GET("/:id/milestones", h.Milestones)
	}
}

// Create godoc
// @Summary  Create a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body createHabitRequest true "habit"
// @Success  201 {object} domain.Habit
// @Failure  400 {object} map[string]string
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:      userID,
		Title:       req.Title,
		Direction:   req.Direction,
		StartValue:  req.StartValue,
		Unit:        req.Unit,
		Progression: req.Progression,
		TargetValue: req.TargetValue,
		EntryMode:   req.EntryMode,
		StartDate:   req.StartDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary  List the caller's habits, archived ones included
// @Tags     habits
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.Habit
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Update godoc
// @Summary  Partially update a habit (optimistic version check)
// @Tags     habits
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string             true "habit id"
// @Param    body body updateHabitRequest true "changes"
// @Success  200 {object} domain.Habit
// @Failure  400,404,409 {object} map[string]string
// @Router   /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		Direction:   req.Direction,
		StartValue:  req.StartValue,
		Unit:        req.Unit,
		Progression: req.Progression,
		TargetValue: req.TargetValue,
		ClearTarget: req.ClearTarget,
		EntryMode:   req.EntryMode,
		Version:     req.Version,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
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

func lifecycleDate(c *gin.Context) (domain.Date, bool) {
	var req lifecycleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return domain.Date{}, false
		}
	}
	if req.Date.IsZero() {
		return domain.Today(), true
	}
	return req.Date, true
}

type transitionFunc func(c *gin.Context, id, userID string) (*domain.Habit, error)

func (h *HabitHandler) lifecycle(c *gin.Context, apply transitionFunc) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habit, err := apply(c, c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Archive godoc
// @Summary  Archive a habit from a date on
// @Tags     habits
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string           true  "habit id"
// @Param    body body lifecycleRequest false "effective date"
// @Success  200 {object} domain.Habit
// @Router   /habits/{id}/archive [post]
func (h *HabitHandler) Archive(c *gin.Context) {
	on, ok := lifecycleDate(c)
	if !ok {
		return
	}
	h.lifecycle(c, func(c *gin.Context, id, userID string) (*domain.Habit, error) {
		return h.svc.Archive(c.Request.Context(), id, userID, on)
	})
}

func (h *HabitHandler) Restore(c *gin.Context) {
	h.lifecycle(c, func(c *gin.Context, id, userID string) (*domain.Habit, error) {
		return h.svc.Restore(c.Request.Context(), id, userID)
	})
}

// Pause godoc
// @Summary  Pause a habit; paused days neither count nor break streaks
// @Tags     habits
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string           true  "habit id"
// @Param    body body lifecycleRequest false "effective date"
// @Success  200 {object} domain.Habit
// @Failure  409 {object} map[string]string
// @Router   /habits/{id}/pause [post]
func (h *HabitHandler) Pause(c *gin.Context) {
	on, ok := lifecycleDate(c)
	if !ok {
		return
	}
	h.lifecycle(c, func(c *gin.Context, id, userID string) (*domain.Habit, error) {
		return h.svc.Pause(c.Request.Context(), id, userID, on)
	})
}

func (h *HabitHandler) Resume(c *gin.Context) {
	on, ok := lifecycleDate(c)
	if !ok {
		return
	}
	h.lifecycle(c, func(c *gin.Context, id, userID string) (*domain.Habit, error) {
		return h.svc.Resume(c.Request.Context(), id, userID, on)
	})
}

// Dose godoc
// @Summary  Prescribed dose for a date, optionally with the following schedule
// @Tags     habits
// @Produce  json
// @Security BearerAuth
// @Param    id   path  string true  "habit id"
// @Param    date query string false "YYYY-MM-DD, defaults to today"
// @Param    days query int    false "schedule length (max 366)"
// @Success  200 {object} services.DoseResult
// @Router   /habits/{id}/dose [get]
func (h *HabitHandler) Dose(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", domain.Today())
	if !ok {
		return
	}
	days, ok := intQuery(c, "days")
	if !ok {
		return
	}

	res, err := h.svc.Dose(c.Request.Context(), c.Param("id"), userID, date, days)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Compound godoc
// @Summary  Growth between the start value and the dose on a date
// @Tags     habits
// @Produce  json
// @Security BearerAuth
// @Param    id   path  string true  "habit id"
// @Param    date query string false "YYYY-MM-DD, defaults to today"
// @Success  200 {object} progression.CompoundEffect
// @Router   /habits/{id}/compound [get]
func (h *HabitHandler) Compound(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", domain.Today())
	if !ok {
		return
	}

	ce, err := h.svc.CompoundEffect(c.Request.Context(), c.Param("id"), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ce)
}

func (h *HabitHandler) Milestones(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habitID := c.Param("id")
	keys, err := h.milestones.List(c.Request.Context(), habitID, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestonesResponse{HabitID: habitID, Milestones: keys})
}
