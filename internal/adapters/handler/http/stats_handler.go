package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
)

// maxRangeDays bounds the stats window, both ends included.
const maxRangeDays = 366

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/habits/:id", h.HabitStats)
		stats.GET("/daily", h.Daily)
		stats.GET("/overview", h.Overview)
	}
}

// statsRange reads start_date/end_date. The default is the week ending today.
// An inverted range is passed through and yields zero statistics.
func statsRange(c *gin.Context, userID string) (services.StatsInput, bool) {
	end, ok := dateQuery(c, "end_date", domain.Today())
	if !ok {
		return services.StatsInput{}, false
	}
	start, ok := dateQuery(c, "start_date", end.AddDays(-6))
	if !ok {
		return services.StatsInput{}, false
	}

	if domain.DaysBetween(start, end)+1 > maxRangeDays {
		badRequest(c, "date range too large, max 366 days allowed")
		return services.StatsInput{}, false
	}

	return services.StatsInput{UserID: userID, StartDate: start, EndDate: end}, true
}

// HabitStats godoc
// @Summary  Completion statistics of one habit over a range
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    id         path  string true  "habit id"
// @Param    start_date query string false "YYYY-MM-DD"
// @Param    end_date   query string false "YYYY-MM-DD"
// @Success  200 {object} progression.HabitStats
// @Router   /stats/habits/{id} [get]
func (h *StatsHandler) HabitStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	input, ok := statsRange(c, userID)
	if !ok {
		return
	}

	stats, err := h.svc.HabitStats(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Daily godoc
// @Summary  Today's plan: every active habit with dose and status
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "YYYY-MM-DD, defaults to today"
// @Success  200 {object} services.DailyStats
// @Router   /stats/daily [get]
func (h *StatsHandler) Daily(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", domain.Today())
	if !ok {
		return
	}

	stats, err := h.svc.Daily(c.Request.Context(), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Overview godoc
// @Summary  Per-habit statistics and the overall completion rate
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    start_date query string false "YYYY-MM-DD"
// @Param    end_date   query string false "YYYY-MM-DD"
// @Success  200 {object} progression.Overview
// @Router   /stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	input, ok := statsRange(c, userID)
	if !ok {
		return
	}

	ov, err := h.svc.Overview(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}
