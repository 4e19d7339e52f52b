package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
	"github.com/alessiogreco/weekblocks/internal/core/services"
)

type TrackerHandler struct {
	svc *services.TrackerService
}

func NewTrackerHandler(svc *services.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		svc: svc,
	}
}

type addGoalRequest struct {
	Label   string `json:"label" binding:"required"`
	Section string `json:"section" binding:"required"`
	Tasks   []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"tasks"`
}

type noteRequest struct {
	Text string `json:"text"`
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	tracker := router.Group("/tracker")
	{
		tracker.GET("", h.GetState)
		tracker.GET("/overview", h.GetOverview)
		tracker.GET("/week", h.GetWeekStatus)
		tracker.GET("/history", h.GetHistory)
		tracker.POST("/rollover", h.Rollover)
	}

	goals := router.Group("/goals")
	{
		goals.POST("", h.AddGoal)
		goals.POST("/:id/days/:day/tasks/:taskId/toggle", h.ToggleTask)
		goals.PUT("/:id/days/:day/note", h.SetNote)
	}
}

// parseDayIndex rejects anything outside the 0..6 window before the core is
// ever called: out-of-range day indexes are a caller bug by contract.
func parseDayIndex(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day > domain.DaysPerWeek-1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be an integer between 0 and 6"})
		return 0, false
	}
	return day, true
}

func (h *TrackerHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.State())
}

func (h *TrackerHandler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Overview())
}

func (h *TrackerHandler) GetWeekStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.WeekStatus())
}

func (h *TrackerHandler) GetHistory(c *gin.Context) {
	history := h.svc.History()
	if history == nil {
		history = []domain.WeekSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *TrackerHandler) ToggleTask(c *gin.Context) {
	day, ok := parseDayIndex(c)
	if !ok {
		return
	}

	goal, err := h.svc.ToggleTask(c.Param("id"), c.Param("taskId"), day)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal or task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *TrackerHandler) SetNote(c *gin.Context) {
	day, ok := parseDayIndex(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.SetNote(c.Param("id"), day, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *TrackerHandler) AddGoal(c *gin.Context) {
	var req addGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.AddGoalInput{
		Label:   req.Label,
		Section: req.Section,
	}
	for _, t := range req.Tasks {
		input.Tasks = append(input.Tasks, domain.Task{ID: t.ID, Label: t.Label})
	}

	goal, err := h.svc.AddGoal(input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalLabelEmpty),
			errors.Is(err, domain.ErrGoalLabelTooLong),
			errors.Is(err, domain.ErrInvalidSection),
			errors.Is(err, domain.ErrNoTasks),
			errors.Is(err, domain.ErrTaskLabelEmpty),
			errors.Is(err, domain.ErrDuplicateTaskID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *TrackerHandler) Rollover(c *gin.Context) {
	summary, err := h.svc.Rollover()
	if err != nil {
		if errors.Is(err, domain.ErrWeekNotFinished) {
			c.JSON(http.StatusConflict, gin.H{"error": "current week has not elapsed yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
