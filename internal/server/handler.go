package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classscheduler/internal/schedule"
	"classscheduler/internal/store"
	"classscheduler/pkg/config"
	"classscheduler/pkg/logger"
)

// Handler wires the scheduling engine and the dataset store into HTTP
// endpoints.
type Handler struct {
	cfg        *config.Config
	log        *zap.Logger
	store      *store.Store
	enumerator schedule.Scheduler
	optimizer  schedule.Scheduler
}

func NewHandler(cfg *config.Config, log *zap.Logger, st *store.Store, enumerator, optimizer schedule.Scheduler) *Handler {
	return &Handler{
		cfg:        cfg,
		log:        log,
		store:      st,
		enumerator: enumerator,
		optimizer:  optimizer,
	}
}

// Router builds the gin engine with all middleware and routes attached.
func (h *Handler) Router() *gin.Engine {
	if h.cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(h.log))
	router.Use(CORS())
	router.Use(NewRateLimiter(h.cfg.RateLimit.MaxRequests, h.cfg.RateLimit.Window).Middleware())

	router.GET("/", h.root)

	api := router.Group("/api/v1")
	api.POST("/class-scheduler", h.scheduleBounded)
	api.POST("/class-scheduler-optimal", h.scheduleOptimal)

	datasets := api.Group("/datasets")
	datasets.GET("", h.listDatasets)
	datasets.GET("/:id", h.getDataset)

	protected := api.Group("/datasets")
	protected.Use(PortfolioAuth(h.cfg.Auth.Salt, h.cfg.Auth.Window))
	protected.POST("", h.createDataset)
	protected.PUT("/:id", h.updateDataset)
	protected.DELETE("/:id", h.deleteDataset)

	return router
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Class Scheduler is up!"})
}

func (h *Handler) scheduleBounded(c *gin.Context) {
	h.runScheduler(c, h.enumerator, nil, h.cfg.Scheduler.TimeBudget)
}

// scheduleOptimal runs the exact strategy and falls back to bounded
// enumeration when it reports infeasibility or fails. The fallback is a
// handler-level policy across two independent engine calls; the engine never
// retries internally.
func (h *Handler) scheduleOptimal(c *gin.Context) {
	h.runScheduler(c, h.optimizer, h.enumerator, h.cfg.Scheduler.SolverBudget)
}

func (h *Handler) runScheduler(c *gin.Context, primary, fallback schedule.Scheduler, budget time.Duration) {
	var request schedule.Request
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courses, err := request.BuildCourses()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := schedule.Options{
		IncludeWeekend: request.IncludeWeekend(),
		Budget:         budget,
		Weights: schedule.Weights{
			DayOff:     h.cfg.Scheduler.DayOffWeight,
			OnlineOnly: h.cfg.Scheduler.OnlineOnlyWeight,
		},
	}

	result, err := primary.Schedule(courses, opts)
	if err == nil && !result.Feasible() && fallback != nil {
		err = errors.New("no feasible solution from exact strategy")
	}
	if err != nil {
		var emptyCourse *schedule.EmptyCourseError
		if errors.As(err, &emptyCourse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": emptyCourse.Error()})
			return
		}
		if fallback == nil {
			h.log.Error("scheduling failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling failed"})
			return
		}
		h.log.Warn("exact strategy failed, falling back to enumeration", zap.Error(err))
		result, err = fallback.Schedule(courses, opts)
		if err != nil {
			h.log.Error("fallback scheduling failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling failed"})
			return
		}
	}

	if !result.Feasible() {
		c.JSON(http.StatusOK, gin.H{"message": "No valid schedule found within the time limit."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": fmt.Sprintf("Optimal Schedule (Weekday days off: %d, Online-only days: %d)",
			result.Score.DaysOff, result.Score.OnlineOnlyDays),
		"schedules": request.Entries(result.Assignment),
		"score": gin.H{
			"days_off":         result.Score.DaysOff,
			"online_only_days": result.Score.OnlineOnlyDays,
		},
		"status": result.Status.String(),
	})
}

type datasetRequest struct {
	Program string                 `json:"program"`
	Term    string                 `json:"term"`
	Courses []schedule.CourseInput `json:"courses"`
}

func (h *Handler) createDataset(c *gin.Context) {
	var request datasetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.store.SaveDataset(request.Program, request.Term, request.Courses)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "datasetId": id})
}

func (h *Handler) updateDataset(c *gin.Context) {
	var request datasetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.UpdateDataset(c.Param("id"), request.Program, request.Term, request.Courses)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) listDatasets(c *gin.Context) {
	summaries, err := h.store.ListDatasets()
	if err != nil {
		h.log.Error("list datasets failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list datasets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": summaries})
}

func (h *Handler) getDataset(c *gin.Context) {
	dataset, courses, err := h.store.LoadDataset(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}
	if err != nil {
		h.log.Error("load dataset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dataset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        dataset.ID,
		"name":      dataset.Name,
		"program":   dataset.Program,
		"term":      dataset.Term,
		"courses":   courses,
		"createdAt": dataset.CreatedAt,
		"updatedAt": dataset.UpdatedAt,
	})
}

func (h *Handler) deleteDataset(c *gin.Context) {
	err := h.store.DeleteDataset(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}
	if err != nil {
		h.log.Error("delete dataset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete dataset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
