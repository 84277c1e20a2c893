package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stridehq/stride/internal/cycle"
	"github.com/stridehq/stride/internal/notify"
	"github.com/stridehq/stride/internal/store"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, loc *time.Location, notifier notify.Notifier) {
	router.GET("/api/cycles", handleCycleList(db))
	router.GET("/api/cycles/:id/progress", handleCycleProgress(db))
	router.POST("/api/cycles/sweep", handleSweep(db, loc, notifier))
	router.GET("/api/objectives/tree", handleObjectiveTree(db))
	router.GET("/api/objectives/:id/progress", handleObjectiveProgress(db))
	router.GET("/api/focus", handleDailyFocus(db, loc))
	router.POST("/api/keyresults/:id/checkins", handleCheckIn(db))
}

func handleCycleList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cycles, err := store.ListCycles(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cycles": cycles})
	}
}

func handleCycleProgress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := store.GetGroupSummary(db, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func handleSweep(db *gorm.DB, loc *time.Location, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		transitions, err := cycle.Sweep(db, loc, time.Now(), notifier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if transitions == nil {
			transitions = []cycle.Transition{}
		}
		c.JSON(http.StatusOK, gin.H{"transitions": transitions})
	}
}

func handleObjectiveTree(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		nodes, err := store.GetObjectiveTree(db, c.Query("cycle_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"objectives": nodes})
	}
}

func handleObjectiveProgress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := store.GetObjectiveDetail(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "objective not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

type checkInRequest struct {
	Value    float64 `json:"value"`
	Note     string  `json:"note"`
	AuthorID string  `json:"author_id"`
}

func handleCheckIn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		checkIn, err := store.RecordCheckIn(db, c.Param("id"), req.Value, req.Note, req.AuthorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "key result not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"check_in": checkIn})
	}
}

func handleDailyFocus(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		today := c.Query("date")
		if today == "" {
			today = time.Now().In(loc).Format("2006-01-02")
		}
		tasks, err := store.DailyFocus(db, c.Query("assignee"), today)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if tasks == nil {
			tasks = []store.FocusTask{}
		}
		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
	}
}
