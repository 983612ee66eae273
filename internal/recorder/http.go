package recorder

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/autoscribeHQ/autoscribe/internal/events"
)

// Dependencies contains what the recorder routes need.
type Dependencies struct {
	Manager *Manager
	Store   *Store
}

// StartRequest is the session start payload
// @Description Payload to start a recording session
type StartRequest struct {
	URL string `json:"url" example:"https://example.com"`
} //@name StartRequest

func RegisterRoutes(rg *gin.RouterGroup, deps Dependencies) {
	rg.POST("/record/start", startRecording(deps.Manager))
	rg.POST("/record/stop", stopRecording(deps.Manager))
	rg.GET("/record/status", getStatus(deps.Manager))
	rg.GET("/record/script", getScript(deps.Manager))
	rg.POST("/record/events", postEvents(deps.Manager))
	rg.POST("/record/pageload", postPageLoad(deps.Manager))

	if deps.Store != nil {
		rg.GET("/recordings", listRecordings(deps.Store))
		rg.GET("/recordings/:id", getRecording(deps.Store))
		rg.GET("/recordings/:id/script", getRecordingScript(deps.Store))
		rg.DELETE("/recordings/:id", deleteRecording(deps.Store))
	}
}

// startRecording begins a recording session
// @Summary Start a recording session
// @Description Start recording browser interactions for the given URL
// @Tags record
// @Accept json
// @Produce json
// @Param request body StartRequest true "Start parameters"
// @Success 201 {object} Recording
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/record/start [post]
func startRecording(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := mgr.Start(c.Request.Context(), req.URL)
		switch {
		case errors.Is(err, ErrMissingURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrSessionActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusCreated, rec)
		}
	}
}

// stopRecording ends the active recording session
// @Summary Stop the active recording session
// @Description Stop recording, run a final render pass, and return the finished recording
// @Tags record
// @Produce json
// @Success 200 {object} Recording
// @Failure 409 {object} map[string]string
// @Router /api/v1/record/stop [post]
func stopRecording(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := mgr.Stop(c.Request.Context())
		switch {
		case errors.Is(err, ErrNoSession):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, rec)
		}
	}
}

// getStatus reports the current session state
// @Summary Current recorder status
// @Tags record
// @Produce json
// @Success 200 {object} Status
// @Router /api/v1/record/status [get]
func getStatus(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, mgr.Status())
	}
}

// getScript returns the current rendered script
// @Summary Current rendered script
// @Description Render the live log on demand and return the script text
// @Tags record
// @Produce plain
// @Success 200 {string} string
// @Failure 404 {object} map[string]string
// @Router /api/v1/record/script [get]
func getScript(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		script, err := mgr.Script()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(script))
	}
}

// postEvents ingests a batch of raw events from the in-page binding
// @Summary Ingest raw interaction events
// @Description Append a batch of raw events to the live session log. Events arriving outside a session are dropped.
// @Tags record
// @Accept json
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /api/v1/record/events [post]
func postEvents(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var batch events.Batch
		if err := c.ShouldBindJSON(&batch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mgr.HandleBatch(batch.Events)
		c.Status(http.StatusNoContent)
	}
}

// postPageLoad records a completed navigation
// @Summary Record a completed navigation
// @Tags record
// @Success 204
// @Router /api/v1/record/pageload [post]
func postPageLoad(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr.PageLoaded()
		c.Status(http.StatusNoContent)
	}
}

// listRecordings lists archived recordings
// @Summary List recordings
// @Tags recordings
// @Produce json
// @Param status query string false "Filter by status"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/recordings [get]
func listRecordings(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *RecordingStatus
		if v := c.Query("status"); v != "" {
			s := RecordingStatus(v)
			status = &s
		}

		var start, end *time.Time
		if v := c.Query("start_time"); v != "" {
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				start = &ts
			}
		}
		if v := c.Query("end_time"); v != "" {
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				end = &ts
			}
		}

		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		recs, err := store.ListRecordings(c.Request.Context(), status, start, end, offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"recordings": recs,
			"total":      len(recs),
			"offset":     offset,
			"limit":      limit,
		})
	}
}

// getRecording fetches one recording
// @Summary Get a recording
// @Tags recordings
// @Produce json
// @Param id path string true "Recording ID"
// @Success 200 {object} Recording
// @Failure 404 {object} map[string]string
// @Router /api/v1/recordings/{id} [get]
func getRecording(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recording ID"})
			return
		}

		rec, err := store.GetRecording(c.Request.Context(), id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recording not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// getRecordingScript returns the stored script of a finished recording
// @Summary Get a recording's script
// @Tags recordings
// @Produce plain
// @Param id path string true "Recording ID"
// @Success 200 {string} string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recordings/{id}/script [get]
func getRecordingScript(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recording ID"})
			return
		}

		rec, err := store.GetRecording(c.Request.Context(), id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recording not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if rec.Script == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "recording has no script yet"})
			return
		}
		c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(rec.Script))
	}
}

// deleteRecording removes a recording
// @Summary Delete a recording
// @Tags recordings
// @Param id path string true "Recording ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/recordings/{id} [delete]
func deleteRecording(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recording ID"})
			return
		}

		err = store.DeleteRecording(c.Request.Context(), id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recording not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
