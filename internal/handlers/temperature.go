package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"

	errStopMonitor  = "monitor did not stop in time"
	errInvalidWidth = "invalid 'width': must be a positive integer"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status plus the poller flag and the current snapshot.
func (h *Handler) respondWithStatus(c *gin.Context, status string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"running": h.services.Monitor.Running(),
		"state":   h.services.Status.GetStatus(),
	})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Temperature status
// @Description  Current snapshot: availability, temperature, alert level, trend.
// @Tags         temperature
// @Produce      json
// @Success      200  {object}  models.TemperatureStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/temperature/status [get]
// @Security     BearerAuth
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.GetStatus())
}

// @Summary      Reading history
// @Description  Rolling window of recent readings, oldest first.
// @Tags         temperature
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/temperature/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	readings := h.services.Status.GetHistory()
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

// @Summary      Status-bar token
// @Description  Short display token, empty when monitoring is unavailable. Optional width truncates with an ellipsis.
// @Tags         temperature
// @Produce      plain
// @Param        width  query  int  false  "Maximum token width in display cells"
// @Success      200  {string}  string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/statusbar [get]
// @Security     BearerAuth
func (h *Handler) getStatusbar(c *gin.Context) {
	width := 0
	if qs := c.Query("width"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidWidth})
			return
		}
		width = v
	}
	c.String(http.StatusOK, h.services.Status.Statusbar(width))
}

// @Summary      Start monitor
// @Description  Starts the background poller. Idempotent.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, running, state"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor/start [post]
// @Security     BearerAuth
func (h *Handler) startMonitor(c *gin.Context) {
	h.services.Monitor.Start()
	h.respondWithStatus(c, statusStarted)
}

// @Summary      Stop monitor
// @Description  Stops the background poller, waiting briefly for it to exit.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, running, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/monitor/stop [post]
// @Security     BearerAuth
func (h *Handler) stopMonitor(c *gin.Context) {
	if !h.services.Monitor.Stop() {
		if h.log != nil {
			h.log.Errorw("monitor_stop_timeout")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errStopMonitor})
		return
	}
	h.respondWithStatus(c, statusStopped)
}
