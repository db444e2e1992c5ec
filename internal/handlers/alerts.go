package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tempwatch/internal/service"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errListAlerts  = "failed to load alerts"
	errAckAlert    = "failed to acknowledge alert"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"

	statusAcknowledged = "acknowledged"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List alerts
// @Description  Filter the alert journal by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD') and level. If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         alerts
// @Produce      json
// @Param        from   query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-08-01)
// @Param        to     query   string  false  "End of range. Date-only treated as end of day."  example(2026-08-31)
// @Param        level  query   string  false  "Alert level"  Enums(warning,critical,emergency)
// @Success      200    {object}  map[string]interface{}  "count, alerts"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/alerts [get]
// @Security     BearerAuth
func (h *Handler) getAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from  time.Time
		to    time.Time
		level = c.Query("level")
		err   error
	)
	// Parse 'from' (optional)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	// Parse 'to' (optional). A date without a time component means the whole
	// day, so make it end-of-day inclusive.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	alerts, err := h.services.AlertLog.List(ctx, service.AlertFilter{
		From:  from,
		To:    to,
		Level: level,
	})
	if err != nil {
		// Range and level validation lives in the service; map it to 400.
		if errors.Is(err, service.ErrInvalidTimeRange) || errors.Is(err, service.ErrInvalidLevel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListAlerts, "alerts_list_failed", err,
			"from", from, "to", to, "level", level)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// @Summary      Acknowledge alert
// @Tags         alerts
// @Produce      json
// @Param        id  path  string  true  "Alert id"
// @Success      200  {object}  map[string]string  "status, id"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alerts/{id}/ack [post]
// @Security     BearerAuth
func (h *Handler) ackAlert(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.AlertLog.Acknowledge(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errAckAlert, "alert_ack_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusAcknowledged, "id": id})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try the accepted formats in order, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-01T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
