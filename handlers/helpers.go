package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultStatsWindow = 7 * 24 * time.Hour

// parseTimeRange reads the optional RFC3339 start and end query parameters. The range
// defaults to the last seven days.
func parseTimeRange(c *gin.Context, now time.Time) (start, end time.Time, err error) {
	end = now.UTC()
	if raw := c.Query("end"); raw != "" {
		end, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("Invalid 'end' timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)")
		}
	}
	start = end.Add(-defaultStatsWindow)
	if raw := c.Query("start"); raw != "" {
		start, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("Invalid 'start' timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)")
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, errors.New("'start' must not be after 'end'")
	}
	return start, end, nil
}

func parseLimit(c *gin.Context, def uint64) (uint64, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || limit == 0 {
		return 0, errors.New("Invalid 'limit' parameter. Must be a positive integer.")
	}
	return limit, nil
}
