package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

const defaultHistoryDays = 7

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Get handles GET /api/activity-stats/:userId?date=YYYY-MM-DD.
// A missing row for the day is created empty.
//
// @Summary      Get daily activity stats
// @Tags         activity
// @Produce      json
// @Param        userId  path      int     true   "User ID"
// @Param        date    query     string  false  "Day (YYYY-MM-DD), defaults to today"
// @Success      200     {object}  domain.ActivityStat
// @Failure      400     {object}  errorResponse
// @Router       /api/activity-stats/{userId} [get]
func (h *ActivityHandler) Get(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return err
	}

	stat, err := h.service.ForDate(c.Request().Context(), userID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stat)
}

// Record handles POST /api/activity-stats. It answers 201 when the day's
// row was created and 200 when the supplied fields were merged into an
// existing row.
//
// @Summary      Record daily activity stats
// @Tags         activity
// @Accept       json
// @Produce      json
// @Param        body  body      recordActivityRequest  true  "Daily totals"
// @Success      200   {object}  domain.ActivityStat
// @Success      201   {object}  domain.ActivityStat
// @Failure      400   {object}  errorResponse
// @Router       /api/activity-stats [post]
func (h *ActivityHandler) Record(c echo.Context) error {
	var req recordActivityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	stat, created, err := h.service.Record(c.Request().Context(), ports.RecordActivityInput{
		UserID:        req.UserID,
		Date:          date,
		Steps:         req.Steps,
		Calories:      req.Calories,
		ActiveMinutes: req.ActiveMinutes,
		Sleep:         req.Sleep,
		Water:         req.Water,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, stat)
}

// History handles GET /api/activity-stats/:userId/history?days=N.
//
// @Summary      Activity history
// @Tags         activity
// @Produce      json
// @Param        userId  path      int  true   "User ID"
// @Param        days    query     int  false  "Number of days, today included (default 7)"
// @Success      200     {array}   domain.ActivityStat
// @Failure      400     {object}  errorResponse
// @Router       /api/activity-stats/{userId}/history [get]
func (h *ActivityHandler) History(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	days := defaultHistoryDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return domain.Errorf(domain.ErrValidation, "days must be a positive integer")
		}
	}

	stats, err := h.service.History(c.Request().Context(), userID, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// parseDate accepts a calendar day or an RFC 3339 timestamp. Empty means
// the zero time, which the service reads as today.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, domain.Errorf(domain.ErrValidation, "Invalid date %q, expected YYYY-MM-DD", raw)
}
