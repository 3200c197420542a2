package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/fitness-api/internal/core/ports"
)

type GoalHandler struct {
	service ports.GoalService
}

func NewGoalHandler(service ports.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

// List handles GET /api/goals/:userId.
//
// @Summary      List a user's goals
// @Tags         goals
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {array}   domain.Goal
// @Failure      400     {object}  errorResponse
// @Router       /api/goals/{userId} [get]
func (h *GoalHandler) List(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	goals, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goals)
}

// Create handles POST /api/goals.
//
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        body  body      createGoalRequest  true  "Goal"
// @Success      201   {object}  domain.Goal
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	var req createGoalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	goal, err := h.service.Create(c.Request().Context(), ports.CreateGoalInput{
		UserID:      req.UserID,
		Type:        req.Type,
		Target:      req.Target,
		Period:      req.Period,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, goal)
}

// Update handles PATCH /api/goals/:id.
//
// @Summary      Update a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Goal ID"
// @Param        body  body      updateGoalRequest  true  "Goal changes"
// @Success      200   {object}  domain.Goal
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/goals/{id} [patch]
func (h *GoalHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateGoalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	goal, err := h.service.Update(c.Request().Context(), id, ports.GoalPatch{
		Target:      req.Target,
		Current:     req.Current,
		Period:      req.Period,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}
