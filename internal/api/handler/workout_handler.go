package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

// WorkoutHandler serves the workout catalog.
type WorkoutHandler struct {
	service ports.WorkoutService
}

func NewWorkoutHandler(service ports.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// List handles GET /api/workouts?type=&level=.
//
// @Summary      List workouts
// @Tags         workouts
// @Produce      json
// @Param        type   query     string  false  "Workout type"
// @Param        level  query     string  false  "Difficulty"
// @Success      200    {array}   domain.Workout
// @Router       /api/workouts [get]
func (h *WorkoutHandler) List(c echo.Context) error {
	workouts, err := h.service.List(c.Request().Context(), ports.WorkoutFilter{
		Type:       c.QueryParam("type"),
		Difficulty: c.QueryParam("level"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workouts)
}

// Get handles GET /api/workouts/:id.
//
// @Summary      Get a workout
// @Tags         workouts
// @Produce      json
// @Param        id   path      int  true  "Workout ID"
// @Success      200  {object}  domain.Workout
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/workouts/{id} [get]
func (h *WorkoutHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	workout, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workout)
}

// Create handles POST /api/workouts. Admins only.
//
// @Summary      Add a workout to the catalog
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkoutRequest  true  "Workout"
// @Success      201   {object}  domain.Workout
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/workouts [post]
func (h *WorkoutHandler) Create(c echo.Context) error {
	var req createWorkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	exercises := make([]domain.Exercise, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		exercises = append(exercises, domain.Exercise{Name: e.Name, Sets: e.Sets, Reps: e.Reps, Duration: e.Duration})
	}

	workout, err := h.service.Create(c.Request().Context(), &domain.Workout{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		Difficulty:   req.Difficulty,
		Duration:     req.Duration,
		CaloriesBurn: req.CaloriesBurn,
		Exercises:    exercises,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, workout)
}

// SessionHandler tracks workout sessions.
type SessionHandler struct {
	service ports.WorkoutSessionService
}

func NewSessionHandler(service ports.WorkoutSessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Start handles POST /api/workout-sessions.
//
// @Summary      Start a workout session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      startSessionRequest  true  "Session"
// @Success      201   {object}  domain.WorkoutSession
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/workout-sessions [post]
func (h *SessionHandler) Start(c echo.Context) error {
	var req startSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.StartSessionInput{UserID: req.UserID, WorkoutID: req.WorkoutID}
	if req.StartTime != nil {
		in.StartTime = *req.StartTime
	}

	session, err := h.service.Start(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

// List handles GET /api/workout-sessions/:userId.
//
// @Summary      List a user's sessions
// @Tags         sessions
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {array}   ports.SessionWithWorkout
// @Failure      400     {object}  errorResponse
// @Router       /api/workout-sessions/{userId} [get]
func (h *SessionHandler) List(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	sessions, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

// Update handles PATCH /api/workout-sessions/:id. Completing a session
// with an end time adds its totals to today's activity stats.
//
// @Summary      Update a workout session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Session ID"
// @Param        body  body      updateSessionRequest  true  "Session changes"
// @Success      200   {object}  domain.WorkoutSession
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/workout-sessions/{id} [patch]
func (h *SessionHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.service.Update(c.Request().Context(), id, ports.SessionPatch{
		EndTime:        req.EndTime,
		ElapsedTime:    req.ElapsedTime,
		CaloriesBurned: req.CaloriesBurned,
		HeartRate:      req.HeartRate,
		Completed:      req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}
