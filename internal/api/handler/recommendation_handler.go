package handler

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

type RecommendationHandler struct {
	service ports.RecommendationService
}

func NewRecommendationHandler(service ports.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// List handles GET /api/recommendations/:userId?type=.
//
// @Summary      List recommendations, newest first
// @Tags         recommendations
// @Produce      json
// @Param        userId  path      int     true   "User ID"
// @Param        type    query     string  false  "workout, nutrition or sleep"
// @Success      200     {array}   domain.Recommendation
// @Failure      400     {object}  errorResponse
// @Router       /api/recommendations/{userId} [get]
func (h *RecommendationHandler) List(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	recType := c.QueryParam("type")
	if recType != "" && !slices.Contains(domain.RecommendationTypes, recType) {
		return domain.Errorf(domain.ErrValidation, "Invalid recommendation type %q", recType)
	}

	recs, err := h.service.List(c.Request().Context(), userID, recType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// Feedback handles POST /api/recommendations/:id/feedback.
//
// @Summary      Rate a recommendation
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Recommendation ID"
// @Param        body  body      feedbackRequest  true  "Feedback"
// @Success      200   {object}  domain.Recommendation
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recommendations/{id}/feedback [post]
func (h *RecommendationHandler) Feedback(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rec, err := h.service.Feedback(c.Request().Context(), id, req.Feedback)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// WorkoutPlan handles POST /api/workout-plans.
//
// @Summary      Build a weekly workout plan
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        body  body      workoutPlanRequest  true  "Plan request"
// @Success      200   {object}  ports.WorkoutPlan
// @Failure      400   {object}  errorResponse
// @Router       /api/workout-plans [post]
func (h *RecommendationHandler) WorkoutPlan(c echo.Context) error {
	var req workoutPlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	plan, err := h.service.WorkoutPlan(c.Request().Context(), ports.WorkoutPlanInput{
		UserID: req.UserID,
		Goal:   req.Goal,
		Level:  req.Level,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Insight handles POST /api/insights.
//
// @Summary      Advice for a free-form question
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        body  body      insightRequest  true  "Question"
// @Success      200   {object}  ports.Insight
// @Failure      400   {object}  errorResponse
// @Router       /api/insights [post]
func (h *RecommendationHandler) Insight(c echo.Context) error {
	var req insightRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	insight, err := h.service.Insight(c.Request().Context(), req.UserID, req.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insight)
}
