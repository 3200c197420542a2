package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/fitness-api/internal/core/ports"
)

type ChallengeHandler struct {
	service ports.ChallengeService
}

func NewChallengeHandler(service ports.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// List handles GET /api/challenges.
//
// @Summary      List challenges
// @Tags         challenges
// @Produce      json
// @Success      200  {array}  ports.ChallengeView
// @Router       /api/challenges [get]
func (h *ChallengeHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /api/challenges/:id.
//
// @Summary      Get a challenge
// @Tags         challenges
// @Produce      json
// @Param        id   path      int  true  "Challenge ID"
// @Success      200  {object}  ports.ChallengeView
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/challenges/{id} [get]
func (h *ChallengeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /api/challenges. createdBy falls back to the
// authenticated caller.
//
// @Summary      Create a challenge
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Param        body  body      createChallengeRequest  true  "Challenge"
// @Success      201   {object}  domain.Challenge
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/challenges [post]
func (h *ChallengeHandler) Create(c echo.Context) error {
	var req createChallengeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.CreatedBy == 0 {
		if id, ok := ctxUserID(c); ok {
			req.CreatedBy = id
		}
	}

	challenge, err := h.service.Create(c.Request().Context(), ports.CreateChallengeInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Target:      req.Target,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, challenge)
}

// Participants handles GET /api/challenges/:id/participants.
//
// @Summary      Challenge leaderboard
// @Tags         challenges
// @Produce      json
// @Param        id   path      int  true  "Challenge ID"
// @Success      200  {array}   ports.LeaderboardEntry
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/challenges/{id}/participants [get]
func (h *ChallengeHandler) Participants(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	board, err := h.service.Leaderboard(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// Join handles POST /api/challenges/:id/join.
//
// @Summary      Join a challenge
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Challenge ID"
// @Param        body  body      joinChallengeRequest  true  "Participant"
// @Success      201   {object}  domain.ChallengeParticipant
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/challenges/{id}/join [post]
func (h *ChallengeHandler) Join(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req joinChallengeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	participant, err := h.service.Join(c.Request().Context(), id, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, participant)
}

// Progress handles PATCH /api/challenges/:challengeId/progress and fans the
// new value out to connected participants.
//
// @Summary      Update challenge progress
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Param        challengeId  path      int              true  "Challenge ID"
// @Param        body         body      progressRequest  true  "Progress"
// @Success      200          {object}  domain.ChallengeParticipant
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/challenges/{challengeId}/progress [patch]
func (h *ChallengeHandler) Progress(c echo.Context) error {
	id, err := pathID(c, "challengeId")
	if err != nil {
		return err
	}

	var req progressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	participant, err := h.service.UpdateProgress(c.Request().Context(), id, req.UserID, req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, participant)
}
