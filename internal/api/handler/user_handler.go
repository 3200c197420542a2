package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/fitness-api/internal/core/ports"
)

type UserHandler struct {
	users      ports.UserService
	challenges ports.ChallengeService
}

func NewUserHandler(users ports.UserService, challenges ports.ChallengeService) *UserHandler {
	return &UserHandler{users: users, challenges: challenges}
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /api/users/:id. Absent fields are left unchanged.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User ID"
// @Param        body  body      updateUserRequest  true  "Profile changes"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), id, ports.UserPatch{
		Username:      req.Username,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ProfileImage:  req.ProfileImage,
		Height:        req.Height,
		Weight:        req.Weight,
		Age:           req.Age,
		Gender:        req.Gender,
		Location:      req.Location,
		ActivityLevel: req.ActivityLevel,
		FitnessGoal:   req.FitnessGoal,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Challenges handles GET /api/users/:userId/challenges.
//
// @Summary      List a user's challenges
// @Tags         challenges
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {array}   ports.UserChallenge
// @Failure      400     {object}  errorResponse
// @Router       /api/users/{userId}/challenges [get]
func (h *UserHandler) Challenges(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	list, err := h.challenges.UserChallenges(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
