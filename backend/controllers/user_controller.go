package controllers

import (
	"github.com/gofiber/fiber/v2"

	"techguide/backend/middleware"
	"techguide/backend/services"
	"techguide/backend/utils"
)

type UserController struct {
	Accounts *services.AccountService
	Progress *services.ProgressService
}

func NewUserController(accounts *services.AccountService, progress *services.ProgressService) *UserController {
	return &UserController{Accounts: accounts, Progress: progress}
}

type updateProfileInput struct {
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"max=64"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Profile with streak, points and rank
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	profile, err := uc.Progress.Profile(c.UserContext(), s.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update user profile
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body updateProfileInput true "New name"
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input updateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, utils.ValidationErrors(err))
	}

	user, err := uc.Accounts.UpdateName(c.UserContext(), s.UserID, input.FirstName, input.LastName)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
