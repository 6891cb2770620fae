package controllers

import (
	"github.com/gofiber/fiber/v2"

	"techguide/backend/models"
	"techguide/backend/services"
	"techguide/backend/utils"
)

type AuthController struct {
	Accounts *services.AccountService
}

func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{Accounts: accounts}
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a student account and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.NewAccount true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.NewAccount
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, token, err := ac.Accounts.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, authResponse{Token: token, User: user})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, utils.ValidationErrors(err))
	}

	user, token, err := ac.Accounts.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, authResponse{Token: token, User: user})
}
