package controllers

import (
	"github.com/gofiber/fiber/v2"

	"techguide/backend/middleware"
	"techguide/backend/services"
	"techguide/backend/utils"
)

type AdminController struct {
	Accounts *services.AccountService
}

func NewAdminController(accounts *services.AccountService) *AdminController {
	return &AdminController{Accounts: accounts}
}

type changeRoleInput struct {
	Role string `json:"role" validate:"required,role"`
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/users [get]
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	page, pageSize := utils.PageParams(c)
	users, total, err := ac.Accounts.List(c.UserContext(), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Paginate(c, users, total, page, pageSize)
}

// CreateUser godoc
// @Summary Create a verified account
// @Description Admins may assign any role, instructors may only create students
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user body services.NewAccount true "Account data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /admin/users [post]
func (ac *AdminController) CreateUser(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input services.NewAccount
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Accounts.CreatePrivileged(c.UserContext(), s.Role, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, user)
}

// ChangeRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param role body changeRoleInput true "New role"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (ac *AdminController) ChangeRole(c *fiber.Ctx) error {
	id, ok := uuidParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input changeRoleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, utils.ValidationErrors(err))
	}

	user, err := ac.Accounts.ChangeRole(c.UserContext(), id, input.Role)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
