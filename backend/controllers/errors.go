package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"techguide/backend/repository"
	"techguide/backend/services"
	"techguide/backend/utils"
)

// respondError maps service and repository errors onto the JSON error
// envelope.
func respondError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return utils.ValidationError(c, utils.ValidationErrors(err))
	case errors.Is(err, repository.ErrNotFound):
		return utils.NotFound(c, "Resource not found")
	case errors.Is(err, repository.ErrEmailTaken):
		return utils.Conflict(c, "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrRoleNotAllowed):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return utils.Error(c, fiber.StatusGatewayTimeout, utils.TranslateDBError(err))
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("path", c.Path()).
		Msg("request failed")
	return utils.InternalServerError(c, utils.TranslateDBError(err))
}

func idParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
