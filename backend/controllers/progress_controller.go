package controllers

import (
	"github.com/gofiber/fiber/v2"

	"techguide/backend/middleware"
	"techguide/backend/services"
	"techguide/backend/utils"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// GetDashboard godoc
// @Summary Learning dashboard
// @Description Streak, points, rank, completed lessons, minutes learned and per-category progress
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /progress/dashboard [get]
func (pc *ProgressController) GetDashboard(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	dashboard, err := pc.Progress.Dashboard(c.UserContext(), s.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, dashboard)
}

// GetMyCourses godoc
// @Summary My courses
// @Description Categories the user has started, with every tutorial in them
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /progress/courses [get]
func (pc *ProgressController) GetMyCourses(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courses, err := pc.Progress.MyCourses(c.UserContext(), s.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// StartTutorial godoc
// @Summary Start a tutorial
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tutorial ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /progress/tutorials/{id}/start [post]
func (pc *ProgressController) StartTutorial(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	id, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid tutorial ID")
	}

	record, err := pc.Progress.StartTutorial(c.UserContext(), s.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, record)
}

// CompleteTutorial godoc
// @Summary Complete a tutorial
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tutorial ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /progress/tutorials/{id}/complete [post]
func (pc *ProgressController) CompleteTutorial(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	id, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid tutorial ID")
	}

	record, err := pc.Progress.CompleteTutorial(c.UserContext(), s.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, record)
}
