package controllers

import (
	"github.com/gofiber/fiber/v2"

	"techguide/backend/services"
	"techguide/backend/utils"
)

type InstructorController struct {
	Instructor *services.InstructorService
}

func NewInstructorController(instructor *services.InstructorService) *InstructorController {
	return &InstructorController{Instructor: instructor}
}

// GetCategoryOverview godoc
// @Summary Category engagement
// @Description Distinct students and average completion per category
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /instructor/categories [get]
func (ic *InstructorController) GetCategoryOverview(c *fiber.Ctx) error {
	overview, err := ic.Instructor.CategoryOverview(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, overview)
}

// GetTutorialStudents godoc
// @Summary Students of a tutorial
// @Description One row per student with their current status
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tutorial ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /instructor/tutorials/{id}/students [get]
func (ic *InstructorController) GetTutorialStudents(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid tutorial ID")
	}

	report, err := ic.Instructor.TutorialStudents(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, report)
}
