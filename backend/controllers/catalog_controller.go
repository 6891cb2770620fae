package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"techguide/backend/models"
	"techguide/backend/repository"
	"techguide/backend/services"
	"techguide/backend/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// ListCategories godoc
// @Summary List categories
// @Description Categories in display order with their tutorial counts
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /catalog/categories [get]
func (cc *CatalogController) ListCategories(c *fiber.Ctx) error {
	categories, err := cc.Catalog.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, categories)
}

// ListTutorials godoc
// @Summary Search tutorials
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param category query int false "Category ID"
// @Param difficulty query string false "Beginner, Intermediate or Advanced"
// @Param search query string false "Text in title or description"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /catalog/tutorials [get]
func (cc *CatalogController) ListTutorials(c *fiber.Ctx) error {
	var filter repository.TutorialFilter

	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.BadRequest(c, "Invalid category")
		}
		filter.CategoryID = uint(id)
	}
	if raw := c.Query("difficulty"); raw != "" {
		d, ok := models.ParseDifficulty(raw)
		if !ok {
			return utils.BadRequest(c, "Invalid difficulty")
		}
		filter.Difficulty = d
	}
	filter.Search = c.Query("search")

	tutorials, err := cc.Catalog.Tutorials(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, tutorials)
}

// GetTutorial godoc
// @Summary Tutorial details
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tutorial ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /catalog/tutorials/{id} [get]
func (cc *CatalogController) GetTutorial(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid tutorial ID")
	}

	tutorial, err := cc.Catalog.Tutorial(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"tutorial":           tutorial,
		"category_name":      tutorial.CategoryName(),
		"estimated_duration": tutorial.DurationLabel(),
	})
}
