package category

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/logger"
	"shipment-tracking/middleware"
	"shipment-tracking/services/master"
	"shipment-tracking/types"
	categoryTypes "shipment-tracking/types/category"
	"shipment-tracking/utils"
)

// CategoryController handles category-related HTTP requests
type CategoryController struct {
	Service *master.CategoryService
	Logger  *logger.AsyncLogger
}

// NewCategoryController creates a new category controller
func NewCategoryController(service *master.CategoryService, asyncLogger *logger.AsyncLogger) *CategoryController {
	return &CategoryController{Service: service, Logger: asyncLogger}
}

// respond translates a service result into the HTTP envelope and logs the call.
func (cc *CategoryController) respond(c *fiber.Ctx, result types.Result) error {
	status := result.HTTPStatus()
	err := c.Status(status).JSON(types.ApiResponse{
		Message: result.Message,
		Status:  status,
		Data:    result.Data,
	})
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}

// Store creates a new category
func (cc *CategoryController) Store(c *fiber.Ctx) error {
	var req categoryTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return cc.respond(c, cc.Service.Create(middleware.ActorFromContext(c), req))
}

// Update mutates an existing category
func (cc *CategoryController) Update(c *fiber.Ctx) error {
	var req categoryTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return cc.respond(c, cc.Service.Update(middleware.ActorFromContext(c), c.Params("code"), req))
}

// Destroy removes a category unless items still reference it
func (cc *CategoryController) Destroy(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.Delete(c.Params("code")))
}

// Show returns one category
func (cc *CategoryController) Show(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.Get(c.Params("code")))
}

// Index returns every category
func (cc *CategoryController) Index(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.List())
}
