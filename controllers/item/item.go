package item

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/logger"
	"shipment-tracking/middleware"
	"shipment-tracking/services/master"
	"shipment-tracking/types"
	itemTypes "shipment-tracking/types/item"
	"shipment-tracking/utils"
)

// ItemController handles item-related HTTP requests
type ItemController struct {
	Service *master.ItemService
	Logger  *logger.AsyncLogger
}

// NewItemController creates a new item controller
func NewItemController(service *master.ItemService, asyncLogger *logger.AsyncLogger) *ItemController {
	return &ItemController{Service: service, Logger: asyncLogger}
}

func (ic *ItemController) respond(c *fiber.Ctx, result types.Result) error {
	status := result.HTTPStatus()
	err := c.Status(status).JSON(types.ApiResponse{
		Message: result.Message,
		Status:  status,
		Data:    result.Data,
	})
	ic.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}

// Store creates a new item
func (ic *ItemController) Store(c *fiber.Ctx) error {
	var req itemTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ic.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return ic.respond(c, ic.Service.Create(middleware.ActorFromContext(c), req))
}

// Update mutates an existing item
func (ic *ItemController) Update(c *fiber.Ctx) error {
	var req itemTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ic.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return ic.respond(c, ic.Service.Update(middleware.ActorFromContext(c), c.Params("code"), req))
}

// Destroy removes an item unless shipment line items still reference it
func (ic *ItemController) Destroy(c *fiber.Ctx) error {
	return ic.respond(c, ic.Service.Delete(c.Params("code")))
}

// Show returns one item with its category
func (ic *ItemController) Show(c *fiber.Ctx) error {
	return ic.respond(c, ic.Service.Get(c.Params("code")))
}

// Index returns every item
func (ic *ItemController) Index(c *fiber.Ctx) error {
	return ic.respond(c, ic.Service.List())
}
