package courier

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/logger"
	"shipment-tracking/middleware"
	"shipment-tracking/services/master"
	"shipment-tracking/types"
	courierTypes "shipment-tracking/types/courier"
	"shipment-tracking/utils"
)

// CourierController handles courier-related HTTP requests
type CourierController struct {
	Service *master.CourierService
	Logger  *logger.AsyncLogger
}

// NewCourierController creates a new courier controller
func NewCourierController(service *master.CourierService, asyncLogger *logger.AsyncLogger) *CourierController {
	return &CourierController{Service: service, Logger: asyncLogger}
}

func (cc *CourierController) respond(c *fiber.Ctx, result types.Result) error {
	status := result.HTTPStatus()
	err := c.Status(status).JSON(types.ApiResponse{
		Message: result.Message,
		Status:  status,
		Data:    result.Data,
	})
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}

// Store creates a new courier
func (cc *CourierController) Store(c *fiber.Ctx) error {
	var req courierTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return cc.respond(c, cc.Service.Create(middleware.ActorFromContext(c), req))
}

// Update mutates an existing courier
func (cc *CourierController) Update(c *fiber.Ctx) error {
	var req courierTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return cc.respond(c, cc.Service.Update(middleware.ActorFromContext(c), c.Params("code"), req))
}

// Destroy removes a courier unless shipments or a login still reference it
func (cc *CourierController) Destroy(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.Delete(c.Params("code")))
}

// Show returns one courier
func (cc *CourierController) Show(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.Get(c.Params("code")))
}

// Index returns every courier
func (cc *CourierController) Index(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.List())
}
