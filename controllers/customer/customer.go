package customer

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/logger"
	"shipment-tracking/middleware"
	"shipment-tracking/services/master"
	"shipment-tracking/types"
	customerTypes "shipment-tracking/types/customer"
	"shipment-tracking/utils"
)

// CustomerController handles customer-related HTTP requests
type CustomerController struct {
	Service *master.CustomerService
	Logger  *logger.AsyncLogger
}

// NewCustomerController creates a new customer controller
func NewCustomerController(service *master.CustomerService, asyncLogger *logger.AsyncLogger) *CustomerController {
	return &CustomerController{Service: service, Logger: asyncLogger}
}

func (cc *CustomerController) respond(c *fiber.Ctx, result types.Result) error {
	status := result.HTTPStatus()
	err := c.Status(status).JSON(types.ApiResponse{
		Message: result.Message,
		Status:  status,
		Data:    result.Data,
	})
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}

// Store creates a new customer
func (cc *CustomerController) Store(c *fiber.Ctx) error {
	var req customerTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return cc.respond(c, cc.Service.Create(middleware.ActorFromContext(c), req))
}

// Update mutates an existing customer
func (cc *CustomerController) Update(c *fiber.Ctx) error {
	var req customerTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return cc.respond(c, cc.Service.Update(middleware.ActorFromContext(c), c.Params("code"), req))
}

// Destroy removes a customer unless shipments still reference it
func (cc *CustomerController) Destroy(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.Delete(c.Params("code")))
}

// Show returns one customer
func (cc *CustomerController) Show(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.Get(c.Params("code")))
}

// Index returns every customer
func (cc *CustomerController) Index(c *fiber.Ctx) error {
	return cc.respond(c, cc.Service.List())
}
