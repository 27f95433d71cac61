package shipment

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/constants"
	"shipment-tracking/logger"
	"shipment-tracking/middleware"
	shipmentService "shipment-tracking/services/shipment"
	"shipment-tracking/types"
	shipmentTypes "shipment-tracking/types/shipment"
	"shipment-tracking/utils"
)

// ShipmentController handles shipment-related HTTP requests. Which update
// variant a caller reaches is decided here by role: back-office roles get
// the full update, couriers only the status path.
type ShipmentController struct {
	Service *shipmentService.Service
	Logger  *logger.AsyncLogger
}

// NewShipmentController creates a new shipment controller
func NewShipmentController(service *shipmentService.Service, asyncLogger *logger.AsyncLogger) *ShipmentController {
	return &ShipmentController{Service: service, Logger: asyncLogger}
}

func (sc *ShipmentController) respond(c *fiber.Ctx, result types.Result) error {
	status := result.HTTPStatus()
	err := c.Status(status).JSON(types.ApiResponse{
		Message: result.Message,
		Status:  status,
		Data:    result.Data,
	})
	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}

// Store creates a shipment together with its line items
func (sc *ShipmentController) Store(c *fiber.Ctx) error {
	var req shipmentTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return sc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return sc.respond(c, sc.Service.Create(middleware.ActorFromContext(c), req))
}

// Update applies a full update; courier-role callers are redirected to the
// status-only path.
func (sc *ShipmentController) Update(c *fiber.Ctx) error {
	if middleware.RoleFromContext(c) == constants.RoleCourier {
		return sc.respond(c, types.Fail(types.KindValidation, "couriers may only update the shipment status"))
	}

	var req shipmentTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return sc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return sc.respond(c, sc.Service.Update(middleware.ActorFromContext(c), c.Params("code"), req))
}

// UpdateStatus moves the status and merges delivery extras
func (sc *ShipmentController) UpdateStatus(c *fiber.Ctx) error {
	var req shipmentTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return sc.respond(c, types.Fail(types.KindValidation, "Invalid request body"))
	}
	return sc.respond(c, sc.Service.UpdateStatus(middleware.ActorFromContext(c), c.Params("code"), req))
}

// Destroy removes a shipment and its line items as a unit
func (sc *ShipmentController) Destroy(c *fiber.Ctx) error {
	return sc.respond(c, sc.Service.Delete(c.Params("code")))
}

// Show returns one shipment header
func (sc *ShipmentController) Show(c *fiber.Ctx) error {
	return sc.respond(c, sc.Service.GetByID(c.Params("code")))
}

// Details returns the line items of a shipment
func (sc *ShipmentController) Details(c *fiber.Ctx) error {
	return sc.respond(c, sc.Service.GetDetails(c.Params("code")))
}

// Index returns shipments newest first
func (sc *ShipmentController) Index(c *fiber.Ctx) error {
	return sc.respond(c, sc.Service.List())
}
