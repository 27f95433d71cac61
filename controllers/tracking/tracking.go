package tracking

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/logger"
	shipmentService "shipment-tracking/services/shipment"
	"shipment-tracking/types"
	"shipment-tracking/utils"
)

// TrackingController serves the public lookup behind the QR label printed on
// a shipment: anyone with the code can follow the delivery, no login needed.
type TrackingController struct {
	Service *shipmentService.Service
	Logger  *logger.AsyncLogger
}

// NewTrackingController creates a new tracking controller
func NewTrackingController(service *shipmentService.Service, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{Service: service, Logger: asyncLogger}
}

// Track returns the shipment header and its line items for a code.
func (tc *TrackingController) Track(c *fiber.Ctx) error {
	code := c.Params("code")

	header := tc.Service.GetByID(code)
	if !header.Success {
		status := header.HTTPStatus()
		err := c.Status(status).JSON(types.ApiResponse{
			Message: header.Message,
			Status:  status,
		})
		tc.Logger.Log(utils.CreateSanitizedLogEntry(c))
		return err
	}

	details := tc.Service.GetDetails(code)

	err := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Shipment tracking retrieved successfully",
		Status:  fiber.StatusOK,
		Data: map[string]interface{}{
			"shipment": header.Data,
			"details":  details.Data,
		},
	})
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}
