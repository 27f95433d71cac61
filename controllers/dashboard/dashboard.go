package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracking/logger"
	"shipment-tracking/services/report"
	"shipment-tracking/types"
	"shipment-tracking/utils"
)

// DashboardController serves the dashboard numbers and the shipment report.
type DashboardController struct {
	Service *report.Service
	Logger  *logger.AsyncLogger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(service *report.Service, asyncLogger *logger.AsyncLogger) *DashboardController {
	return &DashboardController{Service: service, Logger: asyncLogger}
}

func (dc *DashboardController) respond(c *fiber.Ctx, result types.Result) error {
	status := result.HTTPStatus()
	err := c.Status(status).JSON(types.ApiResponse{
		Message: result.Message,
		Status:  status,
		Data:    result.Data,
	})
	dc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return err
}

// Show returns the per-status counts and period totals
func (dc *DashboardController) Show(c *fiber.Ctx) error {
	return dc.respond(c, dc.Service.Dashboard())
}

// Report returns shipments inside the from/to date range
func (dc *DashboardController) Report(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return dc.respond(c, types.Fail(types.KindValidation, "from and to query parameters are required"))
	}
	return dc.respond(c, dc.Service.ShipmentsBetween(from, to))
}
