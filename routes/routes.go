package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shipment-tracking/constants"
	"shipment-tracking/controllers/auth"
	categoryController "shipment-tracking/controllers/category"
	courierController "shipment-tracking/controllers/courier"
	customerController "shipment-tracking/controllers/customer"
	"shipment-tracking/controllers/dashboard"
	itemController "shipment-tracking/controllers/item"
	shipmentController "shipment-tracking/controllers/shipment"
	"shipment-tracking/controllers/tracking"
	"shipment-tracking/logger"
	"shipment-tracking/middleware"
	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/master"
	"shipment-tracking/services/report"
	"shipment-tracking/services/sequence"
	shipmentService "shipment-tracking/services/shipment"
	"shipment-tracking/services/validation"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)

	seq := sequence.NewGenerator(db)
	rules := validation.NewPipeline(db)
	lists := dropdown.NewCache(db)
	masterServices := master.NewServices(db, seq, rules, lists)
	shipments := shipmentService.NewService(db, seq, rules)
	reports := report.NewService(db)

	authController := auth.NewAuthController(db, asyncLogger)
	categories := categoryController.NewCategoryController(masterServices.Categories, asyncLogger)
	items := itemController.NewItemController(masterServices.Items, asyncLogger)
	customers := customerController.NewCustomerController(masterServices.Customers, asyncLogger)
	couriers := courierController.NewCourierController(masterServices.Couriers, asyncLogger)
	shipmentCtrl := shipmentController.NewShipmentController(shipments, asyncLogger)
	trackingCtrl := tracking.NewTrackingController(shipments, asyncLogger)
	dashboardCtrl := dashboard.NewDashboardController(reports, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Shipment Tracking API",
			"status":  fiber.StatusOK,
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Get("/track/:code", trackingCtrl.Track)

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.RequireRoles(constants.RoleAdmin), authController.Register)
	authGroup.Get("/profile", middleware.RequireAuthentication(), authController.Profile)

	/*=============================================================================
	| Master Data Routes
	===============================================================================*/
	backOffice := middleware.RequireRoles(constants.BackOfficeRoles...)

	categoryGroup := api.Group("/categories").Use(backOffice)
	categoryGroup.Get("/", categories.Index)
	categoryGroup.Post("/", categories.Store)
	categoryGroup.Get("/:code", categories.Show)
	categoryGroup.Put("/:code", categories.Update)
	categoryGroup.Delete("/:code", categories.Destroy)

	itemGroup := api.Group("/items").Use(backOffice)
	itemGroup.Get("/", items.Index)
	itemGroup.Post("/", items.Store)
	itemGroup.Get("/:code", items.Show)
	itemGroup.Put("/:code", items.Update)
	itemGroup.Delete("/:code", items.Destroy)

	customerGroup := api.Group("/customers").Use(backOffice)
	customerGroup.Get("/", customers.Index)
	customerGroup.Post("/", customers.Store)
	customerGroup.Get("/:code", customers.Show)
	customerGroup.Put("/:code", customers.Update)
	customerGroup.Delete("/:code", customers.Destroy)

	courierGroup := api.Group("/couriers").Use(backOffice)
	courierGroup.Get("/", couriers.Index)
	courierGroup.Post("/", couriers.Store)
	courierGroup.Get("/:code", couriers.Show)
	courierGroup.Put("/:code", couriers.Update)
	courierGroup.Delete("/:code", couriers.Destroy)

	/*=============================================================================
	| Shipment Routes
	===============================================================================*/
	shipmentGroup := api.Group("/shipments")
	shipmentGroup.Get("/", backOffice, shipmentCtrl.Index)
	shipmentGroup.Post("/", backOffice, shipmentCtrl.Store)
	shipmentGroup.Get("/:code", backOffice, shipmentCtrl.Show)
	shipmentGroup.Get("/:code/details", backOffice, shipmentCtrl.Details)
	shipmentGroup.Put("/:code", backOffice, shipmentCtrl.Update)
	shipmentGroup.Delete("/:code", backOffice, shipmentCtrl.Destroy)

	// Couriers report status from the field; back office can correct it too.
	shipmentGroup.Patch("/:code/status", middleware.RequireRoles(
		constants.RoleAdmin,
		constants.RoleFinance,
		constants.RoleWarehouse,
		constants.RoleCourier,
	), shipmentCtrl.UpdateStatus)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboardGroup := api.Group("/dashboard").Use(backOffice)
	dashboardGroup.Get("/", dashboardCtrl.Show)
	dashboardGroup.Get("/report", dashboardCtrl.Report)
}
