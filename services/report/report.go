package report

import (
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"shipment-tracking/logger"
	shipmentModel "shipment-tracking/models/shipment"
	"shipment-tracking/types"
)

// Service builds the dashboard numbers and the date-ranged shipment report.
// Read only.
type Service struct {
	DB *gorm.DB
}

// NewService creates a report service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// StatusCount is one per-status tally on the dashboard.
type StatusCount struct {
	Status shipmentModel.ShipmentStatus `json:"status"`
	Count  int64                        `json:"count"`
}

// Dashboard returns per-status shipment counts plus today's and this month's
// totals.
func (s *Service) Dashboard() types.Result {
	counts := make([]StatusCount, 0, len(shipmentModel.GetAllShipmentStatuses()))
	for _, status := range shipmentModel.GetAllShipmentStatuses() {
		var c int64
		if err := s.DB.Model(&shipmentModel.Shipment{}).Where("status = ?", status).Count(&c).Error; err != nil {
			logger.Error("Failed to count shipments by status", err)
			return types.Fail(types.KindInternal, "failed to build the dashboard")
		}
		counts = append(counts, StatusCount{Status: status, Count: c})
	}

	today := now.BeginningOfDay()
	var todayTotal int64
	if err := s.DB.Model(&shipmentModel.Shipment{}).
		Where("date >= ? AND date <= ?", today, now.EndOfDay()).
		Count(&todayTotal).Error; err != nil {
		logger.Error("Failed to count today's shipments", err)
		return types.Fail(types.KindInternal, "failed to build the dashboard")
	}

	var monthTotal int64
	if err := s.DB.Model(&shipmentModel.Shipment{}).
		Where("date >= ? AND date <= ?", now.BeginningOfMonth(), now.EndOfMonth()).
		Count(&monthTotal).Error; err != nil {
		logger.Error("Failed to count this month's shipments", err)
		return types.Fail(types.KindInternal, "failed to build the dashboard")
	}

	return types.Ok("Dashboard retrieved successfully", map[string]interface{}{
		"status_counts": counts,
		"today_total":   todayTotal,
		"month_total":   monthTotal,
	})
}

// ShipmentsBetween returns shipments whose date falls inside [from, to],
// inclusive on whole days, newest first.
func (s *Service) ShipmentsBetween(from, to string) types.Result {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return types.Fail(types.KindValidation, "from must be a valid date in YYYY-MM-DD format")
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return types.Fail(types.KindValidation, "to must be a valid date in YYYY-MM-DD format")
	}
	if toDate.Before(fromDate) {
		return types.Fail(types.KindValidation, "to must not be before from")
	}

	start := now.With(fromDate).BeginningOfDay()
	end := now.With(toDate).EndOfDay()

	var shipments []shipmentModel.Shipment
	err = s.DB.Preload("Customer").Preload("Courier").
		Where("date >= ? AND date <= ?", start, end).
		Order("date DESC, code DESC").
		Find(&shipments).Error
	if err != nil {
		logger.Error("Failed to load the shipment report", err)
		return types.Fail(types.KindInternal, "failed to load the shipment report")
	}

	return types.Ok("Shipment report retrieved successfully", shipments)
}
