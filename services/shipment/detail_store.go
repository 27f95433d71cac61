package shipment

import (
	"gorm.io/gorm"

	shipmentModel "shipment-tracking/models/shipment"
	shipmentTypes "shipment-tracking/types/shipment"
)

// DetailStore persists the line items belonging to a shipment as a unit.
// It never opens its own transaction: ReplaceAll runs inside the caller's,
// so a failing insert rolls back the whole shipment write.
type DetailStore struct{}

// ReplaceAll deletes every existing line item for shipmentCode and bulk
// inserts the supplied set. Full replace, no diffing.
func (DetailStore) ReplaceAll(tx *gorm.DB, shipmentCode string, items []shipmentTypes.LineItem) error {
	if err := tx.Where("shipment_code = ?", shipmentCode).Delete(&shipmentModel.Detail{}).Error; err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	details := make([]shipmentModel.Detail, 0, len(items))
	for _, it := range items {
		details = append(details, shipmentModel.Detail{
			ShipmentCode: shipmentCode,
			ItemCode:     it.ItemCode,
			Quantity:     it.Quantity,
		})
	}
	return tx.Create(&details).Error
}

// GetByShipment returns the line items of a shipment with their items loaded.
func (DetailStore) GetByShipment(db *gorm.DB, shipmentCode string) ([]shipmentModel.Detail, error) {
	var details []shipmentModel.Detail
	err := db.Preload("Item").
		Where("shipment_code = ?", shipmentCode).
		Order("id").
		Find(&details).Error
	return details, err
}
