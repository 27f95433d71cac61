package shipment_event

import (
	"gorm.io/gorm"
	shipmentModel "shipment-tracking/models/shipment"
)

// SnapshotStatus writes the shipment's current status into the audit trail
// with the given actor. Runs inside the caller's transaction.
func SnapshotStatus(tx *gorm.DB, s *shipmentModel.Shipment, actor string) error {
	ev := shipmentModel.ShipmentStatusEvent{
		ShipmentCode:  s.Code,
		Status:        s.Status,
		Note:          s.Note,
		RecipientName: s.RecipientName,
		GeoNote:       s.GeoNote,
		CreatedBy:     actor,
	}
	return tx.Create(&ev).Error
}
