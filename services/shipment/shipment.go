package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"shipment-tracking/logger"
	shipmentModel "shipment-tracking/models/shipment"
	"shipment-tracking/services/sequence"
	"shipment-tracking/services/shipment_event"
	"shipment-tracking/services/validation"
	"shipment-tracking/types"
	shipmentTypes "shipment-tracking/types/shipment"
)

// createAttempts bounds the generate-then-insert retry loop. A minted code is
// advisory only: a concurrent creator may claim it first, in which case the
// insert fails on the uniqueness constraint and generation is repeated.
const createAttempts = 5

// Service drives the shipment lifecycle: validated, transactional writes of
// a header plus its line item set, status transitions and reads. The actor
// is passed in explicitly by the caller; the service holds no session state.
type Service struct {
	DB      *gorm.DB
	Seq     *sequence.Generator
	Rules   *validation.Pipeline
	Details DetailStore
}

// NewService creates a shipment service
func NewService(db *gorm.DB, seq *sequence.Generator, rules *validation.Pipeline) *Service {
	return &Service{DB: db, Seq: seq, Rules: rules}
}

// Create validates the header and every line item, mints code and PO number
// when absent, then persists header and items inside one transaction. On a
// duplicate-key conflict with a generated code the whole generate+insert is
// retried up to createAttempts times; an explicit caller-supplied code is
// never retried and surfaces as a conflict instead.
func (s *Service) Create(actor string, req shipmentTypes.CreateRequest) types.Result {
	if v := s.Rules.ShipmentCreate(req); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}
	if v := s.Rules.LineItems(req.Items); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return types.Fail(types.KindValidation, "date must be a valid date in YYYY-MM-DD format")
	}

	status := shipmentModel.StatusPending
	if req.Status != "" {
		status = shipmentModel.ShipmentStatus(req.Status)
	}

	header := &shipmentModel.Shipment{
		Code:         req.Code,
		Date:         date,
		CustomerCode: req.CustomerCode,
		CourierCode:  req.CourierCode,
		VehiclePlate: req.VehiclePlate,
		PONumber:     req.PONumber,
		Status:       status,
		Note:         req.Note,
		CreatedBy:    actor,
	}

	if v := s.Rules.ShipmentHeader(header); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	if header.PONumber == "" {
		po, err := s.Seq.NextPONumber()
		if err != nil {
			logger.Error("Failed to generate PO number", err)
			return types.Fail(types.KindExhausted, "failed to generate a purchase order number")
		}
		header.PONumber = po
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		if req.Code == "" {
			code, err := s.Seq.NextShipmentCode(date)
			if err != nil {
				if errors.Is(err, sequence.ErrSequenceExhausted) {
					return types.Fail(types.KindExhausted, err.Error())
				}
				logger.Error("Failed to generate shipment code", err)
				return types.Fail(types.KindInternal, "failed to generate a shipment code")
			}
			header.Code = code
		}

		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(header).Error; err != nil {
				return err
			}
			if err := s.Details.ReplaceAll(tx, header.Code, req.Items); err != nil {
				return err
			}
			return shipment_event.SnapshotStatus(tx, header, actor)
		})
		if err == nil {
			created, loadErr := s.load(header.Code)
			if loadErr != nil {
				return types.Fail(types.KindInternal, "shipment stored but could not be reloaded")
			}
			return types.Ok("Shipment created successfully", created)
		}

		if isDuplicateKey(err) {
			if req.Code != "" {
				return types.Fail(types.KindConflict, fmt.Sprintf("shipment %s already exists", req.Code))
			}
			logger.Warning(fmt.Sprintf("Shipment code %s taken by a concurrent create, retrying (attempt %d/%d)", header.Code, attempt, createAttempts))
			continue
		}

		logger.Error("Shipment transaction failed", err)
		return types.Fail(types.KindTransaction, "failed to store the shipment: "+err.Error())
	}

	return types.Fail(types.KindConflict, fmt.Sprintf("could not allocate a unique shipment code after %d attempts", createAttempts))
}

// Update applies a full update to an existing shipment. The code is immutable.
// Nil header fields stay untouched. An empty Items slice keeps the current
// line items; a non-empty one replaces the whole set inside the same
// transaction as the header write.
func (s *Service) Update(actor, code string, req shipmentTypes.UpdateRequest) types.Result {
	existing, err := s.find(code)
	if err != nil {
		return s.notFoundOrInternal(code, err)
	}

	if v := s.Rules.ShipmentUpdate(req); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return types.Fail(types.KindValidation, "date must be a valid date in YYYY-MM-DD format")
		}
		existing.Date = date
	}
	if req.CustomerCode != nil {
		existing.CustomerCode = *req.CustomerCode
	}
	if req.CourierCode != nil {
		existing.CourierCode = *req.CourierCode
	}
	if req.VehiclePlate != nil {
		existing.VehiclePlate = *req.VehiclePlate
	}
	statusChanged := false
	if req.Status != nil {
		next := shipmentModel.ShipmentStatus(*req.Status)
		statusChanged = next != existing.Status
		existing.Status = next
	}
	if req.Note != nil {
		existing.Note = *req.Note
	}
	existing.UpdatedBy = actor

	if v := s.Rules.ShipmentHeader(existing); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}
	if len(req.Items) > 0 {
		if v := s.Rules.LineItems(req.Items); !v.Empty() {
			return types.Fail(types.KindValidation, v.Error())
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		if len(req.Items) > 0 {
			if err := s.Details.ReplaceAll(tx, existing.Code, req.Items); err != nil {
				return err
			}
		}
		if statusChanged {
			return shipment_event.SnapshotStatus(tx, existing, actor)
		}
		return nil
	})
	if err != nil {
		logger.Error("Shipment update transaction failed", err)
		return types.Fail(types.KindTransaction, "failed to update the shipment: "+err.Error())
	}

	updated, loadErr := s.load(code)
	if loadErr != nil {
		return types.Fail(types.KindInternal, "shipment updated but could not be reloaded")
	}
	return types.Ok("Shipment updated successfully", updated)
}

// UpdateStatus is the narrow path for courier-role actors: it moves the
// status and merges delivery extras (note, recipient, geolocation note),
// never commercial fields. Any valid status value is accepted; progression
// is deliberately not enforced.
func (s *Service) UpdateStatus(actor, code string, req shipmentTypes.StatusUpdateRequest) types.Result {
	existing, err := s.find(code)
	if err != nil {
		return s.notFoundOrInternal(code, err)
	}

	if v := s.Rules.StatusUpdate(req); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	existing.Status = shipmentModel.ShipmentStatus(req.Status)
	if strings.TrimSpace(req.Note) != "" {
		existing.Note = req.Note
	}
	if req.RecipientName != nil {
		existing.RecipientName = req.RecipientName
	}
	if req.GeoNote != nil {
		existing.GeoNote = req.GeoNote
	}
	existing.UpdatedBy = actor

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		return shipment_event.SnapshotStatus(tx, existing, actor)
	})
	if err != nil {
		logger.Error("Shipment status transaction failed", err)
		return types.Fail(types.KindTransaction, "failed to update the shipment status: "+err.Error())
	}

	return types.Ok("Shipment status updated successfully", existing)
}

// Delete removes a shipment header and its line items as a unit. Status
// events stay behind as audit history.
func (s *Service) Delete(code string) types.Result {
	existing, err := s.find(code)
	if err != nil {
		return s.notFoundOrInternal(code, err)
	}

	// Referential guard hook: nothing outlives a shipment today, but future
	// dependents (invoices, returns) plug in here.
	if msg := s.deleteGuard(code); msg != "" {
		return types.Fail(types.KindConflict, msg)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_code = ?", code).Delete(&shipmentModel.Detail{}).Error; err != nil {
			return err
		}
		return tx.Delete(existing).Error
	})
	if err != nil {
		logger.Error("Shipment delete transaction failed", err)
		return types.Fail(types.KindTransaction, "failed to delete the shipment: "+err.Error())
	}

	return types.Ok("Shipment deleted successfully", nil)
}

func (s *Service) deleteGuard(code string) string {
	return ""
}

// GetByID returns the shipment header with customer and courier loaded.
func (s *Service) GetByID(code string) types.Result {
	found, err := s.load(code)
	if err != nil {
		return s.notFoundOrInternal(code, err)
	}
	return types.Ok("Shipment retrieved successfully", found)
}

// GetDetails returns the line items of a shipment.
func (s *Service) GetDetails(code string) types.Result {
	if _, err := s.find(code); err != nil {
		return s.notFoundOrInternal(code, err)
	}

	details, err := s.Details.GetByShipment(s.DB, code)
	if err != nil {
		return types.Fail(types.KindInternal, "failed to load shipment details")
	}
	return types.Ok("Shipment details retrieved successfully", details)
}

// List returns shipments newest first, with customer and courier loaded.
func (s *Service) List() types.Result {
	var shipments []shipmentModel.Shipment
	err := s.DB.Preload("Customer").Preload("Courier").
		Order("created_at DESC").
		Find(&shipments).Error
	if err != nil {
		return types.Fail(types.KindInternal, "failed to list shipments")
	}
	return types.Ok("Shipments retrieved successfully", shipments)
}

func (s *Service) find(code string) (*shipmentModel.Shipment, error) {
	var found shipmentModel.Shipment
	if err := s.DB.Where("code = ?", code).First(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Service) load(code string) (*shipmentModel.Shipment, error) {
	var found shipmentModel.Shipment
	err := s.DB.Preload("Customer").Preload("Courier").
		Preload("Details").Preload("Details.Item").
		Where("code = ?", code).First(&found).Error
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Service) notFoundOrInternal(code string, err error) types.Result {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Fail(types.KindNotFound, fmt.Sprintf("shipment %s not found", code))
	}
	logger.Error("Failed to load shipment", err)
	return types.Fail(types.KindInternal, "database error")
}

// isDuplicateKey matches the uniqueness violations postgres and sqlite raise.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
