package master

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shipment-tracking/logger"
	courierModel "shipment-tracking/models/courier"
	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/sequence"
	"shipment-tracking/types"
	courierTypes "shipment-tracking/types/courier"
)

// CourierService manages delivery drivers.
type CourierService struct {
	deps
}

// Create validates the payload, mints the next KRR code when none is given
// and inserts, retrying generation on a code conflict.
func (s *CourierService) Create(actor string, req courierTypes.Request) types.Result {
	if v := s.Rules.Courier(req, ""); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		code := req.Code
		if code == "" {
			next, err := s.Seq.NextID(sequence.EntityCourier)
			if err != nil {
				if errors.Is(err, sequence.ErrSequenceExhausted) {
					return types.Fail(types.KindExhausted, err.Error())
				}
				logger.Error("Failed to generate courier code", err)
				return types.Fail(types.KindInternal, "failed to generate a courier code")
			}
			code = next
		}

		m := courierModel.Courier{
			Code:      code,
			Name:      req.Name,
			Phone:     req.Phone,
			CreatedBy: actor,
		}
		err := s.DB.Create(&m).Error
		if err == nil {
			s.Lists.Invalidate(dropdown.KindCouriers)
			return types.Ok("Courier created successfully", m)
		}
		if isDuplicateKey(err) {
			if req.Code != "" {
				return types.Fail(types.KindConflict, fmt.Sprintf("courier %s already exists", req.Code))
			}
			continue
		}
		logger.Error("Failed to create courier", err)
		return types.Fail(types.KindInternal, "failed to store the courier")
	}

	return types.Fail(types.KindConflict, fmt.Sprintf("could not allocate a unique courier code after %d attempts", createAttempts))
}

// Update mutates an existing courier. The code is immutable.
func (s *CourierService) Update(actor, code string, req courierTypes.Request) types.Result {
	var existing courierModel.Courier
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("courier %s not found", code))
		}
		logger.Error("Failed to load courier", err)
		return types.Fail(types.KindInternal, "database error")
	}

	req.Code = code
	if v := s.Rules.Courier(req, code); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.UpdatedBy = actor
	if err := s.DB.Save(&existing).Error; err != nil {
		logger.Error("Failed to update courier", err)
		return types.Fail(types.KindInternal, "failed to update the courier")
	}

	s.Lists.Invalidate(dropdown.KindCouriers)
	return types.Ok("Courier updated successfully", existing)
}

// Delete removes a courier unless a shipment or a login still references it.
func (s *CourierService) Delete(code string) types.Result {
	var existing courierModel.Courier
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("courier %s not found", code))
		}
		logger.Error("Failed to load courier", err)
		return types.Fail(types.KindInternal, "database error")
	}

	var refs int64
	if err := s.DB.Table("shipments").Where("courier_code = ?", code).Count(&refs).Error; err != nil {
		logger.Error("Failed to check courier references", err)
		return types.Fail(types.KindInternal, "database error")
	}
	if refs > 0 {
		return types.Fail(types.KindConflict, fmt.Sprintf("courier %s is still referenced by %d shipment(s)", code, refs))
	}

	var logins int64
	if err := s.DB.Table("users").Where("courier_code = ?", code).Count(&logins).Error; err != nil {
		logger.Error("Failed to check courier logins", err)
		return types.Fail(types.KindInternal, "database error")
	}
	if logins > 0 {
		return types.Fail(types.KindConflict, fmt.Sprintf("courier %s still has a login linked to it", code))
	}

	if err := s.DB.Delete(&existing).Error; err != nil {
		logger.Error("Failed to delete courier", err)
		return types.Fail(types.KindInternal, "failed to delete the courier")
	}

	s.Lists.Invalidate(dropdown.KindCouriers)
	return types.Ok("Courier deleted successfully", nil)
}

// Get returns one courier by code.
func (s *CourierService) Get(code string) types.Result {
	var found courierModel.Courier
	if err := s.DB.Where("code = ?", code).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("courier %s not found", code))
		}
		logger.Error("Failed to load courier", err)
		return types.Fail(types.KindInternal, "database error")
	}
	return types.Ok("Courier retrieved successfully", found)
}

// List returns every courier ordered by code, via the dropdown cache.
func (s *CourierService) List() types.Result {
	list, err := s.Lists.Get(dropdown.KindCouriers)
	if err != nil {
		logger.Error("Failed to list couriers", err)
		return types.Fail(types.KindInternal, "failed to list couriers")
	}
	return types.Ok("Couriers retrieved successfully", list)
}
