package master

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shipment-tracking/logger"
	customerModel "shipment-tracking/models/customer"
	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/sequence"
	"shipment-tracking/types"
	customerTypes "shipment-tracking/types/customer"
)

// CustomerService manages the receiving parties of shipments.
type CustomerService struct {
	deps
}

// Create validates the payload, mints the next CST code when none is given
// and inserts, retrying generation on a code conflict.
func (s *CustomerService) Create(actor string, req customerTypes.Request) types.Result {
	if v := s.Rules.Customer(req, ""); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		code := req.Code
		if code == "" {
			next, err := s.Seq.NextID(sequence.EntityCustomer)
			if err != nil {
				if errors.Is(err, sequence.ErrSequenceExhausted) {
					return types.Fail(types.KindExhausted, err.Error())
				}
				logger.Error("Failed to generate customer code", err)
				return types.Fail(types.KindInternal, "failed to generate a customer code")
			}
			code = next
		}

		m := customerModel.Customer{
			Code:      code,
			Name:      req.Name,
			Phone:     req.Phone,
			Address:   req.Address,
			CreatedBy: actor,
		}
		err := s.DB.Create(&m).Error
		if err == nil {
			s.Lists.Invalidate(dropdown.KindCustomers)
			return types.Ok("Customer created successfully", m)
		}
		if isDuplicateKey(err) {
			if req.Code != "" {
				return types.Fail(types.KindConflict, fmt.Sprintf("customer %s already exists", req.Code))
			}
			continue
		}
		logger.Error("Failed to create customer", err)
		return types.Fail(types.KindInternal, "failed to store the customer")
	}

	return types.Fail(types.KindConflict, fmt.Sprintf("could not allocate a unique customer code after %d attempts", createAttempts))
}

// Update mutates an existing customer. The code is immutable.
func (s *CustomerService) Update(actor, code string, req customerTypes.Request) types.Result {
	var existing customerModel.Customer
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("customer %s not found", code))
		}
		logger.Error("Failed to load customer", err)
		return types.Fail(types.KindInternal, "database error")
	}

	req.Code = code
	if v := s.Rules.Customer(req, code); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.UpdatedBy = actor
	if err := s.DB.Save(&existing).Error; err != nil {
		logger.Error("Failed to update customer", err)
		return types.Fail(types.KindInternal, "failed to update the customer")
	}

	s.Lists.Invalidate(dropdown.KindCustomers)
	return types.Ok("Customer updated successfully", existing)
}

// Delete removes a customer unless a shipment still references it.
func (s *CustomerService) Delete(code string) types.Result {
	var existing customerModel.Customer
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("customer %s not found", code))
		}
		logger.Error("Failed to load customer", err)
		return types.Fail(types.KindInternal, "database error")
	}

	var refs int64
	if err := s.DB.Table("shipments").Where("customer_code = ?", code).Count(&refs).Error; err != nil {
		logger.Error("Failed to check customer references", err)
		return types.Fail(types.KindInternal, "database error")
	}
	if refs > 0 {
		return types.Fail(types.KindConflict, fmt.Sprintf("customer %s is still referenced by %d shipment(s)", code, refs))
	}

	if err := s.DB.Delete(&existing).Error; err != nil {
		logger.Error("Failed to delete customer", err)
		return types.Fail(types.KindInternal, "failed to delete the customer")
	}

	s.Lists.Invalidate(dropdown.KindCustomers)
	return types.Ok("Customer deleted successfully", nil)
}

// Get returns one customer by code.
func (s *CustomerService) Get(code string) types.Result {
	var found customerModel.Customer
	if err := s.DB.Where("code = ?", code).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("customer %s not found", code))
		}
		logger.Error("Failed to load customer", err)
		return types.Fail(types.KindInternal, "database error")
	}
	return types.Ok("Customer retrieved successfully", found)
}

// List returns every customer ordered by code, via the dropdown cache.
func (s *CustomerService) List() types.Result {
	list, err := s.Lists.Get(dropdown.KindCustomers)
	if err != nil {
		logger.Error("Failed to list customers", err)
		return types.Fail(types.KindInternal, "failed to list customers")
	}
	return types.Ok("Customers retrieved successfully", list)
}
