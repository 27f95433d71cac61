package master

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shipment-tracking/logger"
	itemModel "shipment-tracking/models/item"
	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/sequence"
	"shipment-tracking/types"
	itemTypes "shipment-tracking/types/item"
)

// ItemService manages shippable goods.
type ItemService struct {
	deps
}

// Create validates the payload, mints the next BRG code when none is given
// and inserts, retrying generation on a code conflict.
func (s *ItemService) Create(actor string, req itemTypes.Request) types.Result {
	if v := s.Rules.Item(req, ""); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		code := req.Code
		if code == "" {
			next, err := s.Seq.NextID(sequence.EntityItem)
			if err != nil {
				if errors.Is(err, sequence.ErrSequenceExhausted) {
					return types.Fail(types.KindExhausted, err.Error())
				}
				logger.Error("Failed to generate item code", err)
				return types.Fail(types.KindInternal, "failed to generate an item code")
			}
			code = next
		}

		m := itemModel.Item{
			Code:         code,
			Name:         req.Name,
			CategoryCode: req.CategoryCode,
			Unit:         req.Unit,
			Price:        req.Price,
			CreatedBy:    actor,
		}
		err := s.DB.Create(&m).Error
		if err == nil {
			s.Lists.Invalidate(dropdown.KindItems)
			return types.Ok("Item created successfully", m)
		}
		if isDuplicateKey(err) {
			if req.Code != "" {
				return types.Fail(types.KindConflict, fmt.Sprintf("item %s already exists", req.Code))
			}
			continue
		}
		logger.Error("Failed to create item", err)
		return types.Fail(types.KindInternal, "failed to store the item")
	}

	return types.Fail(types.KindConflict, fmt.Sprintf("could not allocate a unique item code after %d attempts", createAttempts))
}

// Update mutates an existing item. The code is immutable.
func (s *ItemService) Update(actor, code string, req itemTypes.Request) types.Result {
	var existing itemModel.Item
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("item %s not found", code))
		}
		logger.Error("Failed to load item", err)
		return types.Fail(types.KindInternal, "database error")
	}

	req.Code = code
	if v := s.Rules.Item(req, code); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	existing.Name = req.Name
	existing.CategoryCode = req.CategoryCode
	existing.Unit = req.Unit
	existing.Price = req.Price
	existing.UpdatedBy = actor
	if err := s.DB.Save(&existing).Error; err != nil {
		logger.Error("Failed to update item", err)
		return types.Fail(types.KindInternal, "failed to update the item")
	}

	s.Lists.Invalidate(dropdown.KindItems)
	return types.Ok("Item updated successfully", existing)
}

// Delete removes an item unless a shipment line item still references it.
func (s *ItemService) Delete(code string) types.Result {
	var existing itemModel.Item
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("item %s not found", code))
		}
		logger.Error("Failed to load item", err)
		return types.Fail(types.KindInternal, "database error")
	}

	var refs int64
	if err := s.DB.Table("shipment_details").Where("item_code = ?", code).Count(&refs).Error; err != nil {
		logger.Error("Failed to check item references", err)
		return types.Fail(types.KindInternal, "database error")
	}
	if refs > 0 {
		return types.Fail(types.KindConflict, fmt.Sprintf("item %s is still referenced by %d shipment line item(s)", code, refs))
	}

	if err := s.DB.Delete(&existing).Error; err != nil {
		logger.Error("Failed to delete item", err)
		return types.Fail(types.KindInternal, "failed to delete the item")
	}

	s.Lists.Invalidate(dropdown.KindItems)
	return types.Ok("Item deleted successfully", nil)
}

// Get returns one item by code with its category loaded.
func (s *ItemService) Get(code string) types.Result {
	var found itemModel.Item
	if err := s.DB.Preload("Category").Where("code = ?", code).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("item %s not found", code))
		}
		logger.Error("Failed to load item", err)
		return types.Fail(types.KindInternal, "database error")
	}
	return types.Ok("Item retrieved successfully", found)
}

// List returns every item ordered by code, via the dropdown cache.
func (s *ItemService) List() types.Result {
	list, err := s.Lists.Get(dropdown.KindItems)
	if err != nil {
		logger.Error("Failed to list items", err)
		return types.Fail(types.KindInternal, "failed to list items")
	}
	return types.Ok("Items retrieved successfully", list)
}
