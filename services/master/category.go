package master

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shipment-tracking/logger"
	categoryModel "shipment-tracking/models/category"
	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/sequence"
	"shipment-tracking/types"
	categoryTypes "shipment-tracking/types/category"
)

// CategoryService manages item categories.
type CategoryService struct {
	deps
}

// Create validates the payload, mints the next KTG code when none is given
// and inserts, retrying generation on a code conflict.
func (s *CategoryService) Create(actor string, req categoryTypes.Request) types.Result {
	if v := s.Rules.Category(req, ""); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		code := req.Code
		if code == "" {
			next, err := s.Seq.NextID(sequence.EntityCategory)
			if err != nil {
				if errors.Is(err, sequence.ErrSequenceExhausted) {
					return types.Fail(types.KindExhausted, err.Error())
				}
				logger.Error("Failed to generate category code", err)
				return types.Fail(types.KindInternal, "failed to generate a category code")
			}
			code = next
		}

		m := categoryModel.Category{Code: code, Name: req.Name, CreatedBy: actor}
		err := s.DB.Create(&m).Error
		if err == nil {
			s.Lists.Invalidate(dropdown.KindCategories)
			return types.Ok("Category created successfully", m)
		}
		if isDuplicateKey(err) {
			if req.Code != "" {
				return types.Fail(types.KindConflict, fmt.Sprintf("category %s already exists", req.Code))
			}
			continue
		}
		logger.Error("Failed to create category", err)
		return types.Fail(types.KindInternal, "failed to store the category")
	}

	return types.Fail(types.KindConflict, fmt.Sprintf("could not allocate a unique category code after %d attempts", createAttempts))
}

// Update renames an existing category. The code is immutable.
func (s *CategoryService) Update(actor, code string, req categoryTypes.Request) types.Result {
	var existing categoryModel.Category
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("category %s not found", code))
		}
		logger.Error("Failed to load category", err)
		return types.Fail(types.KindInternal, "database error")
	}

	req.Code = code
	if v := s.Rules.Category(req, code); !v.Empty() {
		return types.Fail(types.KindValidation, v.Error())
	}

	existing.Name = req.Name
	existing.UpdatedBy = actor
	if err := s.DB.Save(&existing).Error; err != nil {
		logger.Error("Failed to update category", err)
		return types.Fail(types.KindInternal, "failed to update the category")
	}

	s.Lists.Invalidate(dropdown.KindCategories)
	return types.Ok("Category updated successfully", existing)
}

// Delete removes a category unless an item still references it.
func (s *CategoryService) Delete(code string) types.Result {
	var existing categoryModel.Category
	if err := s.DB.Where("code = ?", code).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("category %s not found", code))
		}
		logger.Error("Failed to load category", err)
		return types.Fail(types.KindInternal, "database error")
	}

	var refs int64
	if err := s.DB.Table("items").Where("category_code = ?", code).Count(&refs).Error; err != nil {
		logger.Error("Failed to check category references", err)
		return types.Fail(types.KindInternal, "database error")
	}
	if refs > 0 {
		return types.Fail(types.KindConflict, fmt.Sprintf("category %s is still referenced by %d item(s)", code, refs))
	}

	if err := s.DB.Delete(&existing).Error; err != nil {
		logger.Error("Failed to delete category", err)
		return types.Fail(types.KindInternal, "failed to delete the category")
	}

	s.Lists.Invalidate(dropdown.KindCategories)
	return types.Ok("Category deleted successfully", nil)
}

// Get returns one category by code.
func (s *CategoryService) Get(code string) types.Result {
	var found categoryModel.Category
	if err := s.DB.Where("code = ?", code).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Fail(types.KindNotFound, fmt.Sprintf("category %s not found", code))
		}
		logger.Error("Failed to load category", err)
		return types.Fail(types.KindInternal, "database error")
	}
	return types.Ok("Category retrieved successfully", found)
}

// List returns every category ordered by code, via the dropdown cache.
func (s *CategoryService) List() types.Result {
	list, err := s.Lists.Get(dropdown.KindCategories)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return types.Fail(types.KindInternal, "failed to list categories")
	}
	return types.Ok("Categories retrieved successfully", list)
}
