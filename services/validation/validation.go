package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	shipmentModel "shipment-tracking/models/shipment"
	categoryTypes "shipment-tracking/types/category"
	courierTypes "shipment-tracking/types/courier"
	customerTypes "shipment-tracking/types/customer"
	itemTypes "shipment-tracking/types/item"
	shipmentTypes "shipment-tracking/types/shipment"
)

// Violations is the full list of human-readable rule violations for one
// payload. Operations abort when the list is non-empty and surface the whole
// list, not just the first failure.
type Violations []string

func (v Violations) Error() string {
	return strings.Join(v, "; ")
}

// Empty reports whether the payload passed every rule.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Business code formats are part of the external contract.
var (
	categoryCodeRe = regexp.MustCompile(`^KTG\d{2}$`)
	courierCodeRe  = regexp.MustCompile(`^KRR\d{2}$`)
	itemCodeRe     = regexp.MustCompile(`^BRG\d{4}$`)
	customerCodeRe = regexp.MustCompile(`^CST\d{4}$`)
	shipmentCodeRe = regexp.MustCompile(`^KRM\d{8}\d{3}$`)
)

// Pipeline checks candidate payloads before any write. Field-shape rules run
// through validator tags on the request structs; reference existence and
// natural-key uniqueness run as read-only lookups. Nothing here mutates state.
type Pipeline struct {
	DB       *gorm.DB
	validate *validator.Validate
}

// NewPipeline creates a validation pipeline on top of db.
func NewPipeline(db *gorm.DB) *Pipeline {
	v := validator.New()

	// Report json field names in messages instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Pipeline{DB: db, validate: v}
}

func (p *Pipeline) checkStruct(s interface{}) Violations {
	err := p.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Violations{err.Error()}
	}

	var v Violations
	for _, fe := range fieldErrs {
		v = append(v, messageFor(fe))
	}
	return v
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// exists counts rows in table whose code column matches.
func (p *Pipeline) exists(table, code string) (bool, error) {
	var count int64
	err := p.DB.Table(table).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// takenByOther reports whether another row (code <> excludeCode) already
// holds value in the given column.
func (p *Pipeline) takenByOther(table, column, value, excludeCode string) bool {
	var count int64
	q := p.DB.Table(table).Where(column+" = ?", value)
	if excludeCode != "" {
		q = q.Where("code <> ?", excludeCode)
	}
	if err := q.Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// Category validates a category payload. excludeCode is the code of the row
// being updated, empty on create.
func (p *Pipeline) Category(req categoryTypes.Request, excludeCode string) Violations {
	v := p.checkStruct(req)

	if req.Code != "" && !categoryCodeRe.MatchString(req.Code) {
		v = append(v, "code must match the KTG{2-digit} format")
	}
	if req.Name != "" && p.takenByOther("categories", "name", req.Name, excludeCode) {
		v = append(v, "name is already in use by another category")
	}
	return v
}

// Item validates an item payload.
func (p *Pipeline) Item(req itemTypes.Request, excludeCode string) Violations {
	v := p.checkStruct(req)

	if req.Code != "" && !itemCodeRe.MatchString(req.Code) {
		v = append(v, "code must match the BRG{4-digit} format")
	}
	if req.Price.IsNegative() {
		v = append(v, "price must not be negative")
	}
	if req.CategoryCode != "" {
		ok, err := p.exists("categories", req.CategoryCode)
		if err == nil && !ok {
			v = append(v, fmt.Sprintf("category %s does not exist", req.CategoryCode))
		}
	}
	if req.Name != "" && p.takenByOther("items", "name", req.Name, excludeCode) {
		v = append(v, "name is already in use by another item")
	}
	return v
}

// Customer validates a customer payload.
func (p *Pipeline) Customer(req customerTypes.Request, excludeCode string) Violations {
	v := p.checkStruct(req)

	if req.Code != "" && !customerCodeRe.MatchString(req.Code) {
		v = append(v, "code must match the CST{4-digit} format")
	}
	if req.Phone != "" && p.takenByOther("customers", "phone", req.Phone, excludeCode) {
		v = append(v, "phone is already in use by another customer")
	}
	return v
}

// Courier validates a courier payload.
func (p *Pipeline) Courier(req courierTypes.Request, excludeCode string) Violations {
	v := p.checkStruct(req)

	if req.Code != "" && !courierCodeRe.MatchString(req.Code) {
		v = append(v, "code must match the KRR{2-digit} format")
	}
	if req.Phone != "" && p.takenByOther("couriers", "phone", req.Phone, excludeCode) {
		v = append(v, "phone is already in use by another courier")
	}
	return v
}

// ShipmentCreate validates the shape of a shipment create payload. Header
// reference checks run against the merged model in ShipmentHeader.
func (p *Pipeline) ShipmentCreate(req shipmentTypes.CreateRequest) Violations {
	v := p.checkStruct(req)

	if req.Code != "" && !shipmentCodeRe.MatchString(req.Code) {
		v = append(v, "code must match the KRM{YYYYMMDD}{sequence} format")
	}
	return v
}

// ShipmentUpdate validates the shape of a full-update payload.
func (p *Pipeline) ShipmentUpdate(req shipmentTypes.UpdateRequest) Violations {
	return p.checkStruct(req)
}

// ShipmentHeader validates the merged header: references must exist, the
// status must be a member of the defined set, and once every per-field rule
// passed, a non-Pending status must carry a non-empty note.
func (p *Pipeline) ShipmentHeader(s *shipmentModel.Shipment) Violations {
	var v Violations

	if s.CustomerCode != "" {
		ok, err := p.exists("customers", s.CustomerCode)
		if err == nil && !ok {
			v = append(v, fmt.Sprintf("customer %s does not exist", s.CustomerCode))
		}
	}
	if s.CourierCode != "" {
		ok, err := p.exists("couriers", s.CourierCode)
		if err == nil && !ok {
			v = append(v, fmt.Sprintf("courier %s does not exist", s.CourierCode))
		}
	}
	if !s.Status.IsValid() {
		v = append(v, fmt.Sprintf("status %s is not a valid shipment status", s.Status))
	}

	// Cross-field rule, only once the per-field rules pass.
	if v.Empty() && s.Status.RequiresNote() && strings.TrimSpace(s.Note) == "" {
		v = append(v, "note is required when the status is not Pending")
	}
	return v
}

// LineItems validates a shipment's line item payload as a unit: at least one
// entry, positive quantities, and every referenced item must exist.
func (p *Pipeline) LineItems(items []shipmentTypes.LineItem) Violations {
	var v Violations

	if len(items) == 0 {
		v = append(v, "a shipment requires at least one line item")
		return v
	}

	for i, it := range items {
		if it.ItemCode == "" {
			v = append(v, fmt.Sprintf("line item %d: item_code is required", i+1))
			continue
		}
		if it.Quantity <= 0 {
			v = append(v, fmt.Sprintf("line item %d: quantity must be greater than 0", i+1))
		}
		ok, err := p.exists("items", it.ItemCode)
		if err == nil && !ok {
			v = append(v, fmt.Sprintf("line item %d: item %s does not exist", i+1, it.ItemCode))
		}
	}
	return v
}

// StatusUpdate validates the courier-facing status change payload.
func (p *Pipeline) StatusUpdate(req shipmentTypes.StatusUpdateRequest) Violations {
	v := p.checkStruct(req)

	status := shipmentModel.ShipmentStatus(req.Status)
	if req.Status != "" && !status.IsValid() {
		v = append(v, fmt.Sprintf("status %s is not a valid shipment status", req.Status))
	}
	if v.Empty() && status.RequiresNote() && strings.TrimSpace(req.Note) == "" {
		v = append(v, "note is required when the status is not Pending")
	}
	return v
}
