package master

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/sequence"
	"shipment-tracking/services/validation"
)

// createAttempts bounds the generate-then-insert retry loop shared by all
// master entity creates. Minted codes are advisory; the uniqueness constraint
// on the code column decides, and losers re-generate.
const createAttempts = 5

// deps are the collaborators every master-data service shares.
type deps struct {
	DB    *gorm.DB
	Seq   *sequence.Generator
	Rules *validation.Pipeline
	Lists *dropdown.Cache
}

// Services bundles the master-data CRUD services.
type Services struct {
	Categories *CategoryService
	Items      *ItemService
	Customers  *CustomerService
	Couriers   *CourierService
}

// NewServices wires the four master-data services onto shared collaborators.
func NewServices(db *gorm.DB, seq *sequence.Generator, rules *validation.Pipeline, lists *dropdown.Cache) *Services {
	d := deps{DB: db, Seq: seq, Rules: rules, Lists: lists}
	return &Services{
		Categories: &CategoryService{deps: d},
		Items:      &ItemService{deps: d},
		Customers:  &CustomerService{deps: d},
		Couriers:   &CourierService{deps: d},
	}
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
