package sequence

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"
	"shipment-tracking/logger"
)

// EntityType selects which master table a sequential code is minted for.
type EntityType string

const (
	EntityCategory EntityType = "category"
	EntityItem     EntityType = "item"
	EntityCustomer EntityType = "customer"
	EntityCourier  EntityType = "courier"
)

// ErrSequenceExhausted is returned when the next sequence number no longer
// fits the fixed digit width of an entity's code format.
var ErrSequenceExhausted = errors.New("code sequence exhausted")

// entityFormat fixes the table, prefix and zero-padded width per entity.
type entityFormat struct {
	table  string
	prefix string
	width  int
}

var formats = map[EntityType]entityFormat{
	EntityCategory: {table: "categories", prefix: "KTG", width: 2},
	EntityCourier:  {table: "couriers", prefix: "KRR", width: 2},
	EntityItem:     {table: "items", prefix: "BRG", width: 4},
	EntityCustomer: {table: "customers", prefix: "CST", width: 4},
}

const (
	shipmentPrefix = "KRM"
	shipmentWidth  = 3

	poMaxAttempts = 100
	poRetryDelay  = 2 * time.Millisecond
)

// Generator mints business codes (KTG01, BRG0001, KRM20240115001, ...) and
// purchase order numbers. Codes are advisory: the storage layer's uniqueness
// constraint is the real arbiter, callers retry generation on conflict.
type Generator struct {
	DB *gorm.DB

	mu       sync.Mutex
	issuedPO map[string]struct{}
}

// NewGenerator creates a code generator on top of db.
func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{
		DB:       db,
		issuedPO: make(map[string]struct{}),
	}
}

// NextID returns the next sequential code for a master entity, seeded at
// {prefix}0...1 when the table is empty.
func (g *Generator) NextID(entity EntityType) (string, error) {
	f, ok := formats[entity]
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entity)
	}
	return g.nextWithPrefix(f.table, f.prefix, f.width)
}

// NextShipmentCode returns the next shipment code for the given date,
// KRM{YYYYMMDD}{3-digit sequence} scoped per day.
func (g *Generator) NextShipmentCode(date time.Time) (string, error) {
	prefix := shipmentPrefix + date.Format("20060102")
	return g.nextWithPrefix("shipments", prefix, shipmentWidth)
}

func (g *Generator) nextWithPrefix(table, prefix string, width int) (string, error) {
	var codes []string
	err := g.DB.Table(table).
		Where("code LIKE ?", prefix+"%").
		Order("code DESC").
		Limit(1).
		Pluck("code", &codes).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if len(codes) > 0 {
		last := codes[0]
		n, err := strconv.Atoi(last[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("malformed code %q in table %s: %w", last, table, err)
		}
		seq = n + 1
	}

	if seq >= pow10(width) {
		return "", fmt.Errorf("%w: prefix %s, width %d", ErrSequenceExhausted, prefix, width)
	}

	return fmt.Sprintf("%s%0*d", prefix, width, seq), nil
}

// NextPONumber returns a unique purchase order number, PO{YYYYMMDD}{3-digit}.
// The 3-digit part is taken from the sub-second clock first; once a candidate
// collides the remaining attempts switch to random digits with a short sleep,
// to break ties with other callers in the same millisecond bucket. After 100
// attempts it falls back to PO{unix}{3 random digits}, trading the readable
// date encoding for guaranteed termination.
func (g *Generator) NextPONumber() (string, error) {
	datePart := time.Now().Format("20060102")
	collided := false

	for attempt := 0; attempt < poMaxAttempts; attempt++ {
		var seq int
		if !collided {
			seq = time.Now().Nanosecond() / int(time.Millisecond) % 1000
		} else {
			n, err := rand.Int(rand.Reader, big.NewInt(1000))
			if err != nil {
				return "", err
			}
			seq = int(n.Int64())
			time.Sleep(poRetryDelay)
		}

		candidate := fmt.Sprintf("PO%s%03d", datePart, seq)
		claimed, err := g.claimPO(candidate)
		if err != nil {
			return "", err
		}
		if claimed {
			return candidate, nil
		}
		collided = true
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", err
	}
	fallback := fmt.Sprintf("PO%d%03d", time.Now().Unix(), n.Int64())
	logger.Warning(fmt.Sprintf("PO number generation exhausted %d attempts, falling back to %s", poMaxAttempts, fallback))

	g.mu.Lock()
	g.issuedPO[fallback] = struct{}{}
	g.mu.Unlock()

	return fallback, nil
}

// claimPO reports whether candidate is free and, if so, reserves it for this
// process. The database check alone is not enough: two goroutines hitting the
// same millisecond bucket would both see the number as free before either
// shipment row is inserted.
func (g *Generator) claimPO(candidate string) (bool, error) {
	g.mu.Lock()
	if _, taken := g.issuedPO[candidate]; taken {
		g.mu.Unlock()
		return false, nil
	}
	g.mu.Unlock()

	var count int64
	if err := g.DB.Table("shipments").Where("po_number = ?", candidate).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, taken := g.issuedPO[candidate]; taken {
		return false, nil
	}
	g.issuedPO[candidate] = struct{}{}
	return true, nil
}

func pow10(width int) int {
	n := 1
	for i := 0; i < width; i++ {
		n *= 10
	}
	return n
}
