package sequence

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	categoryModel "shipment-tracking/models/category"
	courierModel "shipment-tracking/models/courier"
	customerModel "shipment-tracking/models/customer"
	itemModel "shipment-tracking/models/item"
	shipmentModel "shipment-tracking/models/shipment"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&categoryModel.Category{},
		&customerModel.Customer{},
		&courierModel.Courier{},
		&itemModel.Item{},
		&shipmentModel.Shipment{},
	))
	return db
}

func seedShipment(t *testing.T, db *gorm.DB, code, poNumber string, date time.Time) {
	t.Helper()
	s := shipmentModel.Shipment{
		Code:         code,
		Date:         date,
		CustomerCode: "CST0001",
		CourierCode:  "KRR01",
		VehiclePlate: "B 1234 XYZ",
		PONumber:     poNumber,
		Status:       shipmentModel.StatusPending,
		CreatedBy:    "tester",
	}
	require.NoError(t, db.Create(&s).Error)
}

func TestNextIDSeedsFirstCode(t *testing.T) {
	g := NewGenerator(testDB(t))

	cases := map[EntityType]string{
		EntityCategory: "KTG01",
		EntityCourier:  "KRR01",
		EntityItem:     "BRG0001",
		EntityCustomer: "CST0001",
	}
	for entity, want := range cases {
		got, err := g.NextID(entity)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNextIDContinuesFromHighest(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&categoryModel.Category{Code: "KTG03", Name: "Electronics", CreatedBy: "tester"}).Error)
	require.NoError(t, db.Create(&categoryModel.Category{Code: "KTG07", Name: "Furniture", CreatedBy: "tester"}).Error)

	got, err := NewGenerator(db).NextID(EntityCategory)
	require.NoError(t, err)
	assert.Equal(t, "KTG08", got)
}

func TestNextIDUnknownEntity(t *testing.T) {
	_, err := NewGenerator(testDB(t)).NextID(EntityType("warehouse"))
	assert.Error(t, err)
}

func TestNextIDExhaustsFixedWidth(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&categoryModel.Category{Code: "KTG99", Name: "Last", CreatedBy: "tester"}).Error)

	_, err := NewGenerator(db).NextID(EntityCategory)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSequenceExhausted))
}

func TestNextShipmentCodeScopedPerDay(t *testing.T) {
	db := testDB(t)
	g := NewGenerator(db)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	got, err := g.NextShipmentCode(day)
	require.NoError(t, err)
	assert.Equal(t, "KRM20240115001", got)

	seedShipment(t, db, "KRM20240115001", "PO20240115001", day)
	seedShipment(t, db, "KRM20240115002", "PO20240115002", day)

	got, err = g.NextShipmentCode(day)
	require.NoError(t, err)
	assert.Equal(t, "KRM20240115003", got)

	// A different day starts its own sequence.
	nextDay := day.AddDate(0, 0, 1)
	got, err = g.NextShipmentCode(nextDay)
	require.NoError(t, err)
	assert.Equal(t, "KRM20240116001", got)
}

func TestNextPONumberFormat(t *testing.T) {
	g := NewGenerator(testDB(t))

	po, err := g.NextPONumber()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PO\d{8}\d{3}$`), po)
}

func TestNextPONumberSkipsStoredNumbers(t *testing.T) {
	db := testDB(t)
	g := NewGenerator(db)

	po, err := g.NextPONumber()
	require.NoError(t, err)

	// Persist the first number, then a fresh generator (new process) must not
	// hand it out again.
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	seedShipment(t, db, "KRM20240115001", po, day)

	next, err := NewGenerator(db).NextPONumber()
	require.NoError(t, err)
	assert.NotEqual(t, po, next)
}

func TestNextPONumberConcurrentCallsAreUnique(t *testing.T) {
	g := NewGenerator(testDB(t))

	const workers = 200
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			po, err := g.NextPONumber()
			assert.NoError(t, err)
			results <- po
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, workers)
	for po := range results {
		_, dup := seen[po]
		assert.False(t, dup, "duplicate PO number %s", po)
		seen[po] = struct{}{}
	}
	assert.Len(t, seen, workers)
}
