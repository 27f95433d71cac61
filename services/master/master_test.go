package master

import (
	"testing"

	"github.com/shopspring/decimal"
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
	userModel "shipment-tracking/models/user"
	"shipment-tracking/services/dropdown"
	"shipment-tracking/services/sequence"
	"shipment-tracking/services/validation"
	"shipment-tracking/types"
	categoryTypes "shipment-tracking/types/category"
	courierTypes "shipment-tracking/types/courier"
	customerTypes "shipment-tracking/types/customer"
	itemTypes "shipment-tracking/types/item"
)

func testServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&categoryModel.Category{},
		&customerModel.Customer{},
		&courierModel.Courier{},
		&itemModel.Item{},
		&shipmentModel.Shipment{},
		&shipmentModel.Detail{},
	))

	seq := sequence.NewGenerator(db)
	rules := validation.NewPipeline(db)
	lists := dropdown.NewCache(db)
	return NewServices(db, seq, rules, lists), db
}

func TestCategoryCreateMintsSequentialCodes(t *testing.T) {
	svc, _ := testServices(t)

	first := svc.Categories.Create("admin", categoryTypes.Request{Name: "Electronics"})
	require.True(t, first.Success, first.Message)
	assert.Equal(t, "KTG01", first.Data.(categoryModel.Category).Code)

	second := svc.Categories.Create("admin", categoryTypes.Request{Name: "Furniture"})
	require.True(t, second.Success, second.Message)
	assert.Equal(t, "KTG02", second.Data.(categoryModel.Category).Code)
}

func TestCategoryCreateExplicitCodeConflict(t *testing.T) {
	svc, _ := testServices(t)

	result := svc.Categories.Create("admin", categoryTypes.Request{Code: "KTG05", Name: "Electronics"})
	require.True(t, result.Success, result.Message)

	result = svc.Categories.Create("admin", categoryTypes.Request{Code: "KTG05", Name: "Furniture"})
	assert.Equal(t, types.KindConflict, result.Kind)
}

func TestCategoryUpdateKeepsCode(t *testing.T) {
	svc, _ := testServices(t)
	require.True(t, svc.Categories.Create("admin", categoryTypes.Request{Name: "Electronics"}).Success)

	result := svc.Categories.Update("admin", "KTG01", categoryTypes.Request{Code: "KTG77", Name: "Home Electronics"})
	require.True(t, result.Success, result.Message)
	updated := result.Data.(categoryModel.Category)
	assert.Equal(t, "KTG01", updated.Code)
	assert.Equal(t, "Home Electronics", updated.Name)
	assert.Equal(t, "admin", updated.UpdatedBy)
}

func TestCategoryDeleteGuardedByItems(t *testing.T) {
	svc, _ := testServices(t)
	require.True(t, svc.Categories.Create("admin", categoryTypes.Request{Name: "Electronics"}).Success)
	require.True(t, svc.Items.Create("admin", itemTypes.Request{Name: "Laptop", CategoryCode: "KTG01", Unit: "pcs", Price: decimal.NewFromInt(1500)}).Success)

	result := svc.Categories.Delete("KTG01")
	assert.Equal(t, types.KindConflict, result.Kind)
	assert.Contains(t, result.Message, "still referenced")

	require.True(t, svc.Items.Delete("BRG0001").Success)
	assert.True(t, svc.Categories.Delete("KTG01").Success)
}

func TestItemCreateMintsFourDigitCode(t *testing.T) {
	svc, _ := testServices(t)
	require.True(t, svc.Categories.Create("admin", categoryTypes.Request{Name: "Electronics"}).Success)

	result := svc.Items.Create("admin", itemTypes.Request{Name: "Laptop", CategoryCode: "KTG01", Unit: "pcs", Price: decimal.NewFromInt(1500)})
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "BRG0001", result.Data.(itemModel.Item).Code)
}

func TestItemDeleteGuardedByShipmentDetails(t *testing.T) {
	svc, db := testServices(t)
	require.True(t, svc.Categories.Create("admin", categoryTypes.Request{Name: "Electronics"}).Success)
	require.True(t, svc.Items.Create("admin", itemTypes.Request{Name: "Laptop", CategoryCode: "KTG01", Unit: "pcs", Price: decimal.NewFromInt(1500)}).Success)

	require.NoError(t, db.Create(&shipmentModel.Detail{ShipmentCode: "KRM20240115001", ItemCode: "BRG0001", Quantity: 2}).Error)

	result := svc.Items.Delete("BRG0001")
	assert.Equal(t, types.KindConflict, result.Kind)
}

func TestCustomerCreateAndPhoneUniqueness(t *testing.T) {
	svc, _ := testServices(t)

	result := svc.Customers.Create("admin", customerTypes.Request{Name: "PT Maju Jaya", Phone: "081234567890", Address: "Jl. Sudirman 1"})
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "CST0001", result.Data.(customerModel.Customer).Code)

	result = svc.Customers.Create("admin", customerTypes.Request{Name: "CV Baru", Phone: "081234567890", Address: "Jl. Thamrin 2"})
	assert.Equal(t, types.KindValidation, result.Kind)
	assert.Contains(t, result.Message, "phone is already in use")
}

func TestCourierDeleteGuardedByShipments(t *testing.T) {
	svc, db := testServices(t)
	require.True(t, svc.Couriers.Create("admin", courierTypes.Request{Name: "Budi", Phone: "081234567891"}).Success)
	require.True(t, svc.Customers.Create("admin", customerTypes.Request{Name: "PT Maju Jaya", Phone: "081234567890", Address: "Jl. Sudirman 1"}).Success)

	s := shipmentModel.Shipment{
		Code:         "KRM20240115001",
		CustomerCode: "CST0001",
		CourierCode:  "KRR01",
		VehiclePlate: "B 1234 XYZ",
		PONumber:     "PO20240115001",
		Status:       shipmentModel.StatusPending,
		CreatedBy:    "tester",
	}
	require.NoError(t, db.Create(&s).Error)

	result := svc.Couriers.Delete("KRR01")
	assert.Equal(t, types.KindConflict, result.Kind)
}

func TestListReflectsWritesThroughCache(t *testing.T) {
	svc, _ := testServices(t)

	require.True(t, svc.Categories.Create("admin", categoryTypes.Request{Name: "Electronics"}).Success)
	result := svc.Categories.List()
	require.True(t, result.Success, result.Message)
	assert.Len(t, result.Data.([]categoryModel.Category), 1)

	// The create after a cached read must show up in the next list.
	require.True(t, svc.Categories.Create("admin", categoryTypes.Request{Name: "Furniture"}).Success)
	result = svc.Categories.List()
	require.True(t, result.Success, result.Message)
	assert.Len(t, result.Data.([]categoryModel.Category), 2)
}

func TestGetUnknownCodeIsNotFound(t *testing.T) {
	svc, _ := testServices(t)

	assert.Equal(t, types.KindNotFound, svc.Categories.Get("KTG99").Kind)
	assert.Equal(t, types.KindNotFound, svc.Items.Get("BRG9999").Kind)
	assert.Equal(t, types.KindNotFound, svc.Customers.Get("CST9999").Kind)
	assert.Equal(t, types.KindNotFound, svc.Couriers.Get("KRR99").Kind)
}
