package shipment

import (
	"regexp"
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
	"shipment-tracking/services/sequence"
	"shipment-tracking/services/validation"
	"shipment-tracking/types"
	shipmentTypes "shipment-tracking/types/shipment"
)

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&categoryModel.Category{},
		&customerModel.Customer{},
		&courierModel.Courier{},
		&itemModel.Item{},
		&shipmentModel.Shipment{},
		&shipmentModel.Detail{},
		&shipmentModel.ShipmentStatusEvent{},
	))

	require.NoError(t, db.Create(&categoryModel.Category{Code: "KTG01", Name: "Electronics", CreatedBy: "tester"}).Error)
	require.NoError(t, db.Create(&customerModel.Customer{Code: "CST0001", Name: "PT Maju Jaya", Phone: "081234567890", Address: "Jl. Sudirman 1", CreatedBy: "tester"}).Error)
	require.NoError(t, db.Create(&courierModel.Courier{Code: "KRR01", Name: "Budi", Phone: "081234567891", CreatedBy: "tester"}).Error)
	require.NoError(t, db.Create(&itemModel.Item{Code: "BRG0001", Name: "Laptop", CategoryCode: "KTG01", Unit: "pcs", Price: decimal.NewFromInt(1500), CreatedBy: "tester"}).Error)
	require.NoError(t, db.Create(&itemModel.Item{Code: "BRG0002", Name: "Monitor", CategoryCode: "KTG01", Unit: "pcs", Price: decimal.NewFromInt(300), CreatedBy: "tester"}).Error)

	return NewService(db, sequence.NewGenerator(db), validation.NewPipeline(db)), db
}

func validCreateRequest() shipmentTypes.CreateRequest {
	return shipmentTypes.CreateRequest{
		Date:         "2024-01-15",
		CustomerCode: "CST0001",
		CourierCode:  "KRR01",
		VehiclePlate: "B 1234 XYZ",
		Items: []shipmentTypes.LineItem{
			{ItemCode: "BRG0001", Quantity: 2},
			{ItemCode: "BRG0002", Quantity: 1},
		},
	}
}

func mustShipment(t *testing.T, result types.Result) *shipmentModel.Shipment {
	t.Helper()
	require.True(t, result.Success, "expected success, got: %s", result.Message)
	s, ok := result.Data.(*shipmentModel.Shipment)
	require.True(t, ok, "result data is not a shipment")
	return s
}

func TestCreateMintsCodeAndDefaults(t *testing.T) {
	svc, db := testService(t)

	created := mustShipment(t, svc.Create("admin", validCreateRequest()))
	assert.Regexp(t, regexp.MustCompile(`^KRM20240115\d{3}$`), created.Code)
	assert.Regexp(t, regexp.MustCompile(`^PO\d{8}\d{3}$`), created.PONumber)
	assert.Equal(t, shipmentModel.StatusPending, created.Status)
	assert.Equal(t, "admin", created.CreatedBy)
	require.Len(t, created.Details, 2)
	assert.Equal(t, "Laptop", created.Details[0].Item.Name)

	var events int64
	require.NoError(t, db.Model(&shipmentModel.ShipmentStatusEvent{}).Where("shipment_code = ?", created.Code).Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestCreateSequencesWithinADay(t *testing.T) {
	svc, _ := testService(t)

	first := mustShipment(t, svc.Create("admin", validCreateRequest()))
	second := mustShipment(t, svc.Create("admin", validCreateRequest()))
	assert.Equal(t, "KRM20240115001", first.Code)
	assert.Equal(t, "KRM20240115002", second.Code)
	assert.NotEqual(t, first.PONumber, second.PONumber)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc, _ := testService(t)

	req := validCreateRequest()
	req.Items = nil
	result := svc.Create("admin", req)
	assert.False(t, result.Success)
	assert.Equal(t, types.KindValidation, result.Kind)
	assert.Contains(t, result.Message, "at least one line item")
}

func TestCreateRequiresNoteForNonPendingStatus(t *testing.T) {
	svc, _ := testService(t)

	req := validCreateRequest()
	req.Status = "InTransit"
	result := svc.Create("admin", req)
	assert.Equal(t, types.KindValidation, result.Kind)
	assert.Contains(t, result.Message, "note is required")

	req.Note = "left the warehouse"
	created := mustShipment(t, svc.Create("admin", req))
	assert.Equal(t, shipmentModel.StatusInTransit, created.Status)
}

func TestCreateExplicitCodeConflict(t *testing.T) {
	svc, _ := testService(t)

	req := validCreateRequest()
	req.Code = "KRM20240115001"
	mustShipment(t, svc.Create("admin", req))

	result := svc.Create("admin", req)
	assert.Equal(t, types.KindConflict, result.Kind)
	assert.Contains(t, result.Message, "KRM20240115001")
}

func TestCreateRollsBackOnDetailFailure(t *testing.T) {
	svc, db := testService(t)

	// Losing the details table makes the second statement of the transaction
	// fail; the header insert must roll back with it.
	require.NoError(t, db.Migrator().DropTable(&shipmentModel.Detail{}))

	result := svc.Create("admin", validCreateRequest())
	assert.False(t, result.Success)
	assert.Equal(t, types.KindTransaction, result.Kind)

	var headers int64
	require.NoError(t, db.Model(&shipmentModel.Shipment{}).Count(&headers).Error)
	assert.EqualValues(t, 0, headers)
	assert.Equal(t, types.KindNotFound, svc.GetByID("KRM20240115001").Kind)
}

func TestUpdateKeepsItemsOnEmptySlice(t *testing.T) {
	svc, _ := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	plate := "B 9999 ZZZ"
	updated := mustShipment(t, svc.Update("admin", created.Code, shipmentTypes.UpdateRequest{VehiclePlate: &plate}))
	assert.Equal(t, "B 9999 ZZZ", updated.VehiclePlate)
	assert.Len(t, updated.Details, 2, "an empty items slice must keep the line items")
	assert.Equal(t, created.PONumber, updated.PONumber)
}

func TestUpdateReplacesItemsWhenGiven(t *testing.T) {
	svc, db := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	updated := mustShipment(t, svc.Update("admin", created.Code, shipmentTypes.UpdateRequest{
		Items: []shipmentTypes.LineItem{{ItemCode: "BRG0002", Quantity: 7}},
	}))
	require.Len(t, updated.Details, 1)
	assert.Equal(t, "BRG0002", updated.Details[0].ItemCode)
	assert.Equal(t, 7, updated.Details[0].Quantity)

	var rows int64
	require.NoError(t, db.Model(&shipmentModel.Detail{}).Where("shipment_code = ?", created.Code).Count(&rows).Error)
	assert.EqualValues(t, 1, rows, "replaced line items must not leave orphans")
}

func TestUpdateUnknownShipment(t *testing.T) {
	svc, _ := testService(t)

	result := svc.Update("admin", "KRM20240115999", shipmentTypes.UpdateRequest{})
	assert.Equal(t, types.KindNotFound, result.Kind)
}

func TestUpdateStatusWritesEventAndExtras(t *testing.T) {
	svc, db := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	recipient := "Ibu Sari"
	geo := "-6.200000,106.816666"
	result := svc.UpdateStatus("budi", created.Code, shipmentTypes.StatusUpdateRequest{
		Status:        "Delivered",
		Note:          "received at the front desk",
		RecipientName: &recipient,
		GeoNote:       &geo,
	})
	require.True(t, result.Success, result.Message)

	var stored shipmentModel.Shipment
	require.NoError(t, db.Where("code = ?", created.Code).First(&stored).Error)
	assert.Equal(t, shipmentModel.StatusDelivered, stored.Status)
	require.NotNil(t, stored.RecipientName)
	assert.Equal(t, "Ibu Sari", *stored.RecipientName)
	assert.Equal(t, "budi", stored.UpdatedBy)

	var events int64
	require.NoError(t, db.Model(&shipmentModel.ShipmentStatusEvent{}).Where("shipment_code = ?", created.Code).Count(&events).Error)
	assert.EqualValues(t, 2, events, "create and status change must both leave an event")
}

func TestUpdateStatusRequiresNote(t *testing.T) {
	svc, _ := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	result := svc.UpdateStatus("budi", created.Code, shipmentTypes.StatusUpdateRequest{Status: "Cancelled"})
	assert.Equal(t, types.KindValidation, result.Kind)
	assert.Contains(t, result.Message, "note is required")
}

func TestStatusMayMoveBackwards(t *testing.T) {
	svc, _ := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	result := svc.UpdateStatus("budi", created.Code, shipmentTypes.StatusUpdateRequest{Status: "Delivered", Note: "received"})
	require.True(t, result.Success, result.Message)

	// Correcting a mistaken delivery back to Pending is allowed.
	result = svc.UpdateStatus("admin", created.Code, shipmentTypes.StatusUpdateRequest{Status: "Pending"})
	require.True(t, result.Success, result.Message)
}

func TestDeleteRemovesDetailsKeepsEvents(t *testing.T) {
	svc, db := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	result := svc.Delete(created.Code)
	require.True(t, result.Success, result.Message)

	var headers, details, events int64
	require.NoError(t, db.Model(&shipmentModel.Shipment{}).Where("code = ?", created.Code).Count(&headers).Error)
	require.NoError(t, db.Model(&shipmentModel.Detail{}).Where("shipment_code = ?", created.Code).Count(&details).Error)
	require.NoError(t, db.Model(&shipmentModel.ShipmentStatusEvent{}).Where("shipment_code = ?", created.Code).Count(&events).Error)
	assert.EqualValues(t, 0, headers)
	assert.EqualValues(t, 0, details)
	assert.EqualValues(t, 1, events, "audit events must outlive the shipment")

	assert.Equal(t, types.KindNotFound, svc.GetByID(created.Code).Kind)
}

func TestGetDetails(t *testing.T) {
	svc, _ := testService(t)
	created := mustShipment(t, svc.Create("admin", validCreateRequest()))

	result := svc.GetDetails(created.Code)
	require.True(t, result.Success, result.Message)
	details, ok := result.Data.([]shipmentModel.Detail)
	require.True(t, ok)
	assert.Len(t, details, 2)

	assert.Equal(t, types.KindNotFound, svc.GetDetails("KRM20240115999").Kind)
}
