package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.AddressDTO{},
		&orderrepo.LabelDTO{},
		&orderrepo.TrackingDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_addresses, shipping_labels, shipping_trackings").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(orderNumber string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), orderNumber, "woocommerce", "1001", []byte(`{"id":42}`))
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignCarrier("gls"))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetRoundTrip() {
	ctx := context.Background()
	o := suite.newOrder("A-001")

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.OrderNumber(), loaded.OrderNumber())
	suite.Equal(o.Channel(), loaded.Channel())
	suite.Equal(o.AccountID(), loaded.AccountID())
	suite.Equal(order.New, loaded.Status())
	suite.Equal("gls", loaded.CarrierCode())
	suite.JSONEq(`{"id":42}`, string(loaded.RawPayload()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateUniqueKey() {
	ctx := context.Background()
	first := suite.newOrder("A-001")
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Same channel, account and order number under a fresh aggregate id.
	duplicate := suite.newOrder("A-001")
	err := suite.repository.Add(ctx, duplicate)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePersistsTransition() {
	ctx := context.Background()
	o := suite.newOrder("A-001")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.AcceptForLabeling())
	suite.Require().NoError(o.AttachLabel("TRACK123", "https://gls.example/TRACK123"))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.LabelCreated, loaded.Status())
	suite.Equal("TRACK123", loaded.TrackingNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleSnapshotConflicts() {
	ctx := context.Background()
	o := suite.newOrder("A-001")
	suite.Require().NoError(o.AcceptForLabeling())
	suite.Require().NoError(o.AttachLabel("TRACK1", ""))
	suite.Require().NoError(o.MarkSynced(time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	// Two collaborators load the same synced order.
	completer, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	uploader, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(completer.Complete(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, completer))

	// The loser still holds the SYNCED snapshot; its full-row write must not
	// drag the order back onto an edge that no longer exists.
	suite.Require().NoError(uploader.MarkUploaded(time.Now()))
	err = suite.repository.Update(ctx, uploader)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_SequentialUpdatesAfterFlush() {
	ctx := context.Background()
	o := suite.newOrder("A-001")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.AcceptForLabeling())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	// The flush refreshed the optimistic predicate, so the same aggregate
	// can keep transitioning.
	suite.Require().NoError(o.AttachLabel("TRACK1", ""))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.LabelCreated, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByUniqueKey() {
	ctx := context.Background()
	o := suite.newOrder("A-001")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetByUniqueKey(ctx, "woocommerce", "1001", "A-001")
	suite.Require().NoError(err)
	suite.True(o.IsEqual(loaded))

	_, err = suite.repository.GetByUniqueKey(ctx, "woocommerce", "1001", "A-999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllProcessable() {
	ctx := context.Background()

	waiting := suite.newOrder("A-001")
	suite.Require().NoError(waiting.AcceptForLabeling())
	suite.Require().NoError(suite.repository.Add(ctx, waiting))

	failed := suite.newOrder("A-002")
	suite.Require().NoError(failed.AcceptForLabeling())
	suite.Require().NoError(failed.FailLabel())
	suite.Require().NoError(suite.repository.Add(ctx, failed))

	fresh := suite.newOrder("A-003")
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	processable, err := suite.repository.GetAllProcessable(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(processable, 2, "orders still in NEW are not processable")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllSyncedWithoutBatch() {
	ctx := context.Background()

	synced := suite.newOrder("A-001")
	suite.Require().NoError(synced.AcceptForLabeling())
	suite.Require().NoError(synced.AttachLabel("TRACK1", ""))
	suite.Require().NoError(synced.MarkSynced(time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, synced))

	batched := suite.newOrder("A-002")
	suite.Require().NoError(batched.AcceptForLabeling())
	suite.Require().NoError(batched.AttachLabel("TRACK2", ""))
	suite.Require().NoError(batched.MarkSynced(time.Now()))
	suite.Require().NoError(batched.AssignBatch("BATCH_WOOCOMMERCE_20250901_001"))
	suite.Require().NoError(suite.repository.Add(ctx, batched))

	eligible, err := suite.repository.GetAllSyncedWithoutBatch(ctx, "woocommerce", "")
	suite.Require().NoError(err)
	suite.Require().Len(eligible, 1)
	suite.Equal("A-001", eligible[0].OrderNumber())

	members, err := suite.repository.GetAllInBatch(ctx, "BATCH_WOOCOMMERCE_20250901_001")
	suite.Require().NoError(err)
	suite.Require().Len(members, 1)
	suite.Equal("A-002", members[0].OrderNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddressRoundTrip() {
	ctx := context.Background()
	address := &order.Address{
		ID:          kernel.NewUUID(),
		Name:        "Erika Musterfrau",
		Street:      "Musterstr.",
		HouseNumber: "1",
		City:        "Berlin",
		ZipCode:     "10115",
		CountryCode: "DE",
	}

	suite.Require().NoError(suite.repository.AddAddress(ctx, address))

	loaded, err := suite.repository.GetAddress(ctx, address.ID)
	suite.Require().NoError(err)
	suite.Equal(address.Name, loaded.Name)
	suite.Equal(address.ZipCode, loaded.ZipCode)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpsertTrackingReplacesSnapshot() {
	ctx := context.Background()
	o := suite.newOrder("A-001")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first := order.NewShippingTracking(o.ID(), "Hamburg", "in transit", false)
	suite.Require().NoError(suite.repository.UpsertTracking(ctx, first))

	second := order.NewShippingTracking(o.ID(), "Berlin", "delivered", true)
	suite.Require().NoError(suite.repository.UpsertTracking(ctx, second))

	var count int64
	suite.Require().NoError(suite.db.Table("shipping_trackings").
		Where("order_id = ?", o.ID().Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count, "refresh replaces, never accumulates")

	var description string
	suite.Require().NoError(suite.db.Table("shipping_trackings").
		Where("order_id = ?", o.ID().Bytes()).
		Pluck("description", &description).Error)
	suite.Equal("delivered", description)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
