package batchrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres/batchrepo"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type BatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *batchrepo.GormBatchRepository
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&batchrepo.BatchDTO{}))
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_batches").Error)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = batchrepo.NewGormBatchRepository(suite.db, tracker)
}

func (suite *BatchRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BatchRepositoryIntegrationTestSuite) newBatch(batchID string) *batch.Batch {
	b, err := batch.NewBatch(kernel.NewUUID(), batchID, "woocommerce", 4, "ops")
	suite.Require().NoError(err)
	return b
}

func (suite *BatchRepositoryIntegrationTestSuite) TestAddAndGetByBatchID() {
	ctx := context.Background()
	b := suite.newBatch("BATCH_WOOCOMMERCE_20250901_001")

	suite.Require().NoError(suite.repository.Add(ctx, b))

	loaded, err := suite.repository.GetByBatchID(ctx, "BATCH_WOOCOMMERCE_20250901_001")
	suite.Require().NoError(err)
	suite.Equal(b.BatchID(), loaded.BatchID())
	suite.Equal(4, loaded.OrderCount())
	suite.Equal(batch.Pending, loaded.Status())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestAdd_DuplicateBatchID() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_WOOCOMMERCE_20250901_001")))

	err := suite.repository.Add(ctx, suite.newBatch("BATCH_WOOCOMMERCE_20250901_001"))

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *BatchRepositoryIntegrationTestSuite) TestCountByPrefix() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_WOOCOMMERCE_20250901_001")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_WOOCOMMERCE_20250901_002")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_WOOCOMMERCE_20250902_001")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_AMAZON_20250901_001")))

	count, err := suite.repository.CountByPrefix(ctx, "BATCH_WOOCOMMERCE_20250901_")
	suite.Require().NoError(err)
	suite.Equal(int64(2), count, "other days and channels never bleed into the sequence")
}

func (suite *BatchRepositoryIntegrationTestSuite) TestUpdatePersistsCompletion() {
	ctx := context.Background()
	b := suite.newBatch("BATCH_WOOCOMMERCE_20250901_001")
	suite.Require().NoError(suite.repository.Add(ctx, b))

	suite.Require().NoError(b.Complete(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, b))

	loaded, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(batch.Completed, loaded.Status())
	suite.NotNil(loaded.CompletedAt())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestCountByPrefix_UnderscoresMatchLiterally() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_SHOP21_20250901_001")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBatch("BATCH_SHOP_1_20250901_001")))

	// "SHOP_1" and "SHOP21" prefixes are the same length; only a literal
	// underscore match keeps their sequences apart.
	count, err := suite.repository.CountByPrefix(ctx, "BATCH_SHOP_1_20250901_")
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.repository.CountByPrefix(ctx, "BATCH_SHOP21_20250901_")
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *BatchRepositoryIntegrationTestSuite) TestUpdate_StaleSnapshotConflicts() {
	ctx := context.Background()
	b := suite.newBatch("BATCH_WOOCOMMERCE_20250901_001")
	suite.Require().NoError(suite.repository.Add(ctx, b))

	completer, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	uploader, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(completer.Complete(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, completer))

	// The second writer still holds the pending snapshot; flushing it would
	// reopen a batch that was just closed.
	suite.Require().NoError(uploader.MarkUploaded())
	err = suite.repository.Update(ctx, uploader)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(batch.Completed, loaded.Status())
}

func TestBatchRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BatchRepositoryIntegrationTestSuite))
}
