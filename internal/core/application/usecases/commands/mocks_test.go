package commands_test

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUniqueKey(
	ctx context.Context, channel, accountID, orderNumber string,
) (*order.Order, error) {
	args := m.Called(ctx, channel, accountID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllProcessable(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllSyncedWithoutBatch(
	ctx context.Context, channel, accountID string,
) ([]*order.Order, error) {
	args := m.Called(ctx, channel, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInBatch(ctx context.Context, batchID string) ([]*order.Order, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddAddress(ctx context.Context, address *order.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAddress(ctx context.Context, id kernel.UUID) (*order.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Address), args.Error(1)
}

func (m *MockOrderRepository) AddLabel(ctx context.Context, label *order.ShippingLabel) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockOrderRepository) UpsertTracking(ctx context.Context, tracking *order.ShippingTracking) error {
	args := m.Called(ctx, tracking)
	return args.Error(0)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetByBatchID(ctx context.Context, batchID string) (*batch.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

type MockCredentialRepository struct{ mock.Mock }

func (m *MockCredentialRepository) Add(ctx context.Context, cred *credential.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockCredentialRepository) GetActive(
	ctx context.Context, credType credential.Type, providerCode, externalAccountID string,
) (*credential.Credential, error) {
	args := m.Called(ctx, credType, providerCode, externalAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockCredentialRepository) GetAllActiveByType(
	ctx context.Context, credType credential.Type,
) ([]*credential.Credential, error) {
	args := m.Called(ctx, credType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credential.Credential), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) AppendStatusLog(ctx context.Context, entry *order.StatusLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) AppendErrorLog(ctx context.Context, entry *order.ErrorLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetStatusLogs(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusLog), args.Error(1)
}

func (m *MockAuditRepository) GetErrorLogs(ctx context.Context, orderID kernel.UUID) ([]*order.ErrorLog, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.ErrorLog), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) CredentialRepository() ports.CredentialRepository {
	args := m.Called()
	return args.Get(0).(ports.CredentialRepository)
}

func (m *MockOrderUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBatchUoW struct{ mock.Mock }

func (m *MockBatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockBatchUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockBatchUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockProviderRegistry struct{ mock.Mock }

func (m *MockProviderRegistry) OrderChannel(code string) (ports.OrderChannel, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.OrderChannel), args.Error(1)
}

func (m *MockProviderRegistry) LogisticsProvider(code string) (ports.LogisticsProvider, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.LogisticsProvider), args.Error(1)
}

type MockOrderChannel struct{ mock.Mock }

func (m *MockOrderChannel) SetCredential(cred *credential.Credential) {
	m.Called(cred)
}

func (m *MockOrderChannel) ChannelCode() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockOrderChannel) GetPendingOrders(ctx context.Context) ([]ports.ChannelOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ChannelOrder), args.Error(1)
}

func (m *MockOrderChannel) SyncTrackingInfo(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockLogisticsProvider struct{ mock.Mock }

func (m *MockLogisticsProvider) SetCredential(cred *credential.Credential) {
	m.Called(cred)
}

func (m *MockLogisticsProvider) CarrierCode() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLogisticsProvider) CreateShippingLabel(
	ctx context.Context, o *order.Order, parcelWeights []float64,
) (*order.ShippingLabel, error) {
	args := m.Called(ctx, o, parcelWeights)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ShippingLabel), args.Error(1)
}

func (m *MockLogisticsProvider) GetTrackingStatus(
	ctx context.Context, o *order.Order,
) (*order.ShippingTracking, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ShippingTracking), args.Error(1)
}
