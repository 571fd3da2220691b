package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/services"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/keylock"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/metrics"
)

// Audit operation names recorded in error log rows.
const (
	opCreateLabel  = "create_label"
	opSyncTracking = "sync_tracking"
)

// ProcessOrderCommandHandler is the flow orchestrator. One Handle call runs
// at most one stage transition for the order:
//
//   - WAITING_LABEL / LABEL_FAILED: create a shipping label via the order's
//     logistics provider
//   - LABEL_CREATED / SYNC_FAILED: push tracking info back to the sales channel
//   - any other status: no-op
//
// A stage that has already failed order.MaxStageRetries times is not retried
// again; the order escalates to EXCEPTION without touching the provider.
//
// Remote calls happen outside the transaction under the configured timeout.
// Whatever the outcome, the resulting status write and its audit rows commit
// atomically. Ordinary remote failures are absorbed into LABEL_FAILED /
// SYNC_FAILED transitions and a nil return; configuration failures (missing
// credential, unknown provider code) are returned to the caller untouched,
// leaving the order as it was.
type ProcessOrderCommandHandler struct {
	uowFactory         OrderUoWFactory
	registry           ports.ProviderRegistry
	locks              *keylock.KeyLock
	providerTimeout    time.Duration
	logisticsAccountID string
}

// NewProcessOrderCommandHandler creates the flow orchestrator handler.
// logisticsAccountID selects which carrier account credential label creation
// runs under; providerTimeout bounds every remote provider call.
func NewProcessOrderCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.ProviderRegistry,
	locks *keylock.KeyLock,
	providerTimeout time.Duration,
	logisticsAccountID string,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory:         uowFactory,
		registry:           registry,
		locks:              locks,
		providerTimeout:    providerTimeout,
		logisticsAccountID: logisticsAccountID,
	}
}

// Handle runs one orchestrator pass over the order named by the command.
// Concurrent passes over the same order are serialized; passes over
// different orders proceed in parallel.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch {
	case o.Status().ReadyForLabel():
		return h.runLabelStage(ctx, uow, o, cmd.ParcelWeights())
	case o.Status().ReadyForSync():
		return h.runSyncStage(ctx, uow, o)
	default:
		return nil
	}
}

func (h *ProcessOrderCommandHandler) runLabelStage(
	ctx context.Context,
	uow OrderUoW,
	o *order.Order,
	parcelWeights []float64,
) error {
	if o.LabelRetryCount() >= order.MaxStageRetries {
		return h.escalate(ctx, uow, o, opCreateLabel, o.LabelRetryCount())
	}

	resolver := services.NewCredentialResolver(uow.CredentialRepository())
	cred, err := resolver.ResolveLogisticsForOrder(ctx, o, h.logisticsAccountID)
	if err != nil {
		return err
	}

	provider, err := h.registry.LogisticsProvider(o.CarrierCode())
	if err != nil {
		return err
	}
	provider.SetCredential(cred)

	callCtx, cancel := context.WithTimeout(ctx, h.providerTimeout)
	defer cancel()

	label, callErr := provider.CreateShippingLabel(callCtx, o, parcelWeights)
	if callErr != nil {
		retryCount := o.LabelRetryCount()
		from := o.Status()
		if err = o.FailLabel(); err != nil {
			return err
		}

		metrics.StageTransitions.WithLabelValues("label", "failed").Inc()
		return h.commitTransition(ctx, uow, o, transitionRecords{
			statusLog: order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), "label creation failed"),
			errorLog:  order.NewErrorLog(o.ID(), o.Channel(), opCreateLabel, callErr.Error(), retryCount),
		})
	}

	from := o.Status()
	if err = o.AttachLabel(label.TrackingNumber, label.TrackingURL); err != nil {
		return err
	}
	label.OrderID = o.ID()

	metrics.StageTransitions.WithLabelValues("label", "success").Inc()
	return h.commitTransition(ctx, uow, o, transitionRecords{
		statusLog: order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(),
			fmt.Sprintf("label created by %s", label.CarrierCode)),
		label: label,
	})
}

func (h *ProcessOrderCommandHandler) runSyncStage(ctx context.Context, uow OrderUoW, o *order.Order) error {
	if o.SyncRetryCount() >= order.MaxStageRetries {
		return h.escalate(ctx, uow, o, opSyncTracking, o.SyncRetryCount())
	}

	resolver := services.NewCredentialResolver(uow.CredentialRepository())
	cred, err := resolver.ResolveChannelForOrder(ctx, o)
	if err != nil {
		return err
	}

	channel, err := h.registry.OrderChannel(o.Channel())
	if err != nil {
		return err
	}
	channel.SetCredential(cred)

	callCtx, cancel := context.WithTimeout(ctx, h.providerTimeout)
	defer cancel()

	if callErr := channel.SyncTrackingInfo(callCtx, o); callErr != nil {
		retryCount := o.SyncRetryCount()
		from := o.Status()
		if err = o.FailSync(); err != nil {
			return err
		}

		metrics.StageTransitions.WithLabelValues("sync", "failed").Inc()
		return h.commitTransition(ctx, uow, o, transitionRecords{
			statusLog: order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), "tracking sync failed"),
			errorLog:  order.NewErrorLog(o.ID(), o.Channel(), opSyncTracking, callErr.Error(), retryCount),
		})
	}

	from := o.Status()
	if err = o.MarkSynced(time.Now()); err != nil {
		return err
	}

	metrics.StageTransitions.WithLabelValues("sync", "success").Inc()
	return h.commitTransition(ctx, uow, o, transitionRecords{
		statusLog: order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), "tracking synced to channel"),
	})
}

// escalate moves an order whose stage exhausted its retries to EXCEPTION.
// The provider is never called on this path.
func (h *ProcessOrderCommandHandler) escalate(
	ctx context.Context,
	uow OrderUoW,
	o *order.Order,
	operation string,
	retryCount int,
) error {
	from := o.Status()
	if err := o.Escalate(); err != nil {
		return err
	}

	stage := "label"
	if operation == opSyncTracking {
		stage = "sync"
	}
	metrics.StageTransitions.WithLabelValues(stage, "exception").Inc()

	message := fmt.Sprintf("max retries (%d) exceeded", order.MaxStageRetries)
	return h.commitTransition(ctx, uow, o, transitionRecords{
		statusLog: order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), message),
		errorLog:  order.NewErrorLog(o.ID(), o.Channel(), operation, message, retryCount),
	})
}

// transitionRecords carries everything a stage outcome must persist next to
// the order row itself.
type transitionRecords struct {
	statusLog *order.StatusLog
	errorLog  *order.ErrorLog
	label     *order.ShippingLabel
}

// commitTransition writes the order update and its audit rows in a single
// transaction.
func (h *ProcessOrderCommandHandler) commitTransition(
	ctx context.Context,
	uow OrderUoW,
	o *order.Order,
	records transitionRecords,
) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if records.label != nil {
		if err := uow.OrderRepository().AddLabel(ctx, records.label); err != nil {
			return err
		}
	}

	if records.statusLog != nil {
		if err := uow.AuditRepository().AppendStatusLog(ctx, records.statusLog); err != nil {
			return err
		}
	}

	if records.errorLog != nil {
		if err := uow.AuditRepository().AppendErrorLog(ctx, records.errorLog); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
