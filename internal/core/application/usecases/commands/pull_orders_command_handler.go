package commands

import (
	"context"
	"errors"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/metrics"
)

// metaDefaultCarrier is the credential meta key naming the carrier newly
// pulled orders are labeled with.
const metaDefaultCarrier = "default_carrier"

// PullReport summarizes one channel account's share of an ingestion pass.
// Err carries the account-level failure, if any; accounts fail independently.
type PullReport struct {
	Channel   string
	AccountID string
	Pulled    int
	Created   int
	Skipped   int
	Err       error
}

// PullOrdersCommandHandler runs the ingestion pass. For every active channel
// credential it fetches the account's pending orders, persists the unseen
// ones together with their addresses and moves them NEW → WAITING_LABEL.
//
// Orders the system already holds (same channel, account and order number)
// are skipped; the database uniqueness constraint is the arbiter, so two
// overlapping passes cannot register an order twice. Each order commits in
// its own transaction: one bad order never rolls back its siblings.
type PullOrdersCommandHandler struct {
	uowFactory      OrderUoWFactory
	registry        ports.ProviderRegistry
	providerTimeout time.Duration
}

// NewPullOrdersCommandHandler creates a handler for ingestion passes.
func NewPullOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.ProviderRegistry,
	providerTimeout time.Duration,
) PullOrdersCommandHandler {
	return PullOrdersCommandHandler{
		uowFactory:      uowFactory,
		registry:        registry,
		providerTimeout: providerTimeout,
	}
}

// Handle pulls pending orders from every matching channel account and
// returns one report per account. The returned error covers only failures
// before any account was attempted; per-account failures land in the
// reports.
func (h *PullOrdersCommandHandler) Handle(ctx context.Context, cmd PullOrdersCommand) ([]PullReport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	creds, err := uow.CredentialRepository().GetAllActiveByType(ctx, credential.TypeChannel)
	if err != nil {
		return nil, err
	}

	reports := make([]PullReport, 0, len(creds))
	for _, cred := range creds {
		if cmd.Channel() != "" && cred.ProviderCode() != cmd.Channel() {
			continue
		}

		reports = append(reports, h.pullAccount(ctx, cred))
	}

	return reports, nil
}

// pullAccount fetches and registers one channel account's pending orders.
func (h *PullOrdersCommandHandler) pullAccount(ctx context.Context, cred *credential.Credential) PullReport {
	report := PullReport{
		Channel:   cred.ProviderCode(),
		AccountID: cred.ExternalAccountID(),
	}

	channel, err := h.registry.OrderChannel(cred.ProviderCode())
	if err != nil {
		report.Err = err
		return report
	}
	channel.SetCredential(cred)

	callCtx, cancel := context.WithTimeout(ctx, h.providerTimeout)
	defer cancel()

	pending, err := channel.GetPendingOrders(callCtx)
	if err != nil {
		metrics.OrdersPulled.WithLabelValues(cred.ProviderCode(), "failed").Inc()
		report.Err = err
		return report
	}
	report.Pulled = len(pending)

	defaultCarrier := cred.MetaString(metaDefaultCarrier)

	for _, channelOrder := range pending {
		created, err := h.registerOrder(ctx, channelOrder, defaultCarrier)
		switch {
		case err != nil:
			metrics.OrdersPulled.WithLabelValues(cred.ProviderCode(), "failed").Inc()
			report.Err = err
			return report
		case created:
			metrics.OrdersPulled.WithLabelValues(cred.ProviderCode(), "created").Inc()
			report.Created++
		default:
			metrics.OrdersPulled.WithLabelValues(cred.ProviderCode(), "skipped").Inc()
			report.Skipped++
		}
	}

	return report
}

// registerOrder persists one fetched order, its addresses and the
// NEW → WAITING_LABEL transition in a single transaction. Returns false
// without error when the order is already known.
func (h *PullOrdersCommandHandler) registerOrder(
	ctx context.Context,
	channelOrder ports.ChannelOrder,
	defaultCarrier string,
) (bool, error) {
	o := channelOrder.Order
	if err := o.Validate(); err != nil {
		return false, err
	}

	if defaultCarrier != "" && o.CarrierCode() == "" {
		if err := o.AssignCarrier(defaultCarrier); err != nil {
			return false, err
		}
	}

	from := o.Status()
	if err := o.AcceptForLabeling(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	shippingID, err := h.addAddress(ctx, orderRepo, channelOrder.ShippingAddress)
	if err != nil {
		return false, err
	}
	billingID, err := h.addAddress(ctx, orderRepo, channelOrder.BillingAddress)
	if err != nil {
		return false, err
	}
	if err = o.AttachAddresses(shippingID, billingID); err != nil {
		return false, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	statusLog := order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), "pulled from channel")
	if err = uow.AuditRepository().AppendStatusLog(ctx, statusLog); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (h *PullOrdersCommandHandler) addAddress(
	ctx context.Context,
	repo ports.OrderRepository,
	address *order.Address,
) (*kernel.UUID, error) {
	if address == nil {
		return nil, nil
	}

	if err := repo.AddAddress(ctx, address); err != nil {
		return nil, err
	}

	id := address.ID
	return &id, nil
}
