package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderNotFound is returned when the targeted order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrLocatorFailure is returned when the courier position store could not
	// be queried. Distinct from an empty result, which widens the radius.
	ErrLocatorFailure = errors.New("courier position lookup failed")
)

// AssignmentResult is the outcome of an assignment run. Success means the
// order is bound to a courier; otherwise the log records why not.
type AssignmentResult struct {
	Success bool
	Order   *order.Order
	Log     *dispatch.Log
}

// StartAutoAssignmentCommandHandler runs the widening courier search for one
// order.
//
// The search starts at the configured radius and widens by the configured
// increment after every attempt that produces no acceptance, up to
// MaxIncrements attempts. Within an attempt, candidates are offered the order
// nearest-first; the first acceptance binds the order, records the assignment
// and stops. Rejections and timeouts are recorded and fall through to the
// next candidate. The whole run is bounded by the configured assignment
// timeout.
//
// Exhausting every attempt is not an error: the log is finalized as failed,
// the order stays unbound, and the periodic sweep will retry it. A locator
// failure aborts the run instead of widening, so a flaky position store is
// never mistaken for an empty neighborhood.
type StartAutoAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	couriers   ports.CourierDirectory
	notifier   ports.CourierNotifier
	selector   services.CandidateSelector
}

// NewStartAutoAssignmentCommandHandler creates a handler for auto-assignment runs.
func NewStartAutoAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	couriers ports.CourierDirectory,
	notifier ports.CourierNotifier,
) StartAutoAssignmentCommandHandler {
	return StartAutoAssignmentCommandHandler{
		uowFactory: uowFactory,
		couriers:   couriers,
		notifier:   notifier,
		selector:   services.NewCandidateSelector(),
	}
}

// Handle executes one auto-assignment run and returns its result.
// Returns ErrOrderNotFound for unknown orders and ErrLocatorFailure (wrapped)
// when the position store cannot be queried; search exhaustion returns a
// result with Success=false and a nil error.
func (h StartAutoAssignmentCommandHandler) Handle(
	ctx context.Context,
	command StartAutoAssignmentCommand,
) (AssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	ord, err := ordersRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentResult{}, ErrOrderNotFound
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = ord.ValidateAssign(); err != nil {
		return AssignmentResult{}, err
	}

	cfg, err := uow.DispatchConfigRepository().GetOrCreate(ctx)
	if err != nil {
		return AssignmentResult{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.AssignmentDeadline())
	defer cancel()

	journal, err := dispatch.NewLog(ord.ID())
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = h.attachServingZone(runCtx, uow, ord, journal); err != nil {
		return AssignmentResult{}, err
	}

	logsRepo := uow.DispatchLogRepository()
	if err = logsRepo.Upsert(runCtx, journal); err != nil {
		return AssignmentResult{}, err
	}

	radius := cfg.SearchRadius
	for attempt := 0; attempt < cfg.MaxIncrements; attempt++ {
		candidates, searchErr := h.couriers.FindNearby(runCtx, ord.DeliveryLocation(), radius)
		if searchErr != nil {
			return h.abort(ctx, uow, journal, searchErr)
		}

		if err = journal.RecordSearch(radius, len(candidates)); err != nil {
			return AssignmentResult{}, err
		}

		eligible, selectErr := h.selectCandidates(runCtx, ordersRepo, candidates, cfg.MaxOrdersPerCourier)
		if selectErr != nil {
			return AssignmentResult{}, selectErr
		}

		for _, candidate := range eligible {
			free, reserveErr := h.reserveCandidate(runCtx, ordersRepo, candidate.ID(), cfg.MaxOrdersPerCourier)
			if reserveErr != nil {
				return AssignmentResult{}, reserveErr
			}
			if !free {
				continue
			}

			outcome := h.offer(runCtx, candidate, ord)

			if err = journal.RecordOffer(candidate.ID(), outcome); err != nil {
				return AssignmentResult{}, err
			}

			if outcome != dispatch.OutcomeAccepted {
				continue
			}

			if err = h.bind(runCtx, uow, ord, journal, candidate.ID()); err != nil {
				return AssignmentResult{}, err
			}

			return AssignmentResult{Success: true, Order: ord, Log: journal}, nil
		}

		radius += cfg.IncrementalRadius
	}

	if err = journal.MarkFailed(); err != nil {
		return AssignmentResult{}, err
	}
	if err = logsRepo.Upsert(ctx, journal); err != nil {
		return AssignmentResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	return AssignmentResult{Success: false, Order: ord, Log: journal}, nil
}

// attachServingZone stamps the first active zone containing the delivery
// point onto the log. Orders outside every zone are still dispatched.
func (h StartAutoAssignmentCommandHandler) attachServingZone(
	ctx context.Context,
	uow AssignmentUoW,
	ord *order.Order,
	journal *dispatch.Log,
) error {
	zones, err := uow.DispatchZoneRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	for _, zone := range zones {
		inside, err := zone.Contains(ord.DeliveryLocation())
		if err != nil {
			return err
		}
		if inside {
			journal.AttachZone(zone.Snapshot())
			return nil
		}
	}

	return nil
}

// selectCandidates loads each candidate's active-order count and filters the
// list down to couriers eligible for an offer.
func (h StartAutoAssignmentCommandHandler) selectCandidates(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	candidates []*courier.Courier,
	maxOrdersPerCourier int,
) ([]*courier.Courier, error) {
	loads := make(map[kernel.UUID]int, len(candidates))
	for _, candidate := range candidates {
		count, err := ordersRepo.CountActiveByCourier(ctx, candidate.ID())
		if err != nil {
			return nil, err
		}
		loads[candidate.ID()] = count
	}

	return h.selector.Select(candidates, loads, maxOrdersPerCourier)
}

// reserveCandidate re-checks the candidate's load under a per-courier lock
// held until the run's transaction ends. Selection counts loads without
// locking, so two concurrent runs can both see the same courier below the
// cap; the locked re-count makes the later run observe the earlier run's
// committed binding and skip the courier instead of overloading it.
func (h StartAutoAssignmentCommandHandler) reserveCandidate(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	courierID kernel.UUID,
	maxOrdersPerCourier int,
) (bool, error) {
	if maxOrdersPerCourier <= 0 {
		return true, nil
	}

	if err := ordersRepo.LockCourierAssignments(ctx, courierID); err != nil {
		return false, err
	}

	count, err := ordersRepo.CountActiveByCourier(ctx, courierID)
	if err != nil {
		return false, err
	}

	return count < maxOrdersPerCourier, nil
}

// offer proposes the order to one candidate and maps delivery failures onto
// outcomes: a deadline hit is a timeout, anything else counts as a rejection.
func (h StartAutoAssignmentCommandHandler) offer(
	ctx context.Context,
	candidate *courier.Courier,
	ord *order.Order,
) dispatch.Outcome {
	outcome, err := h.notifier.Offer(ctx, candidate, ord)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return dispatch.OutcomeTimeout
		}
		return dispatch.OutcomeRejected
	}

	return outcome
}

// bind persists the successful assignment of order and log atomically.
func (h StartAutoAssignmentCommandHandler) bind(
	ctx context.Context,
	uow AssignmentUoW,
	ord *order.Order,
	journal *dispatch.Log,
	courierID kernel.UUID,
) error {
	if err := ord.Assign(courierID); err != nil {
		return err
	}
	if err := journal.MarkAssigned(courierID); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	if err := uow.DispatchLogRepository().Upsert(ctx, journal); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// abort finalizes the log as failed after a locator error and surfaces the
// failure to the caller. The finalized log is committed on the parent
// context, since the run context may already be past its deadline.
func (h StartAutoAssignmentCommandHandler) abort(
	ctx context.Context,
	uow AssignmentUoW,
	journal *dispatch.Log,
	cause error,
) (AssignmentResult, error) {
	if err := journal.MarkFailed(); err != nil {
		return AssignmentResult{}, err
	}
	if err := uow.DispatchLogRepository().Upsert(ctx, journal); err != nil {
		return AssignmentResult{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	if errors.Is(cause, context.DeadlineExceeded) {
		return AssignmentResult{Log: journal}, cause
	}

	return AssignmentResult{Log: journal}, fmt.Errorf("%w: %w", ErrLocatorFailure, cause)
}
