package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrCourierNotFound is returned when the targeted courier does not exist.
var ErrCourierNotFound = errors.New("courier not found")

// AssignOrderCommandHandler performs a manual order-to-courier binding.
// Both lookups happen before anything is written, so a missing order or
// courier leaves no trace in the audit trail. A successful binding upserts a
// log with a single accepted assignment attempt and no search attempts,
// distinguishing manual bindings from engine runs.
type AssignOrderCommandHandler struct {
	uowFactory BindingUoWFactory
	couriers   ports.CourierDirectory
}

// NewAssignOrderCommandHandler creates a handler for manual assignment.
func NewAssignOrderCommandHandler(
	uowFactory BindingUoWFactory,
	couriers ports.CourierDirectory,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		couriers:   couriers,
	}
}

// Handle binds the order to the courier and records the binding.
// Returns ErrOrderNotFound or ErrCourierNotFound on missing lookups.
func (h AssignOrderCommandHandler) Handle(
	ctx context.Context,
	command AssignOrderCommand,
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

	candidate, err := h.couriers.Get(ctx, command.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentResult{}, ErrCourierNotFound
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	journal, err := dispatch.NewLog(ord.ID())
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = errors.Join(
		ord.Assign(candidate.ID()),
		journal.RecordOffer(candidate.ID(), dispatch.OutcomeAccepted),
		journal.MarkAssigned(candidate.ID()),
	); err != nil {
		return AssignmentResult{}, err
	}

	if err = ordersRepo.Update(ctx, ord); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.DispatchLogRepository().Upsert(ctx, journal); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	return AssignmentResult{Success: true, Order: ord, Log: journal}, nil
}
