package dispatch

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLogIsNotConstructed is returned when using an improperly initialized Log.
var ErrLogIsNotConstructed = errors.New("Log must be created via NewLog or RestoreLog constructor")

// LogStatus represents the state of one order's assignment journey.
//
// State transitions driven by the engine:
//
//	Searching ──> Assigned    (a candidate accepted)
//	Searching ──> Failed      (search exhausted or aborted)
//
// Assigned logs are later advanced to PickedUp/Delivered by the delivery
// workflow mirroring the order's own lifecycle.
type LogStatus int

const (
	// LogUnknown catches uninitialized values.
	LogUnknown LogStatus = iota
	// LogSearching means the widen-and-retry loop is in progress.
	LogSearching
	// LogAssigned means a courier accepted the order.
	LogAssigned
	// LogPickedUp mirrors the order being collected.
	LogPickedUp
	// LogDelivered mirrors the order reaching the customer.
	LogDelivered
	// LogFailed means the search exhausted every increment without a binding.
	LogFailed
)

func getLogStatusStrings() map[LogStatus]string {
	return map[LogStatus]string{
		LogUnknown:   "unknown",
		LogSearching: "searching",
		LogAssigned:  "assigned",
		LogPickedUp:  "picked_up",
		LogDelivered: "delivered",
		LogFailed:    "failed",
	}
}

// LogStatusFromString parses a wire representation into a LogStatus.
func LogStatusFromString(s string) (LogStatus, error) {
	for status, str := range getLogStatusStrings() {
		if str == s && status != LogUnknown {
			return status, nil
		}
	}
	return LogUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid dispatch log status", s))
}

// String returns the wire representation of the log status.
func (s LogStatus) String() string {
	if str, ok := getLogStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the LogStatus is one of the defined states.
func (s LogStatus) Validate() error {
	if _, ok := getLogStatusStrings()[s]; !ok || s == LogUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid dispatch log status", s))
	}
	return nil
}

// Outcome is the result of offering an order to one courier candidate.
type Outcome int

const (
	// OutcomePending means the offer is awaiting the courier's response.
	OutcomePending Outcome = iota + 1
	// OutcomeAccepted means the courier took the order.
	OutcomeAccepted
	// OutcomeRejected means the courier declined the order.
	OutcomeRejected
	// OutcomeTimeout means the courier did not respond before the deadline.
	OutcomeTimeout
)

func getOutcomeStrings() map[Outcome]string {
	return map[Outcome]string{
		OutcomePending:  "pending",
		OutcomeAccepted: "accepted",
		OutcomeRejected: "rejected",
		OutcomeTimeout:  "timeout",
	}
}

// OutcomeFromString parses a wire representation into an Outcome.
func OutcomeFromString(s string) (Outcome, error) {
	for outcome, str := range getOutcomeStrings() {
		if str == s {
			return outcome, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("outcome",
		fmt.Errorf("%q is not a valid assignment outcome", s))
}

// String returns the wire representation of the outcome.
func (o Outcome) String() string {
	if str, ok := getOutcomeStrings()[o]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Outcome is one of the defined results.
func (o Outcome) Validate() error {
	if _, ok := getOutcomeStrings()[o]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("outcome",
			fmt.Errorf("%d is not a valid assignment outcome", o))
	}
	return nil
}

// SearchAttempt records one radius-bounded courier query.
type SearchAttempt struct {
	// RadiusMeters is the search radius used for this attempt.
	RadiusMeters int
	// CouriersFound is the number of candidates the locator returned.
	CouriersFound int
	// Timestamp is when the query completed.
	Timestamp time.Time
}

// AssignmentAttempt records one candidate-courier offer and its outcome.
type AssignmentAttempt struct {
	CourierID kernel.UUID
	Outcome   Outcome
	Timestamp time.Time
}

// Log is the append-only audit trail of one order's assignment journey.
// It is keyed by order id with upsert semantics: re-running assignment for an
// order replaces its previous journey rather than duplicating it. Logs are
// never deleted.
type Log struct {
	id                 kernel.UUID
	orderID            kernel.UUID
	courierID          *kernel.UUID
	status             LogStatus
	zone               *ZoneSnapshot
	searchAttempts     []SearchAttempt
	assignmentAttempts []AssignmentAttempt
	createdAt          time.Time

	guard guard.ConstructorGuard
}

// NewLog starts a fresh assignment journey for an order in Searching status.
func NewLog(orderID kernel.UUID) (*Log, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &Log{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		status:    LogSearching,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreLog reconstructs a Log from persistent storage.
func RestoreLog(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID *kernel.UUID,
	status LogStatus,
	zone *ZoneSnapshot,
	searchAttempts []SearchAttempt,
	assignmentAttempts []AssignmentAttempt,
	createdAt time.Time,
) (*Log, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	l := &Log{
		id:                 id,
		orderID:            orderID,
		courierID:          courierID,
		status:             status,
		zone:               zone,
		searchAttempts:     append([]SearchAttempt(nil), searchAttempts...),
		assignmentAttempts: append([]AssignmentAttempt(nil), assignmentAttempts...),
		createdAt:          createdAt,
		guard:              guard.NewConstructorGuard(),
	}
	return l, nil
}

// Validate checks if the Log was properly constructed.
func (l *Log) Validate() error {
	if l == nil {
		return ErrLogIsNotConstructed
	}
	return l.guard.Validate(ErrLogIsNotConstructed)
}

// ID returns the log's own identifier.
func (l *Log) ID() kernel.UUID {
	return l.id
}

// OrderID returns the order whose journey this log records.
func (l *Log) OrderID() kernel.UUID {
	return l.orderID
}

// Courier returns the assigned courier's ID, or nil until a binding succeeds.
func (l *Log) Courier() *kernel.UUID {
	return l.courierID
}

// Status returns the current journey state.
func (l *Log) Status() LogStatus {
	return l.status
}

// Zone returns the zone snapshot stamped on the log, or nil when the delivery
// point was outside every active zone.
func (l *Log) Zone() *ZoneSnapshot {
	return l.zone
}

// SearchAttempts returns a copy of the recorded radius queries, in order.
func (l *Log) SearchAttempts() []SearchAttempt {
	return append([]SearchAttempt(nil), l.searchAttempts...)
}

// AssignmentAttempts returns a copy of the recorded candidate offers, in order.
func (l *Log) AssignmentAttempts() []AssignmentAttempt {
	return append([]AssignmentAttempt(nil), l.assignmentAttempts...)
}

// CreatedAt returns when the journey started.
func (l *Log) CreatedAt() time.Time {
	return l.createdAt
}

// AttachZone stamps zone-derived parameters onto the log.
func (l *Log) AttachZone(snapshot ZoneSnapshot) {
	l.zone = &snapshot
}

// RecordSearch appends a search-attempt record for one radius query.
func (l *Log) RecordSearch(radiusMeters int, couriersFound int) error {
	if l.status != LogSearching {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot record a search attempt on a %s log", l.status))
	}
	if radiusMeters <= 0 {
		return errs.NewValueIsInvalidError("radiusMeters")
	}
	if couriersFound < 0 {
		return errs.NewValueIsInvalidError("couriersFound")
	}

	l.searchAttempts = append(l.searchAttempts, SearchAttempt{
		RadiusMeters:  radiusMeters,
		CouriersFound: couriersFound,
		Timestamp:     time.Now().UTC(),
	})
	return nil
}

// RecordOffer appends an assignment-attempt record for one candidate offer.
func (l *Log) RecordOffer(courierID kernel.UUID, outcome Outcome) error {
	if err := errors.Join(courierID.Validate(), outcome.Validate()); err != nil {
		return err
	}
	if l.status != LogSearching {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot record an assignment attempt on a %s log", l.status))
	}

	l.assignmentAttempts = append(l.assignmentAttempts, AssignmentAttempt{
		CourierID: courierID,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// MarkAssigned finalizes the journey with a successful binding.
func (l *Log) MarkAssigned(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if l.status != LogSearching {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot assign a %s log", l.status))
	}

	l.status = LogAssigned
	l.courierID = &courierID
	return nil
}

// MarkFailed finalizes the journey after search exhaustion or an aborted run.
func (l *Log) MarkFailed() error {
	if l.status != LogSearching {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot fail a %s log", l.status))
	}

	l.status = LogFailed
	return nil
}
