package core

// DecisionOutcome tells what a Decide function concluded.
type DecisionOutcome int

const (
	// OutcomeSuccess means Event describes a state change to apply.
	OutcomeSuccess DecisionOutcome = iota + 1

	// OutcomeIdempotent means nothing needs to change.
	OutcomeIdempotent

	// OutcomeRejected means a business rule failed, Err says which.
	OutcomeRejected
)

func (o DecisionOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeIdempotent:
		return "idempotent"
	case OutcomeRejected:
		return "error"
	default:
		return "undecided"
	}
}

// DecisionResult is the value every Decide function returns.
// Build it with SuccessDecision, IdempotentDecision or ErrorDecision, the zero value is undecided.
type DecisionResult struct {
	Outcome DecisionOutcome

	// Event is the applied event on success and the failure event on rejection, nil when idempotent.
	Event DomainEvent
	Err   error
}

func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: OutcomeIdempotent}
}

func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{Outcome: OutcomeSuccess, Event: event}
}

// ErrorDecision rejects the command. The failure event is never persisted, it feeds logs and tests.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{Outcome: OutcomeRejected, Event: event, Err: err}
}

// HasStateChange reports whether the decision must be applied in the unit of work.
func (r DecisionResult) HasStateChange() bool {
	return r.Outcome == OutcomeSuccess
}

func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == OutcomeIdempotent
}

// HasError returns Err for a rejected decision and nil otherwise.
func (r DecisionResult) HasError() error {
	if r.Outcome != OutcomeRejected {
		return nil
	}

	return r.Err
}
