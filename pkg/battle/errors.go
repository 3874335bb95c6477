package battle

import "fmt"

// ErrorKind classifies why a submission was rejected.
type ErrorKind int

const (
	MalformedRequest ErrorKind = iota
	InvalidUnitType
	InvalidCoordinate
	DuplicateCellInSubmission
	CellAlreadyOccupied
	InvalidCount
	BudgetExceeded
	BelowMinimumCommitment
	MissingCarriedState
	InvalidCarryToken
)

var kindNames = [...]string{
	MalformedRequest:          "malformed_request",
	InvalidUnitType:           "invalid_unit_type",
	InvalidCoordinate:         "invalid_coordinate",
	DuplicateCellInSubmission: "duplicate_cell_in_submission",
	CellAlreadyOccupied:       "cell_already_occupied",
	InvalidCount:              "invalid_count",
	BudgetExceeded:            "budget_exceeded",
	BelowMinimumCommitment:    "below_minimum_commitment",
	MissingCarriedState:       "missing_carried_state",
	InvalidCarryToken:         "invalid_carry_token",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("error_kind_%d", int(k))
	}
	return kindNames[k]
}

// ValidationError is a client error: the caller must fix its input and resubmit.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewError builds a ValidationError of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *ValidationError {
	return newError(kind, format, args...)
}
