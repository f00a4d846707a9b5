package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so that inbound adapters can map it to a
// transport status without inspecting messages.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAuthentication
	KindForbidden
	KindConflict
	KindBudgetExhausted
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindBudgetExhausted:
		return "budget_exhausted"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by use cases and repositories.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Control-flow sentinels. They are wrapped into an *Error where a caller
// needs a kind, and matched with errors.Is.
var (
	ErrBudgetExhausted     = errors.New("campaign budget exhausted")
	ErrDailyCapReached     = errors.New("campaign daily budget reached")
	ErrCampaignNotServable = errors.New("campaign is not servable")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrIllegalTransition   = errors.New("illegal state transition")
)

func NewValidationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NewValidationDetails(message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_FAILED", Message: message, Details: details}
}

func NewNotFoundError(entity string, key any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %v not found", entity, key),
	}
}

func NewAuthenticationError(message string, err error) *Error {
	return &Error{Kind: KindAuthentication, Code: "UNAUTHENTICATED", Message: message, Err: err}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: message}
}

func NewConflictError(code, message string, err error) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message, Err: err}
}

func NewBudgetExhaustedError(campaignID int64) *Error {
	return &Error{
		Kind:    KindBudgetExhausted,
		Code:    "BUDGET_EXHAUSTED",
		Message: fmt.Sprintf("campaign %d has no remaining budget", campaignID),
		Err:     ErrBudgetExhausted,
	}
}

// NewDatabaseError wraps a store failure. op names the failing operation.
func NewDatabaseError(op string, err error) *Error {
	return &Error{Kind: KindDatabase, Code: "DATABASE_ERROR", Message: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsConflict(err error) bool { return KindOf(err) == KindConflict }

func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

func IsAuthentication(err error) bool { return KindOf(err) == KindAuthentication }

// IsBudgetExhausted reports whether err signals an exhausted campaign.
func IsBudgetExhausted(err error) bool {
	return KindOf(err) == KindBudgetExhausted || errors.Is(err, ErrBudgetExhausted)
}
