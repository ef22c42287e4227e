package enums

import "fmt"

// CheckoutState tracks one checkout attempt through the payment flow.
type CheckoutState string

const (
	CheckoutStateIdle                 CheckoutState = "idle"
	CheckoutStatePreparingPayment     CheckoutState = "preparing_payment"
	CheckoutStateAwaitingConfirmation CheckoutState = "awaiting_confirmation"
	CheckoutStateFailed               CheckoutState = "failed"
	CheckoutStateSubmitting           CheckoutState = "submitting"
	CheckoutStateCompleted            CheckoutState = "completed"
	CheckoutStateSubmissionFailed     CheckoutState = "submission_failed"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateIdle,
	CheckoutStatePreparingPayment,
	CheckoutStateAwaitingConfirmation,
	CheckoutStateFailed,
	CheckoutStateSubmitting,
	CheckoutStateCompleted,
	CheckoutStateSubmissionFailed,
}

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutState.
func (c CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state ends the attempt without further transitions.
func (c CheckoutState) IsTerminal() bool {
	return c == CheckoutStateCompleted
}

// ParseCheckoutState converts raw input into a CheckoutState.
func ParseCheckoutState(value string) (CheckoutState, error) {
	for _, candidate := range validCheckoutStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout state %q", value)
}
